package main

import (
	"medialetter/cmd/handlers"
)

func main() {
	handlers.Execute()
}
