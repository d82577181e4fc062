// Package email delivers rendered newsletters to recipients.
package email

import (
	"context"
	"strconv"
	"strings"
)

// Sender delivers a single HTML message to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// Subject expands the {ItemCount} token in a subject template.
func Subject(template string, itemCount int) string {
	return strings.ReplaceAll(template, "{ItemCount}", strconv.Itoa(itemCount))
}
