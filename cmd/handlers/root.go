/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"medialetter/internal/config"
	"medialetter/internal/logger"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "medialetter",
		Short: "medialetter generates and delivers AI-written newsletters for your media library.",
		Long: `medialetter watches a media server for recently added movies, shows and
music, asks an LLM to write a newsletter about them, renders the result
as HTML and delivers it to your recipients over SMTP.

Without an AI API key it still works: a built-in newsletter listing the
new items is generated instead.`,
	}

	// Initialize configuration
	cobra.OnInitialize(initConfig)

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.medialetter.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewSendCmd())
	rootCmd.AddCommand(NewPreviewCmd())
	rootCmd.AddCommand(NewTestEmailCmd())
	rootCmd.AddCommand(NewScheduleCmd())
	rootCmd.AddCommand(NewValidateCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level)
}
