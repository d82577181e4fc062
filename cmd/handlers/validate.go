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

	"github.com/spf13/cobra"

	"medialetter/internal/config"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and report problems",
		Long: `Load the configuration from file and environment, run every validation
rule and report what is missing or malformed. Exits non-zero when the
configuration is unusable.

Examples:
  medialetter validate
  medialetter validate --config /etc/medialetter.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if err := cfg.Validate(); err != nil {
				return err
			}

			fmt.Println("Configuration OK")
			fmt.Printf("  AI provider:   %s (%s)\n", cfg.AI.Provider, cfg.AI.Model)
			if !cfg.AI.Configured() {
				fmt.Println("  AI api key:    not set; built-in newsletter content will be used")
			}
			fmt.Printf("  Media server:  %s\n", orUnset(cfg.Jellyfin.BaseURL))
			fmt.Printf("  SMTP host:     %s:%d\n", orUnset(cfg.SMTP.Host), cfg.SMTP.Port)
			fmt.Printf("  Recipients:    %d\n", len(cfg.Recipients))
			return nil
		},
	}
	return cmd
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
