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
)

// NewTestEmailCmd creates the test-email command
func NewTestEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-email <recipient>",
		Short: "Send a test newsletter built from sample items",
		Long: `Deliver a newsletter built from canned sample items to a single
recipient. This exercises generation, rendering and SMTP delivery end
to end without touching the media server.

Examples:
  medialetter test-email me@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := buildService().SendTest(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Test newsletter sent to %s\n", args[0])
			return nil
		},
	}
	return cmd
}
