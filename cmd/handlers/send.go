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

// NewSendCmd creates the send command
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Generate the newsletter and deliver it to all recipients",
		Long: `Fetch recently added items from the media server, generate newsletter
content, render it as HTML and deliver it to every configured recipient.

The run succeeds when at least one delivery succeeds. A run that finds
no recent items sends nothing and exits successfully.

Examples:
  medialetter send
  medialetter send --config /etc/medialetter.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := buildService().Run(cmd.Context())
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Println("No recent items found; nothing sent.")
				return nil
			}
			fmt.Printf("Newsletter sent: %d items, %d delivered, %d failed (run %s)\n",
				result.ItemCount, result.Sent, result.Failed, result.RunID)
			return nil
		},
	}
	return cmd
}
