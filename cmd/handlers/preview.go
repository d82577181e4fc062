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
)

// NewPreviewCmd creates the preview command
func NewPreviewCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the newsletter HTML without sending it",
		Long: `Generate the newsletter for the current catalog window and print the
rendered HTML to stdout, or write it to a file with --output. No email
is sent.

Examples:
  medialetter preview
  medialetter preview --output newsletter.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := buildService().Preview(cmd.Context())
			if err != nil {
				return err
			}
			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(html), 0o644); err != nil {
					return fmt.Errorf("writing preview: %w", err)
				}
				fmt.Printf("Preview written to %s\n", outputFile)
				return nil
			}
			fmt.Println(html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the HTML to a file instead of stdout")
	return cmd
}
