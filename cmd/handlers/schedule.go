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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"medialetter/internal/config"
	"medialetter/internal/scheduler"
)

// NewScheduleCmd creates the schedule command
func NewScheduleCmd() *cobra.Command {
	var intervalHours int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run newsletter deliveries on a recurring interval",
		Long: `Start a long-running process that delivers the newsletter on a fixed
interval. The first delivery happens one full interval after start.
Stop with Ctrl-C; an in-flight run is allowed to finish.

Examples:
  medialetter schedule
  medialetter schedule --interval-hours 24`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			hours := cfg.Schedule.IntervalHours
			if intervalHours > 0 {
				hours = intervalHours
			}

			sched := scheduler.New(buildService())
			if err := sched.Start(hours); err != nil {
				return err
			}
			fmt.Printf("Newsletter scheduled every %dh. Press Ctrl-C to stop.\n", hours)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			sched.Stop()
			return nil
		},
	}

	cmd.Flags().IntVar(&intervalHours, "interval-hours", 0, "Override the configured interval between runs")
	return cmd
}
