// cmd/tools/catalog-tool/roster.go
package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apphttp "activity-signup/internal/common/http"

	"github.com/spf13/cobra"
)

type liveActivity struct {
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func newRosterCmd() *cobra.Command {
	var baseURL, activity string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print the live rosters of a running signup server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var live map[string]liveActivity
			client := apphttp.NewClient(timeout)
			url := strings.TrimRight(baseURL, "/") + "/activities"
			if err := client.GetJSON(cmd.Context(), url, &live); err != nil {
				return err
			}

			names := make([]string, 0, len(live))
			for name := range live {
				if activity == "" || name == activity {
					names = append(names, name)
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("activity %q not found on %s", activity, baseURL)
			}
			sort.Strings(names)

			out := cmd.OutOrStdout()
			for _, name := range names {
				a := live[name]
				fmt.Fprintf(out, "%s (%d/%d)\n", name, len(a.Participants), a.MaxParticipants)
				for _, email := range a.Participants {
					fmt.Fprintf(out, "  %s\n", email)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8000", "Base URL of the signup server")
	cmd.Flags().StringVar(&activity, "activity", "", "Only print this activity")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")
	return cmd
}
