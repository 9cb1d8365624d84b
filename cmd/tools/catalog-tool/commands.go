// cmd/tools/catalog-tool/commands.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"activity-signup/pkg/registry"

	"github.com/spf13/cobra"
)

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog against its schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := registry.LoadCatalog(*path)
			if err != nil {
				return err
			}
			if len(catalog.Activities) == 0 {
				return fmt.Errorf("catalog %s contains no activities", *path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog validation passed. Found %d activities.\n", len(catalog.Activities))
			return nil
		},
	}
}

func newListCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the activities in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := registry.LoadCatalog(*path)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSCHEDULE\tENROLLED")
			for _, a := range catalog.Activities {
				fmt.Fprintf(tw, "%s\t%s\t%d/%d\n", a.Name, a.Schedule, len(a.Participants), a.MaxParticipants)
			}
			return tw.Flush()
		},
	}
}

func newAddCmd(path *string) *cobra.Command {
	var activity registry.Activity

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new activity to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadOrCreate(*path)
			if err != nil {
				return err
			}
			if _, exists := catalog.Find(activity.Name); exists {
				return fmt.Errorf("activity %q already exists", activity.Name)
			}
			activity.Participants = []string{}
			catalog.Upsert(activity)

			if err := save(*path, catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity: %s\n", activity.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&activity.Name, "name", "", "Activity name (e.g. \"Chess Club\")")
	cmd.Flags().StringVar(&activity.Description, "description", "", "Description")
	cmd.Flags().StringVar(&activity.Schedule, "schedule", "", "Schedule (e.g. \"Fridays, 3:30 PM - 5:00 PM\")")
	cmd.Flags().IntVar(&activity.MaxParticipants, "max", 0, "Maximum number of participants")
	for _, name := range []string{"name", "description", "schedule", "max"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newUpdateCmd(path *string) *cobra.Command {
	var name, field, value string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update one field of an existing activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := registry.LoadCatalog(*path)
			if err != nil {
				return err
			}
			activity, ok := catalog.Find(name)
			if !ok {
				return fmt.Errorf("activity %q not found", name)
			}

			switch field {
			case "description":
				activity.Description = value
			case "schedule":
				activity.Schedule = value
			case "max_participants":
				limit, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid max_participants value: %w", err)
				}
				activity.MaxParticipants = limit
			default:
				return fmt.Errorf("unknown field: %s", field)
			}

			if err := save(*path, catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", name, field, value)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Activity to update")
	cmd.Flags().StringVar(&field, "field", "", "Field to update (description, schedule, max_participants)")
	cmd.Flags().StringVar(&value, "value", "", "New value for the field")
	for _, flag := range []string{"name", "field", "value"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func loadOrCreate(path string) (*registry.ActivityCatalog, error) {
	catalog, err := registry.LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &registry.ActivityCatalog{
			Version:     "1.0.0",
			LastUpdated: time.Now().UTC().Format(time.RFC3339),
			Activities:  []registry.Activity{},
		}, nil
	}
	return catalog, err
}

func save(path string, catalog *registry.ActivityCatalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := registry.SaveCatalog(path, catalog); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
