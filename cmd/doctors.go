package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/meridian-health/triage-cli/internal/directory"
)

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "Manage the known-doctor directory",
}

var doctorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDirectory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		doctors, err := store.ListDoctors(cmd.Context())
		if err != nil {
			return err
		}
		if len(doctors) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "directory is empty")
			return nil
		}
		for _, d := range doctors {
			line := d.Surname
			if d.FullName != "" {
				line += "\t" + d.FullName
			}
			if d.Specialty != "" {
				line += "\t" + d.Specialty
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var (
	doctorFullName  string
	doctorSpecialty string
)

var doctorsAddCmd = &cobra.Command{
	Use:   "add <surname>",
	Short: "Add or update a directory entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDirectory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		doc, err := store.AddDoctor(cmd.Context(), args[0], doctorFullName, doctorSpecialty)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", doc.Surname)
		return nil
	},
}

var doctorsRemoveCmd = &cobra.Command{
	Use:   "remove <surname>",
	Short: "Remove a directory entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDirectory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RemoveDoctor(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
		return nil
	},
}

func openDirectory(cmd *cobra.Command) (directory.Store, error) {
	store, err := directory.Open(cmd.Context(), cfg.Directory.Driver, cfg.Directory.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, eris.New("doctors: no directory driver configured")
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func init() {
	doctorsAddCmd.Flags().StringVar(&doctorFullName, "full-name", "", "doctor's full name")
	doctorsAddCmd.Flags().StringVar(&doctorSpecialty, "specialty", "", "doctor's specialty")
	doctorsCmd.AddCommand(doctorsListCmd, doctorsAddCmd, doctorsRemoveCmd)
	rootCmd.AddCommand(doctorsCmd)
}
