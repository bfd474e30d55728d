package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasicon/jasreg/internal/presentation"
	"github.com/jasicon/jasreg/internal/registration"
)

var registrationsCmd = &cobra.Command{
	Use:     "registrations",
	Aliases: []string{"regs"},
	Short:   "Inspect the local registration store",
}

var registrationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List confirmed registrations as JSON",
	Long: `List every confirmed registration in the database as JSON, oldest first.

Examples:
  jasreg registrations list
  jasreg registrations list | jq '.[].delegate_id'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close(context.Background()) }()

		regs, err := svc.db.Registrations().List(cmd.Context())
		if err != nil {
			return err
		}
		addOns, err := svc.catalog.Load(cmd.Context())
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).
			FormatRegistrations(presentation.FromRegistrations(regs, addOns))
	},
}

var registrationsDeleteCmd = &cobra.Command{
	Use:   "delete <unique-id>",
	Short: "Delete the registration of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close(context.Background()) }()

		if err := svc.db.Registrations().Delete(cmd.Context(), args[0]); err != nil {
			if errors.Is(err, registration.ErrNotFound) {
				return fmt.Errorf("no registration for %s", args[0])
			}
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted registration for %s\n", args[0])
		return nil
	},
}

func init() {
	registrationsCmd.AddCommand(registrationsListCmd, registrationsDeleteCmd)
	rootCmd.AddCommand(registrationsCmd)
}
