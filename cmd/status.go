package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasicon/jasreg/internal/pricing"
	"github.com/jasicon/jasreg/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in delegate and their registration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close(context.Background()) }()

		out := cmd.OutOrStdout()
		id, err := svc.sessions.Current(cmd.Context())
		if errors.Is(err, session.ErrNoIdentity) {
			_, _ = fmt.Fprintln(out, "Not signed in. Run `jasreg login` to set your identity.")
			return nil
		}
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Delegate:  %s\n", id.DisplayName)
		if id.Email != "" {
			_, _ = fmt.Fprintf(out, "Email:     %s\n", id.Email)
		}
		_, _ = fmt.Fprintf(out, "User ID:   %s\n", id.UniqueID)
		if !id.Registered() {
			_, _ = fmt.Fprintln(out, "Status:    not registered")
			return nil
		}

		c := *id.Details
		addOns, err := svc.catalog.Load(cmd.Context())
		if err != nil {
			return err
		}
		total := pricing.ComputeTotal(c.Draft.Category, c.Draft.SelectedAddOns, addOns).Total
		_, _ = fmt.Fprintf(out, "Status:    %s\n", c.Status)
		_, _ = fmt.Fprintf(out, "Delegate ID: %s\n", c.DelegateID)
		_, _ = fmt.Fprintf(out, "Category:  %s\n", c.Draft.Category)
		_, _ = fmt.Fprintf(out, "Total:     %s (incl. GST)\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
