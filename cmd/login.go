package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jasicon/jasreg/internal/config"
)

var (
	loginName  string
	loginEmail string
	loginUID   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the delegate identity in the config file",
	Long: `Store the delegate identity in the identity section of the config file.

A unique id is generated when --uid is not given. The email is optional, but
the wizard asks for it before the profile step can be completed.

Examples:
  jasreg login --name "Dr. Asha Rao" --email asha@example.com
  jasreg login --name "Dr. Asha Rao" --uid user-4821`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		identity := config.IdentityConfig{
			DisplayName: strings.TrimSpace(loginName),
			Email:       strings.TrimSpace(loginEmail),
			UniqueID:    strings.TrimSpace(loginUID),
		}
		if identity.DisplayName == "" {
			return errors.New("--name must not be empty")
		}
		if identity.UniqueID == "" {
			identity.UniqueID = uuid.NewString()
		}
		if err := config.SaveIdentity(configPath, identity); err != nil {
			return err
		}
		cfg.Identity = identity
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", identity.DisplayName, identity.UniqueID)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginName, "name", "", "display name printed on the pass")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "contact email")
	loginCmd.Flags().StringVar(&loginUID, "uid", "", "unique user id (default: a new UUID)")
	_ = loginCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(loginCmd)
}
