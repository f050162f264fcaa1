package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turtacn/acadmin/internal/application/dto"
	"github.com/turtacn/acadmin/internal/domain/models"
	"github.com/turtacn/acadmin/pkg/utils"
)

const adminPasswordEnv = "ACADMIN_ADMIN_PASSWORD"

func newCreateAdminCommand(opts *rootOptions) *cobra.Command {
	var email, fullName string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `create-admin registers a user holding the admin role. The password is read
from the ` + adminPasswordEnv + ` environment variable so it never shows up in
shell history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &dto.RegisterRequest{Email: email, Password: os.Getenv(adminPasswordEnv), FullName: fullName}
			if err := utils.ValidateStruct(req); err != nil {
				return fmt.Errorf("%w (is %s set?)", err, adminPasswordEnv)
			}

			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close(ctx)

			user, err := a.Auth.CreateUser(ctx, req, models.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "administrator email")
	cmd.Flags().StringVar(&fullName, "name", "Administrator", "administrator full name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
