package cmd

import (
	"github.com/spf13/cobra"

	database "github.com/FACorreiaa/storefront-api/app/db"
	"github.com/FACorreiaa/storefront-api/app/observability/metrics"
	"github.com/FACorreiaa/storefront-api/internal/api/auth"
)

func newSeedAdminCommand(rt *runtime) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the bootstrap administrator if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			admin := rt.cfg.Admin
			if email != "" {
				admin.Email = email
			}
			if password != "" {
				admin.Password = password
			}

			dbConfig, err := rt.databaseURL()
			if err != nil {
				return err
			}
			pool, err := database.Init(dbConfig, rt.logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			tokens, err := auth.NewTokenService(rt.cfg.JWT)
			if err != nil {
				return err
			}
			svc := auth.NewAuthService(
				auth.NewPostgresAuthRepo(pool, rt.logger),
				tokens,
				auth.NewPasswordHasher(rt.cfg.JWT.BcryptCost),
				auth.NewMemoryDenylist(),
				metrics.Get(),
				rt.logger,
			)
			return svc.EnsureAdmin(ctx, admin)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (defaults to admin.email)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (defaults to admin.password)")
	return cmd
}
