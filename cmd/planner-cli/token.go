package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-timetable-dss/internal/models"
	"github.com/noah-isme/sma-timetable-dss/internal/service"
	"github.com/noah-isme/sma-timetable-dss/pkg/config"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing against JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Env == config.EnvProduction {
				return fmt.Errorf("refusing to mint tokens in production")
			}
			tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
			signed, err := tokens.IssueToken(userID, models.UserRole(strings.ToUpper(role)), ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "planner-dev", "Subject user id")
	cmd.Flags().StringVar(&role, "role", string(models.RolePlanner), "Role claim (SUPERADMIN, ADMIN, PLANNER)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
