package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourusername/trivia-catalog/pkg/auth"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "issue an admin token for catalog mutations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			tokens, err := auth.NewAdminTokenService(cfg.Auth.AdminSecret)
			if err != nil {
				return fmt.Errorf("auth.admin_secret is not configured: %w", err)
			}
			if ttl == 0 {
				ttl = time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
			}

			token, err := tokens.GenerateAdminToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "catalogctl", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to auth.tokenTTLHours)")
	return cmd
}
