package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"formfiller/services"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		client string
		ttl    time.Duration
	)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issues a bearer token for the /generate endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set; the API is running without auth")
			}
			token, err := services.NewJWTService(a.cfg.JWTSecret).GenerateToken(client, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	tokenCmd.Flags().StringVar(&client, "client", "", "name of the calling client")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("client")
	return tokenCmd
}
