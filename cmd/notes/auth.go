package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/dimitrije/notes/pkg/client"
	"github.com/dimitrije/notes/pkg/dto"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		server   string
		email    string
		name     string
		password string
		signup   bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in and store the session tokens in the config file.

Examples:
  notes login --email me@example.com
  notes login --signup --email me@example.com --name Me
  notes login --server https://notes.example.com --email me@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server != "" {
				a.v.Set(keyServerURL, server)
				a.client = client.New(server)
			}
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			var (
				tokens *dto.TokenResponse
				err    error
			)
			if signup {
				tokens, err = a.client.SignUp(cmd.Context(), email, name, password)
			} else {
				tokens, err = a.client.SignIn(cmd.Context(), email, password)
			}
			if err != nil {
				return err
			}
			if err := a.saveTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
				return err
			}

			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL to save in the config")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (with --signup)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	cmd.Flags().BoolVar(&signup, "signup", false, "create the account first")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session and forget it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if refresh := a.v.GetString(keyRefreshToken); refresh != "" {
				if err := a.client.Logout(cmd.Context(), refresh); err != nil {
					a.logger.Printf("failed to revoke refresh token: %v", err)
				}
			}
			a.v.Set(keyAccessToken, "")
			a.v.Set(keyRefreshToken, "")
			if err := saveConfig(a.v); err != nil {
				return err
			}
			a.printf("Signed out\n")
			return nil
		},
	}
}
