package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportctl/internal/model"
)

const envPassword = "REPORTCTL_PASSWORD"

func (c *cli) loginCmd() *cobra.Command {
	var creds model.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Long: `Log in with email and password. The token is stored according to
session.store (file, redis or memory) and reused by later commands.

The password may also be given in ` + envPassword + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				creds.Password = os.Getenv(envPassword)
			}
			u, err := c.app.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Welcome, %s!\n", u.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var reg model.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long:  "Create an account. Registering does not log you in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reg.Password == "" {
				reg.Password = os.Getenv(envPassword)
			}
			if reg.ConfirmPassword == "" {
				reg.ConfirmPassword = reg.Password
			}
			msg, err := c.app.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reg.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&reg.Username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "password")
	cmd.Flags().StringVar(&reg.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.loggingOut = true
			if err := c.app.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.restore(cmd.Context()); err != nil {
				return err
			}
			s := c.app.Session()
			fmt.Fprintf(c.out, "%s <%s>\n", s.User.Username, s.User.Email)
			if !s.ExpiresAt.IsZero() {
				fmt.Fprintf(c.out, "session expires %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
