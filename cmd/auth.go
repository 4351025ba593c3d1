package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/EO-DataHub/eodhp-crm-console/internal/authn"
	"github.com/EO-DataHub/eodhp-crm-console/internal/session"
	"github.com/EO-DataHub/eodhp-crm-console/models"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	profileName   string
	profileEmail  string
	profileAvatar string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appCfg)
		if err != nil {
			return err
		}
		defer a.close()

		password := loginPassword
		if password == "" {
			password = os.Getenv("CRM_PASSWORD")
		}

		a.session.Login(cmd.Context(), loginEmail, password)

		state := a.session.State()
		if state.Status() == session.StatusError {
			return errors.New(state.Error)
		}
		return printJSON(cmd.OutOrStdout(), state.User)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appCfg)
		if err != nil {
			return err
		}
		defer a.close()

		a.session.Logout(cmd.Context())
		return nil
	},
}

type whoamiOutput struct {
	Status    session.Status `json:"status"`
	User      *models.User   `json:"user,omitempty"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appCfg)
		if err != nil {
			return err
		}
		defer a.close()

		a.session.Bootstrap(cmd.Context())
		state := a.session.State()
		out := whoamiOutput{Status: state.Status(), User: state.User}

		if token, err := a.session.Token(cmd.Context()); err == nil && token != "" {
			if claims, err := authn.PeekClaims(token); err == nil && claims.ExpiresAt > 0 {
				expiry := time.Unix(claims.ExpiresAt, 0).UTC()
				out.ExpiresAt = &expiry
			}
		}

		return printJSON(cmd.OutOrStdout(), out)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the signed in user's profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the signed in user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appCfg)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.authenticated(cmd.Context()); err != nil {
			return err
		}

		var update models.ProfileUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			update.Name = &profileName
		}
		if flags.Changed("email") {
			update.Email = &profileEmail
		}
		if flags.Changed("avatar") {
			update.Avatar = &profileAvatar
		}

		a.session.UpdateProfile(cmd.Context(), update)

		state := a.session.State()
		if state.Status() == session.StatusError {
			return errors.New(state.Error)
		}
		return printJSON(cmd.OutOrStdout(), state.User)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (defaults to $CRM_PASSWORD)")
	_ = loginCmd.MarkFlagRequired("email")

	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	profileUpdateCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar URL")
}
