package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/models"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long:  "Create a TaskVault account and save credentials for the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		url := serverURL(cmd)
		resp, err := NewClient(url).Register(&models.RegisterRequest{
			Email:     email,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		profile, _ := cmd.Flags().GetString("profile")
		if err := cfg.SaveProfile(profile, url, resp.AccessToken, resp.RefreshToken); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		successf("Registered as %s", resp.Email)
		infof("Profile '%s' saved to ~/.taskvault/config.yaml", profile)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to TaskVault",
	Long:  "Authenticate with TaskVault and save credentials for the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		url := serverURL(cmd)
		resp, err := NewClient(url).Login(email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		profile, _ := cmd.Flags().GetString("profile")
		if err := cfg.SaveProfile(profile, url, resp.AccessToken, resp.RefreshToken); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		successf("Logged in as %s", resp.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from TaskVault",
	Long:  "Revoke the current access token and remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		client := NewClient(p.ServerURL)
		if all {
			if err := client.LogoutAll(p.AccessToken); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
		} else {
			if err := client.Logout(p.AccessToken); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
		}

		profile, _ := cmd.Flags().GetString("profile")
		if err := cfg.SaveProfile(profile, p.ServerURL, "", ""); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}

		successf("Logged out from profile '%s'", profile)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the access token",
	Long:  "Exchange the stored refresh token for a new token pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("profile")
		p, ok := cfg.Profiles[name]
		if !ok || p.RefreshToken == "" {
			return fmt.Errorf("profile %q has no refresh token, run 'tvctl login' first", name)
		}

		resp, err := NewClient(p.ServerURL).Refresh(p.RefreshToken)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		if err := cfg.SaveProfile(name, p.ServerURL, resp.AccessToken, resp.RefreshToken); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		successf("Token refreshed for profile '%s'", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(refreshCmd)

	registerCmd.Flags().StringP("email", "e", "", "Email address")
	registerCmd.Flags().StringP("password", "p", "", "Password")
	registerCmd.Flags().String("first-name", "", "First name")
	registerCmd.Flags().String("last-name", "", "Last name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.Flags().StringP("password", "p", "", "Password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	logoutCmd.Flags().Bool("all", false, "Revoke refresh tokens on every device")
}
