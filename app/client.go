package app

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/routeguard/routeguard/internal/authclient"
)

// EnvPassword is read when --password is not given.
const EnvPassword = "ROUTEGUARD_PASSWORD"

var (
	cookieFile string
	email      string
	password   string
	fullName   string

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account at the auth API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			user, err := client.Register(cmd.Context(), authclient.UserCreate{
				Email:    email,
				Password: passwordValue(),
				FullName: fullName,
			})
			if err != nil {
				return err
			}

			cmd.Printf("registered %s (id %v)\n", user.Email, user.ID)

			return nil
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the token in the cookie file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if _, err = client.Login(cmd.Context(), email, passwordValue()); err != nil {
				return err
			}

			cmd.Printf("logged in as %s\n", email)

			return nil
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			client.Logout()
			cmd.Println("logged out")

			return nil
		},
	}

	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the user of the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			user, err := client.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Println(string(user.Raw))

			return nil
		},
	}
)

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{registerCmd, loginCmd, logoutCmd, whoamiCmd} {
		c.Flags().StringVar(&cookieFile, "cookie-file", defaultCookieFile(), "file keeping the token cookie")
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&email, "email", "e", "", "account email")
		c.Flags().StringVarP(&password, "password", "p", "", "account password (default $"+EnvPassword+")")
		_ = c.MarkFlagRequired("email")
	}

	registerCmd.Flags().StringVar(&fullName, "name", "", "full name")
}

func newClient() (*authclient.Client, error) {
	c, err := readConfig()
	if err != nil {
		return nil, err
	}

	if cookieFile == "" {
		return nil, errors.New("no cookie file, set --cookie-file")
	}

	return authclient.New(c.ClientConfig(), authclient.NewFileStore(cookieFile)), nil
}

func passwordValue() string {
	if password != "" {
		return password
	}

	return os.Getenv(EnvPassword)
}

func defaultCookieFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".routeguard", "cookies")
}
