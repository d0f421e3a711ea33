package cli

import (
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage dashboard user accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username> <main-location>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, mainLocation := args[0], args[1]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := promptPassword("Enter password: ", "Confirm password: ")
		if err != nil {
			return err
		}

		user, err := services.AuthService.Register(cmd.Context(), username, password, mainLocation)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User '%s' created with id %d\n", user.Username, user.ID)
		return nil
	},
}

var usersSetCityCmd = &cobra.Command{
	Use:   "set-city <username> <city>",
	Short: "Change a user's default city",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, city := args[0], args[1]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.UserService.FindByUsername(cmd.Context(), username)
		if err != nil {
			return err
		}

		if err := services.UserService.SetDefaultCity(cmd.Context(), user, city); err != nil {
			return fmt.Errorf("failed to update default city: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default city for '%s' is now %s\n", user.Username, user.MainLocation)
		return nil
	},
}

var usersUpdatePasswordCmd = &cobra.Command{
	Use:   "update-password <username>",
	Short: "Update user password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		user, err := services.UserRepo.FindByUsername(cmd.Context(), username)
		if err != nil {
			return err
		}

		password, err := promptPassword("Enter new password: ", "Confirm new password: ")
		if err != nil {
			return err
		}

		hashedPassword, err := services.AuthService.HashPassword(password)
		if err != nil {
			return err
		}

		user.Password = hashedPassword
		user.UpdatedAt = time.Now()
		if err := services.UserRepo.Update(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password updated for user '%s'\n", username)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No users found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tMAIN LOCATION\tCREATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				user.ID,
				user.Username,
				user.MainLocation,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

// promptPassword reads a password twice from the terminal without echo
func promptPassword(prompt, confirmPrompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(os.Stderr, confirmPrompt)
	confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirmPassword) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(password), nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersSetCityCmd)
	usersCmd.AddCommand(usersUpdatePasswordCmd)
	usersCmd.AddCommand(usersListCmd)
}
