package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/textmode-tools/gosauce/internal/app"
)

var curatorCmd = &cobra.Command{
	Use:              "curator",
	Short:            "Manage SSH gallery curator accounts",
	PersistentPreRun: bootApp,
}

func init() {
	curatorCmd.AddCommand(curatorCreateCmd)
	curatorCmd.AddCommand(curatorInfoCmd)
	curatorCmd.AddCommand(curatorPassCmd)
	curatorCmd.AddCommand(curatorRemoveCmd)
	curatorCmd.AddCommand(curatorRenameCmd)
}

var curatorCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new curator account",
	Run: func(cmd *cobra.Command, args []string) {
		var username, password string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Description("Enter the desired username").
					Value(&username).
					Validate(func(str string) error {
						if len(str) < 3 {
							return fmt.Errorf("username must be at least 3 characters")
						}
						if _, err := app.Catalog.FindUserByUsername(str); err == nil {
							return fmt.Errorf("username already taken")
						}
						return nil
					}),
				huh.NewInput().
					Title("Password").
					Description("Enter a strong password").
					EchoMode(huh.EchoModePassword).
					Value(&password).
					Validate(func(str string) error {
						if len(str) < 6 {
							return fmt.Errorf("password must be at least 6 characters")
						}
						return nil
					}),
			),
		)

		if err := form.Run(); err != nil {
			log.Fatal(err)
		}

		if err := app.Catalog.CreateUser(username, password); err != nil {
			log.Fatalf("failed to create curator: %v", err)
		}

		fmt.Printf("curator '%s' created\n", username)
	},
}

var curatorInfoCmd = &cobra.Command{
	Use:   "info <username>",
	Short: "Display information about a curator",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		user, err := app.Catalog.FindUserByUsername(username)
		if err != nil {
			log.Fatalf("error: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%d\n", user.ID)
		fmt.Fprintf(w, "Username:\t%s\n", user.Username)
		fmt.Fprintf(w, "Created At:\t%s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
		w.Flush()
	},
}

var curatorPassCmd = &cobra.Command{
	Use:   "password <username> <new_password>",
	Short: "Set a curator's password",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, newPass := args[0], args[1]

		if err := app.Catalog.UpdatePassword(username, newPass); err != nil {
			log.Fatalf("error updating password: %v", err)
		}
		fmt.Printf("password updated for curator '%s'\n", username)
	},
}

var curatorRemoveCmd = &cobra.Command{
	Use:   "remove <username>",
	Short: "Permanently remove a curator account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]

		if err := app.Catalog.RemoveUser(username); err != nil {
			log.Fatalf("error removing curator: %v", err)
		}
		fmt.Printf("curator '%s' removed\n", username)
	},
}

var curatorRenameCmd = &cobra.Command{
	Use:   "rename <old_name> <new_name>",
	Short: "Rename a curator account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		oldName, newName := args[0], args[1]

		if err := app.Catalog.RenameUser(oldName, newName); err != nil {
			log.Fatalf("error renaming curator: %v", err)
		}
		fmt.Printf("curator '%s' renamed to '%s'\n", oldName, newName)
	},
}
