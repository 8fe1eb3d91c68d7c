package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rrens/skill-swap/internal/domain"
)

func registerCmd() *cobra.Command {
	var input domain.UserCreate
	var availability string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.Name == "" || input.Location == "" {
				return fmt.Errorf("--name and --location are required")
			}
			input.Availability = domain.Availability(availability)
			if input.Password == "" {
				pw, err := promptPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				input.Password = pw
			}

			user, err := appCtx.identity.Register(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", user.Name)
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Location, "location", "", "city or region")
	cmd.Flags().StringSliceVar(&input.SkillsOffered, "offer", nil, "skills you can teach (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&input.SkillsWanted, "want", nil, "skills you want to learn")
	cmd.Flags().StringVar(&availability, "availability", "", "weekends, evenings, weekdays or flexible (default weekends)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in as an existing member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := promptPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				password = pw
			}

			user, err := appCtx.identity.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.identity.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := currentUser(cmd.Context())
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo dataset where it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.store.Seed(cmd.Context(), appCtx.hasher.Hash); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Demo data present")
			return nil
		},
	}
}
