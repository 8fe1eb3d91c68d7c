package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Rrens/skill-swap/internal/domain"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse the member directory",
	}
	cmd.AddCommand(usersListCmd(), usersSearchCmd(), usersShowCmd())
	return cmd
}

func usersListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through public profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := appCtx.directory.ListPublic(cmd.Context())
			if err != nil {
				return err
			}
			printUserPage(cmd.OutOrStdout(), domain.Paginate(users, page, appCtx.cfg.Pagination.UsersPerPage))
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func usersSearchCmd() *cobra.Command {
	var (
		page         int
		availability string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter profiles by name, location or skill and by availability",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			users, err := appCtx.directory.Search(cmd.Context(), query, availability)
			if err != nil {
				return err
			}
			printUserPage(cmd.OutOrStdout(), domain.Paginate(users, page, appCtx.cfg.Pagination.UsersPerPage))
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&availability, "availability", domain.AvailabilityAll, "all, weekends, evenings, weekdays or flexible")
	return cmd
}

func usersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user ID %q", args[0])
			}

			user, err := appCtx.directory.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}
