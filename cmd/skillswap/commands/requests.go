package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Rrens/skill-swap/internal/domain"
)

func requestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Send and answer swap requests",
	}
	cmd.AddCommand(
		requestsSendCmd(),
		requestsListCmd(),
		requestsDecideCmd("accept", domain.StatusAccepted),
		requestsDecideCmd("reject", domain.StatusRejected),
	)
	return cmd
}

func requestsSendCmd() *cobra.Command {
	var input domain.SwapRequestCreate

	cmd := &cobra.Command{
		Use:   "send <user-id>",
		Short: "Offer a skill swap to another member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := currentUser(cmd.Context())
			if err != nil {
				return err
			}

			input.ToUserID, err = uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user ID %q", args[0])
			}

			req, err := appCtx.requests.Create(cmd.Context(), me.ID, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %s sent\n", req.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.SkillOffered, "offer", "", "one of your offered skills")
	cmd.Flags().StringVar(&input.SkillWanted, "want", "", "one of their wanted skills")
	cmd.Flags().StringVarP(&input.Message, "message", "m", "", "note to the recipient")
	return cmd
}

func requestsListCmd() *cobra.Command {
	var (
		page     int
		relation string
		filter   domain.RequestFilter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Page through your sent and received requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := currentUser(cmd.Context())
			if err != nil {
				return err
			}

			views, err := appCtx.requests.ListForUserJoined(cmd.Context(), me.ID, domain.Relation(relation))
			if err != nil {
				return err
			}
			views = domain.FilterRequestViews(views, filter)

			printRequestPage(cmd.OutOrStdout(), domain.Paginate(views, page, appCtx.cfg.Pagination.RequestsPerPage))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&relation, "relation", string(domain.RelationAll), "sent, received or all")
	cmd.Flags().StringVar(&filter.Status, "status", domain.StatusAll, "all, pending, accepted or rejected")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "match the other member's name or a skill")
	return cmd
}

func requestsDecideCmd(verb string, status domain.RequestStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <request-id>",
		Short: fmt.Sprintf("Mark a pending request sent to you as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := currentUser(cmd.Context())
			if err != nil {
				return err
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid request ID %q", args[0])
			}

			req, err := appCtx.requests.UpdateStatus(cmd.Context(), me.ID, id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request %s %s\n", req.ID, req.Status)
			return nil
		},
	}
}
