package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rrens/skill-swap/internal/domain"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}
	cmd.AddCommand(profileUpdateCmd())
	return cmd
}

// profile update only touches the fields whose flags were given
func profileUpdateCmd() *cobra.Command {
	var (
		name, location, availability, visibility string
		offered, wanted                          []string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit fields of your own profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			var update domain.UserUpdate
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("location") {
				update.Location = &location
			}
			if flags.Changed("offer") {
				update.SkillsOffered = &offered
			}
			if flags.Changed("want") {
				update.SkillsWanted = &wanted
			}
			if flags.Changed("availability") {
				a := domain.Availability(availability)
				update.Availability = &a
			}
			if flags.Changed("visibility") {
				v := domain.Visibility(visibility)
				update.ProfileVisibility = &v
			}
			if update.Empty() {
				return fmt.Errorf("nothing to update, pass at least one flag")
			}

			user, err := appCtx.identity.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&location, "location", "", "city or region")
	cmd.Flags().StringSliceVar(&offered, "offer", nil, "replace the skills you offer")
	cmd.Flags().StringSliceVar(&wanted, "want", nil, "replace the skills you want")
	cmd.Flags().StringVar(&availability, "availability", "", "weekends, evenings, weekdays or flexible")
	cmd.Flags().StringVar(&visibility, "visibility", "", "public or private")
	return cmd
}
