package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rrens/skill-swap/internal/domain"
)

func printUser(w io.Writer, u *domain.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", u.ID)
	fmt.Fprintf(tw, "Name\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email\t%s\n", u.Email)
	fmt.Fprintf(tw, "Location\t%s\n", u.Location)
	fmt.Fprintf(tw, "Offers\t%s\n", strings.Join(u.SkillsOffered, ", "))
	fmt.Fprintf(tw, "Wants\t%s\n", strings.Join(u.SkillsWanted, ", "))
	fmt.Fprintf(tw, "Availability\t%s\n", u.Availability)
	fmt.Fprintf(tw, "Visibility\t%s\n", u.ProfileVisibility)
	fmt.Fprintf(tw, "Rating\t%.1f (%d reviews)\n", u.Rating, u.ReviewCount)
	tw.Flush()
}

func printUserPage(w io.Writer, page domain.Page[domain.User]) {
	if page.Total == 0 {
		fmt.Fprintln(w, "No members found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tOFFERS\tWANTS\tAVAILABILITY\tRATING")
	for _, u := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f\n",
			u.ID, u.Name, u.Location,
			strings.Join(u.SkillsOffered, ", "), strings.Join(u.SkillsWanted, ", "),
			u.Availability, u.Rating)
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d of %d (%d members)\n", page.Page, page.TotalPages, page.Total)
}

func printRequestPage(w io.Writer, page domain.Page[domain.SwapRequestView]) {
	if page.Total == 0 {
		fmt.Fprintln(w, "No requests found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDIRECTION\tWITH\tOFFERED\tWANTED\tSTATUS")
	for _, v := range page.Items {
		direction, with := "from", "(unknown user)"
		if v.IsSent {
			direction = "to"
		}
		if v.OtherUser != nil {
			with = v.OtherUser.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, direction, with, v.SkillOffered, v.SkillWanted, v.Status)
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d of %d (%d requests)\n", page.Page, page.TotalPages, page.Total)
}
