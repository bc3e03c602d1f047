package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var savedSort string

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved funding items",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved items grouped into government and private funding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var view struct {
			Sort              string  `json:"sort"`
			Count             int     `json:"count"`
			TotalLakhs        float64 `json:"totalLakhs"`
			UpcomingDeadlines int     `json:"upcomingDeadlines"`
			Groups            struct {
				Govt    []fundingItem `json:"govt"`
				Private []fundingItem `json:"private"`
			} `json:"groups"`
		}
		if err := newClient().GetJSON(ctx, "/api/v1/saved?sort="+url.QueryEscape(savedSort), &view); err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, view)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%d saved, ₹%.1f L total, %d upcoming deadlines (sorted by %s)\n\n", view.Count, view.TotalLakhs, view.UpcomingDeadlines, view.Sort)
		fmt.Fprintln(w, "Government schemes:")
		printItems(w, view.Groups.Govt)
		fmt.Fprintln(w, "\nPrivate funding:")
		printItems(w, view.Groups.Private)
		return nil
	},
}

var savedToggleCmd = &cobra.Command{
	Use:   "toggle [item-id]",
	Short: "Save or unsave a catalog item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var resp struct {
			Saved bool `json:"saved"`
		}
		if err := newClient().PostJSON(ctx, "/api/v1/saved/toggle", map[string]string{"id": args[0]}, &resp); err != nil {
			return err
		}
		if resp.Saved {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		}
		return nil
	},
}

func init() {
	savedListCmd.Flags().StringVar(&savedSort, "sort", "recent", "sort order: recent, amount or deadline")
	savedCmd.AddCommand(savedListCmd, savedToggleCmd)
	rootCmd.AddCommand(savedCmd)
}
