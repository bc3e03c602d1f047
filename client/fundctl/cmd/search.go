package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchMinAmount int64
	searchRegion    string
	searchType      string
	searchRanked    bool
)

// rankedItem is a catalog entry scored by funding evidence.
type rankedItem struct {
	fundingItem
	InfoScore float64 `json:"infoScore"`
	Reasoning string  `json:"reasoning"`
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the funding catalog",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		if query := strings.Join(args, " "); query != "" {
			q.Set("q", query)
		}
		if searchMinAmount > 0 {
			q.Set("minAmount", strconv.FormatInt(searchMinAmount, 10))
		}
		if searchRegion != "" {
			q.Set("region", searchRegion)
		}
		if searchType != "" {
			q.Set("type", searchType)
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()
		if searchRanked {
			return rankedSearch(ctx, cmd, q)
		}
		var result struct {
			Count int           `json:"count"`
			Items []fundingItem `json:"items"`
		}
		if err := newClient().GetJSON(ctx, "/api/v1/search?"+q.Encode(), &result); err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d opportunities\n", result.Count)
		printItems(cmd.OutOrStdout(), result.Items)
		return nil
	},
}

func rankedSearch(ctx context.Context, cmd *cobra.Command, q url.Values) error {
	var result struct {
		TotalHits int          `json:"totalHits"`
		Results   []rankedItem `json:"results"`
	}
	if err := newClient().GetJSON(ctx, "/api/v1/search/ranked?"+q.Encode(), &result); err != nil {
		return err
	}
	if outputJSON {
		return printJSON(cmd, result)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "Top %d of %d by funding evidence\n", len(result.Results), result.TotalHits)
	fmt.Fprintln(w, "SCORE\tID\tTITLE\tREASONING")
	for _, r := range result.Results {
		fmt.Fprintf(w, "%g\t%s\t%s\t%s\n", r.InfoScore, r.ID, r.Title, r.Reasoning)
	}
	return w.Flush()
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()
		var item fundingItem
		if err := newClient().GetJSON(ctx, "/api/v1/catalog/"+url.PathEscape(args[0]), &item); err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd, item)
		}
		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int64Var(&searchMinAmount, "min-amount", 0, "minimum amount in rupees")
	searchCmd.Flags().StringVar(&searchRegion, "region", "", `region filter, e.g. "Tamil Nadu"`)
	searchCmd.Flags().StringVar(&searchType, "type", "", "investor type: Govt, VC, Angel or Subsidy")
	searchCmd.Flags().BoolVar(&searchRanked, "ranked", false, "rank results by strength of funding evidence")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
}
