package cli

import (
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

// maxConcurrentBuys bounds the market lookups in flight.
const maxConcurrentBuys = 4

func newBuysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buys <marketId>...",
		Short: "List the commodities markets buy",
		Long: "List the commodities one or more markets have demand for. Markets are " +
			"fetched concurrently; repeated ids are fetched once.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			seen := make(map[int64]bool, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid market id %q", arg)
				}
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			return runBuys(cmd, ids)
		},
	}
}

func runBuys(cmd *cobra.Command, ids []int64) error {
	cfg := config.GetGlobalConfig()
	base := config.GetLogger()
	dir := newDirectory(cfg, loadSource(cfg, base), base)

	results := make([]remote.ItemSet, len(ids))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentBuys)
	for i, id := range ids {
		g.Go(func() error {
			buys, err := dir.BuyList(ctx, id)
			if err != nil {
				return fmt.Errorf("market %d: %w", id, err)
			}
			results[i] = buys
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debug().Int("markets", len(ids)).Int("fetched", dir.CachedBuyLists()).Msg("buy lists resolved")
	return writeBuys(cmd, ids, results, cargo.DefaultCatalogue())
}

func writeBuys(cmd *cobra.Command, ids []int64, results []remote.ItemSet, catalogue *cargo.Catalogue) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Market\tCategory\tCommodity")
	fmt.Fprintln(w, "------\t--------\t---------")

	for i, id := range ids {
		infos := make([]cargo.CommodityInfo, 0, len(results[i]))
		for item := range results[i] {
			if info, ok := catalogue.ExplainID(item); ok {
				infos = append(infos, info)
			}
		}
		if len(infos) == 0 {
			fmt.Fprintf(w, "%d\t\t(buys nothing)\n", id)
			continue
		}
		sort.Slice(infos, func(a, b int) bool {
			if infos[a].Category != infos[b].Category {
				return infos[a].Category < infos[b].Category
			}
			return infos[a].TradeName < infos[b].TradeName
		})
		for _, info := range infos {
			fmt.Fprintf(w, "%d\t%s\t%s\n", id, info.Category, info.TradeName)
		}
	}
	return w.Flush()
}
