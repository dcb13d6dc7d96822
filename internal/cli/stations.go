package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

const tabPadding = 2

func newStationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stations <system>",
		Short: "List the stations with a market in a system",
		Long: "List the stations with a market in a system, grouped by station type. " +
			"Your own carrier is left out.",
		Args: cobra.MinimumNArgs(1),
		Example: `  # Names with spaces need no quoting
  edfc stations Shinrarta Dezhra`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStations(cmd, strings.Join(args, " "))
		},
	}
}

func runStations(cmd *cobra.Command, system string) error {
	cfg := config.GetGlobalConfig()
	base := config.GetLogger()
	dir := newDirectory(cfg, loadSource(cfg, base), base)

	ctx := cmd.Context()
	req := lookup.NewRequester(dir.StationsInSystem, lookup.PollConfigFrom(cfg.Lookup), base)
	stations, err := req.Await(ctx, req.Submit(ctx, system))
	if err != nil {
		return fmt.Errorf("looking up stations in %s: %w", system, err)
	}

	if stations.Len() == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stations with a market in %s\n", system)
		return nil
	}
	return writeStations(cmd, stations)
}

func writeStations(cmd *cobra.Command, stations remote.Stations) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Type\tStation\tMarket\tPads")
	fmt.Fprintln(w, "----\t-------\t------\t----")

	for _, typ := range stations.Types() {
		list := append([]remote.Station(nil), stations[typ]...)
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		for _, st := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", typ, st.Name, st.MarketID, st.Pads)
		}
	}
	return w.Flush()
}
