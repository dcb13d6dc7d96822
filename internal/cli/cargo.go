package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/tui"
	"github.com/alexzk1/ed-fc-companion/internal/tui/canvas"
	"github.com/alexzk1/ed-fc-companion/internal/tui/table"
)

func newCargoCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "cargo",
		Short: "Print the carrier cargo table",
		Args:  cobra.NoArgs,
		Example: `  # Print at the terminal width
  edfc cargo

  # Print 60 columns wide
  edfc cargo --width 60`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := width
			if w <= 0 {
				w = tui.TerminalWidth()
			}
			return printCargo(cmd, config.GetGlobalConfig(), w)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "table width in columns (default: terminal width)")
	return cmd
}

// printCargo draws the cargo table once, without colors, and writes it to
// the command output.
func printCargo(cmd *cobra.Command, cfg *config.Config, width int) error {
	base := config.GetLogger()
	src := cargo.NewFileSource(cfg.Cargo.File, base)
	if err := src.Load(); err != nil {
		return err
	}

	surface := canvas.NewBuffer(0)
	view := table.NewView(src, cargo.DefaultCatalogue(), surface, cfg.Table, table.Palette{}, base)
	view.Resize(width)
	view.Idle()

	st := view.State()
	if st.Owner == "" {
		return fmt.Errorf("%w in %s", cargo.ErrNoCarrier, cfg.Cargo.File)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Carrier %s\n\n", st.Owner)
	for _, line := range surface.PlainLines() {
		fmt.Fprintln(out, line)
	}
	return nil
}
