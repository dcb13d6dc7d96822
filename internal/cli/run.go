package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/journal"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/tui"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the interactive cargo view",
		Long: "Open the interactive cargo view. When stdout is not a terminal the " +
			"cargo table is printed once instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, opts)
		},
	}
}

// runApp starts the TUI on a terminal and falls back to a one-shot print.
func runApp(cmd *cobra.Command, opts *rootOptions) error {
	cfg := config.GetGlobalConfig()
	if !tui.IsInteractive(os.Stdout) {
		logger.Debug().Msg("stdout is not a terminal, printing once")
		return printCargo(cmd, cfg, tui.TerminalWidth())
	}
	return runTUI(cmd, cfg, opts.level(cfg))
}

func runTUI(cmd *cobra.Command, cfg *config.Config, level string) error {
	if err := switchToFileLogging(cmd, level); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	base := config.GetLogger()
	src := loadSource(cfg, base)
	if err := src.Watch(ctx); err != nil {
		logger.Warn().Err(err).Str("file", src.Path()).Msg("cargo file is not watched")
	}

	tailer := journal.NewTailer(cfg.Journal.Dir, base)
	go func() {
		if err := tailer.Run(ctx); err != nil {
			logger.Warn().Err(err).Str("dir", tailer.Dir()).Msg("journal tailer stopped")
		}
	}()

	app := tui.NewApp(ctx, tui.Deps{
		Source:     src,
		Catalogue:  cargo.DefaultCatalogue(),
		Remote:     newDirectory(cfg, src, base),
		Table:      cfg.Table,
		Poll:       lookup.PollConfigFrom(cfg.Lookup),
		JournalDir: cfg.Journal.Dir,
		Events:     tailer.Events(),
		Logger:     base,
	})
	defer app.Close()

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
