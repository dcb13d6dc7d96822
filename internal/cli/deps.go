package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

// loadSource reads the cargo snapshot. A missing or broken file leaves the
// source empty; callers that need a carrier check for it themselves.
func loadSource(cfg *config.Config, log zerolog.Logger) *cargo.FileSource {
	src := cargo.NewFileSource(cfg.Cargo.File, log)
	if err := src.Load(); err != nil {
		ev := log.Warn()
		if errors.Is(err, os.ErrNotExist) {
			ev = log.Debug()
		}
		ev.Err(err).Str("file", cfg.Cargo.File).Msg("no cargo snapshot")
	}
	return src
}

// newDirectory builds the remote lookups. The carrier known to src is
// left out of station lists.
func newDirectory(cfg *config.Config, src cargo.Source, log zerolog.Logger) *remote.Directory {
	client := remote.NewHTTPClient(cfg.Lookup.HTTPTimeout)
	carrier := func() string { return cargo.CarrierName(src) }
	return remote.NewDirectory(
		remote.NewEDSM(cfg.Remote.EDSMURL, client, cargo.DefaultCatalogue(), carrier, log),
		remote.NewInara(cfg.Remote.InaraURL, client, log),
	)
}
