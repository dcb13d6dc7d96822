package tui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/alexzk1/ed-fc-companion/internal/cargo"
	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/journal"
	"github.com/alexzk1/ed-fc-companion/internal/lookup"
	"github.com/alexzk1/ed-fc-companion/internal/remote"
)

// Remote resolves station data and web links. *remote.Directory
// implements it.
type Remote interface {
	StationsInSystem(ctx context.Context, system string) (remote.Stations, error)
	BuyList(ctx context.Context, marketID int64) (remote.ItemSet, error)
	CommodityURL(ctx context.Context, name string) (string, error)
	StationURL(ctx context.Context, st remote.Station) (string, error)
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the OS clipboard.
func SystemClipboard() Clipboard { return systemClipboard{} }

// Deps are the collaborators of the application.
type Deps struct {
	Source    cargo.Source
	Catalogue *cargo.Catalogue
	Remote    Remote
	Table     config.TableConfig
	Poll      lookup.PollConfig
	// JournalDir holds Market.json; Events are the journal entries
	// followed there. Both may be empty.
	JournalDir string
	Events     <-chan journal.Event
	Clipboard  Clipboard
	OpenURL    func(url string) error
	Logger     zerolog.Logger
}

var errNoRemote = errors.New("remote lookups are not configured")

func (d Deps) withDefaults() Deps {
	if d.Source == nil {
		d.Source = cargo.NewMemorySource()
	}
	if d.Catalogue == nil {
		d.Catalogue = cargo.DefaultCatalogue()
	}
	if d.Remote == nil {
		d.Remote = offline{}
	}
	if d.Clipboard == nil {
		d.Clipboard = SystemClipboard()
	}
	if d.OpenURL == nil {
		d.OpenURL = browser.OpenURL
	}
	if d.Table == (config.TableConfig{}) {
		d.Table = config.TableConfig{
			CategoryWidth: config.DefaultCategoryWidth,
			AmountWidth:   config.DefaultAmountWidth,
			ScrollbarPad:  config.DefaultScrollbarPad,
			RowPadding:    config.DefaultRowPadding,
			MinHeight:     config.DefaultMinHeight,
			MaxHeight:     config.DefaultMaxHeight,
			Height:        config.DefaultHeight,
		}
	}
	if d.Poll == (lookup.PollConfig{}) {
		d.Poll = lookup.DefaultPollConfig()
	}
	return d
}

// offline fails every lookup.
type offline struct{}

func (offline) StationsInSystem(context.Context, string) (remote.Stations, error) {
	return nil, errNoRemote
}

func (offline) BuyList(context.Context, int64) (remote.ItemSet, error) { return nil, errNoRemote }

func (offline) CommodityURL(context.Context, string) (string, error) { return "", errNoRemote }

func (offline) StationURL(context.Context, remote.Station) (string, error) { return "", errNoRemote }
