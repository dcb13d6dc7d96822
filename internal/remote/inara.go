package remote

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

const (
	inaraSearchPath     = "/sites/elite/ajaxsearch.php"
	inaraCommodityHref  = `<a href="/elite/commodity/`
	inaraSearchType     = "GlobalSearch"
	inaraRequestedWith  = "XMLHttpRequest"
	inaraAcceptResponse = "application/json, text/javascript, */*; q=0.01"
)

//nolint:gochecknoglobals // compiled once
var hrefPattern = regexp.MustCompile(`(?is)href="([^"]+)"`)

type inaraResult struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Inara resolves web links through Inara's global search.
type Inara struct {
	BaseURL    string
	HTTPClient *http.Client

	logger zerolog.Logger
}

// NewInara returns an Inara client.
func NewInara(baseURL string, client *http.Client, logger zerolog.Logger) *Inara {
	return &Inara{
		BaseURL:    baseURL,
		HTTPClient: client,
		logger:     logger.With().Str("component", "inara").Logger(),
	}
}

func (i *Inara) search(ctx context.Context, term string) ([]inaraResult, error) {
	if term == "" {
		return nil, ErrEmptyName
	}
	headers := map[string]string{
		"Referer":          strings.TrimSuffix(i.BaseURL, "/") + "/",
		"X-Requested-With": inaraRequestedWith,
		"Accept":           inaraAcceptResponse,
	}
	var results []inaraResult
	err := getJSON(ctx, i.HTTPClient, i.BaseURL, inaraSearchPath,
		url.Values{"type": {inaraSearchType}, "term": {term}}, headers, &results)
	if err != nil {
		return nil, err
	}
	i.logger.Debug().Str("term", term).Int("results", len(results)).Msg("inara search")
	return results, nil
}

func (i *Inara) absolute(href string) string {
	return strings.TrimSuffix(i.BaseURL, "/") + href
}

// CommodityURL returns the Inara page of the named commodity.
func (i *Inara) CommodityURL(ctx context.Context, name string) (string, error) {
	results, err := i.search(ctx, name)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		if !strings.HasPrefix(r.Label, inaraCommodityHref) {
			continue
		}
		if m := hrefPattern.FindStringSubmatch(r.Label); m != nil {
			return i.absolute(m[1]), nil
		}
	}
	return "", ErrNotFound
}

// StationURL returns the Inara page of station in system.
func (i *Inara) StationURL(ctx context.Context, station, system string) (string, error) {
	results, err := i.search(ctx, station)
	if err != nil {
		return "", err
	}
	target := Station{Name: station, System: system}.Key()
	for _, r := range results {
		if r.Value != target {
			continue
		}
		if m := hrefPattern.FindStringSubmatch(r.Label); m != nil {
			return i.absolute(m[1]), nil
		}
	}
	return "", ErrNotFound
}
