// internal/cli/source.go
//
// Candidate source wiring shared by play and serve: the Datamuse client,
// optionally wrapped in the sqlite pool cache.

package cli

import (
	"fmt"

	"github.com/palabreo/palabreo/internal/config"
	"github.com/palabreo/palabreo/internal/datamuse"
	"github.com/palabreo/palabreo/internal/game"
	"github.com/palabreo/palabreo/internal/wordcache"
)

func buildSource(cfg *config.Config) (game.Source, func() error, error) {
	client := datamuse.NewClient(datamuse.Options{
		BaseURL:    cfg.Provider.BaseURL,
		Timeout:    cfg.Provider.Timeout,
		MaxResults: cfg.Provider.MaxResults,
		Language:   cfg.Language,
	})
	if cfg.Cache.Path == "" {
		return client, func() error { return nil }, nil
	}
	cache, err := wordcache.Open(cfg.Cache.Path, client, cfg.Language, cfg.Cache.TTL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening word cache: %w", err)
	}
	return cache, cache.Close, nil
}
