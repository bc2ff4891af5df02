// internal/datamuse/client.go
//
// Datamuse-backed candidate acquisition.
//
// Responsibilities:
//   - Query the Datamuse word API for words of an exact letter count.
//   - Canonicalize, re-filter, and dedupe entries into a words.Pool.
//
// Request shape:
//   GET {base}/words?sp=?????&v=es&max=1000
//   sp is a wildcard pattern with one '?' per letter; v selects the
//   vocabulary; max caps the result size.
//
// Failure policy: one attempt, no retries. Timeouts, transport failures,
// non-2xx statuses and undecodable payloads surface as errors; individual
// entries that fail canonicalization are silently dropped.

package datamuse

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/palabreo/palabreo/internal/words"
)

// Client queries one Datamuse endpoint. Safe for concurrent use.
type Client struct {
	http       *resty.Client
	language   string
	maxResults int
}

// Options configure a Client.
type Options struct {
	BaseURL    string        // e.g. https://api.datamuse.com
	Timeout    time.Duration // whole-request budget for the single attempt
	MaxResults int           // Datamuse max= parameter
	Language   string        // Datamuse vocabulary code, e.g. "es"
}

// NewClient builds a Datamuse client from opts.
func NewClient(opts Options) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(opts.Timeout).
			SetHeader("Accept", "application/json"),
		language:   opts.Language,
		maxResults: opts.MaxResults,
	}
}

// entry is the slice of the Datamuse response we consume.
type entry struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Candidates fetches words of exactly length letters, canonicalized and
// deduplicated in response order. A successful call that yields zero usable
// words returns an empty pool and a nil error; the caller decides severity.
func (c *Client) Candidates(ctx context.Context, length int) (*words.Pool, error) {
	var entries []entry
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"sp":  strings.Repeat("?", length),
			"v":   c.language,
			"max": strconv.Itoa(c.maxResults),
		}).
		SetResult(&entries).
		// Decode the body as JSON even when the upstream mislabels the
		// content type; a 200 that does not parse must fail, not read as
		// zero candidates.
		ForceContentType("application/json").
		Get("/words")
	if err != nil {
		return nil, fmt.Errorf("datamuse: fetching %d-letter words: %w", length, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("datamuse: unexpected status %s", resp.Status())
	}

	// Canonicalize every entry, then re-check the constraints: stripping
	// marks or expanding compatibility forms can change the letter count.
	usable := lo.FilterMap(entries, func(e entry, _ int) (string, bool) {
		w := words.Normalize(strings.TrimSpace(e.Word))
		if len(w) != length || !words.IsAlphabetic(w) {
			return "", false
		}
		return w, true
	})

	pool := words.NewPool()
	lo.ForEach(usable, func(w string, _ int) { pool.Add(w) })

	log.Debug().
		Int("length", length).
		Int("fetched", len(entries)).
		Int("usable", pool.Len()).
		Msg("datamuse candidates")
	return pool, nil
}
