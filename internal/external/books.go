// Package external consulta descripciones de libros en Open Library y
// Google Books. Cada proveedor tiene su propio circuit breaker.
package external

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/metrics"
)

const (
	ProviderOpenLibrary = "openlibrary"
	ProviderGoogleBooks = "googlebooks"
)

// ErrNotFound el proveedor respondió pero no tiene descripción.
var ErrNotFound = errors.New("external: description not found")

type Config struct {
	OpenLibraryURL string
	GoogleBooksURL string
	Timeout        time.Duration
}

type Client struct {
	http        *http.Client
	openLibrary string
	googleBooks string
	olBreaker   *gobreaker.CircuitBreaker[string]
	gbBreaker   *gobreaker.CircuitBreaker[string]
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: cfg.Timeout},
		openLibrary: strings.TrimRight(cfg.OpenLibraryURL, "/"),
		googleBooks: strings.TrimRight(cfg.GoogleBooksURL, "/"),
		olBreaker:   newBreaker(ProviderOpenLibrary),
		gbBreaker:   newBreaker(ProviderGoogleBooks),
	}
}

// Abre con >= 60% de fallas sobre al menos 5 requests. Un "no encontrado" no
// cuenta como falla.
func newBreaker(name string) *gobreaker.CircuitBreaker[string] {
	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l := logging.Component("external")
			l.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker")
		},
	})
}

// OpenLibraryDescription usa /api/books?jscmd=details. La descripción puede
// venir como string o como {"value": "..."}.
func (c *Client) OpenLibraryDescription(ctx context.Context, isbn string) (string, error) {
	return c.run(c.olBreaker, ProviderOpenLibrary, func() (string, error) {
		key := "ISBN:" + isbn
		q := url.Values{}
		q.Set("bibkeys", key)
		q.Set("jscmd", "details")
		q.Set("format", "json")

		var body map[string]struct {
			Details struct {
				Description json.RawMessage `json:"description"`
			} `json:"details"`
		}
		if err := c.getJSON(ctx, c.openLibrary+"/api/books?"+q.Encode(), &body); err != nil {
			return "", err
		}
		entry, ok := body[key]
		if !ok {
			return "", ErrNotFound
		}
		desc := decodeDescription(entry.Details.Description)
		if desc == "" {
			return "", ErrNotFound
		}
		return desc, nil
	})
}

// GoogleBooksDescription busca por q (p.ej. "isbn:..." o "intitle:...") y
// devuelve la descripción del primer volumen.
func (c *Client) GoogleBooksDescription(ctx context.Context, query string) (string, error) {
	return c.run(c.gbBreaker, ProviderGoogleBooks, func() (string, error) {
		var body struct {
			Items []struct {
				VolumeInfo struct {
					Description string `json:"description"`
				} `json:"volumeInfo"`
			} `json:"items"`
		}
		u := c.googleBooks + "/books/v1/volumes?q=" + url.QueryEscape(query)
		if err := c.getJSON(ctx, u, &body); err != nil {
			return "", err
		}
		if len(body.Items) == 0 || body.Items[0].VolumeInfo.Description == "" {
			return "", ErrNotFound
		}
		return body.Items[0].VolumeInfo.Description, nil
	})
}

func (c *Client) run(cb *gobreaker.CircuitBreaker[string], provider string, fn func() (string, error)) (string, error) {
	desc, err := cb.Execute(fn)
	switch {
	case err == nil:
		metrics.RecordExternalLookup(provider, "hit")
	case errors.Is(err, ErrNotFound):
		metrics.RecordExternalLookup(provider, "miss")
	default:
		metrics.RecordExternalLookup(provider, "error")
	}
	return desc, err
}

func (c *Client) getJSON(ctx context.Context, u string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("external: %s: status %d: %s", u, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Value)
	}
	return ""
}
