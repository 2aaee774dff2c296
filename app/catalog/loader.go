package catalog

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed data/verbs.json data/parameters.json
var defaultData embed.FS

// Names of the embedded default documents, used when a source is left empty.
const (
	DefaultVerbsDocument      = "data/verbs.json"
	DefaultParametersDocument = "data/parameters.json"
)

// ErrUnavailable wraps any failure to fetch a catalog document.
var ErrUnavailable = errors.New("catalog unavailable")

// maxDocumentSize bounds how much of a remote document is read.
const maxDocumentSize = 8 << 20

// Sources names where the two catalog documents live. Each value is a local
// path, an http(s) URL, or empty for the embedded default.
type Sources struct {
	Verbs      string
	Parameters string
}

// IsRemote reports whether either document is fetched over HTTP.
func (s Sources) IsRemote() bool {
	return isURL(s.Verbs) || isURL(s.Parameters)
}

// Loader fetches both catalog documents and builds a Catalog.
type Loader struct {
	Client *http.Client
	Logger *zap.Logger
}

// NewLoader returns a Loader using an HTTP client with the given timeout.
func NewLoader(timeout time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		Client: &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

// Load fetches both documents concurrently and builds the catalog. If either
// fetch fails the whole load fails; a partial catalog is never returned.
func (l *Loader) Load(ctx context.Context, src Sources) (*Catalog, error) {
	logger := l.logger()
	start := time.Now()

	var verbData, schemaData []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.fetch(gctx, src.Verbs, DefaultVerbsDocument)
		if err != nil {
			return fmt.Errorf("verb index: %w", err)
		}
		verbData = data
		return nil
	})
	g.Go(func() error {
		data, err := l.fetch(gctx, src.Parameters, DefaultParametersDocument)
		if err != nil {
			return fmt.Errorf("parameter schema: %w", err)
		}
		schemaData = data
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("catalog load failed", zap.Error(err))
		return nil, err
	}

	c, err := Parse(verbData, FormatFor(src.Verbs), schemaData, FormatFor(src.Parameters))
	if err != nil {
		logger.Error("catalog rejected", zap.Error(err))
		return nil, err
	}
	for _, w := range c.Warnings {
		logger.Warn("catalog warning", zap.String("detail", w))
	}
	logger.Info("catalog loaded",
		zap.String("verbs_source", describeSource(src.Verbs)),
		zap.String("parameters_source", describeSource(src.Parameters)),
		zap.Int("cmdlets", c.Len()),
		zap.Int("warnings", len(c.Warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return c, nil
}

// Parse builds a catalog from the raw bytes of both documents.
func Parse(verbData []byte, verbFormat Format, schemaData []byte, schemaFormat Format) (*Catalog, error) {
	verbs, err := decodeVerbIndex(verbData, verbFormat)
	if err != nil {
		return nil, &LoadError{Problems: []string{err.Error()}}
	}
	schemas, err := decodeSchemas(schemaData, schemaFormat)
	if err != nil {
		return nil, &LoadError{Problems: []string{err.Error()}}
	}
	return build(verbs, schemas)
}

// Default builds the embedded catalog.
func Default() (*Catalog, error) {
	verbData, err := defaultData.ReadFile(DefaultVerbsDocument)
	if err != nil {
		return nil, err
	}
	schemaData, err := defaultData.ReadFile(DefaultParametersDocument)
	if err != nil {
		return nil, err
	}
	return Parse(verbData, FormatJSON, schemaData, FormatJSON)
}

func (l *Loader) fetch(ctx context.Context, location, fallback string) ([]byte, error) {
	switch {
	case location == "":
		return defaultData.ReadFile(fallback)
	case isURL(location):
		return l.fetchURL(ctx, location)
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return data, nil
	}
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrUnavailable, url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, url, err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrUnavailable, url, maxDocumentSize)
	}
	l.logger().Debug("fetched catalog document", zap.String("url", url), zap.Int("bytes", len(data)))
	return data, nil
}

func (l *Loader) logger() *zap.Logger {
	if l == nil || l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func describeSource(location string) string {
	if location == "" {
		return "embedded"
	}
	return location
}
