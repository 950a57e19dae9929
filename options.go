package matndex

import (
	"time"

	"github.com/maktaba-cloud/matndex/internal/repository/metadata"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	engineAddr     string
	engineUsername string
	enginePassword string
	index          string

	catalogSource metadata.Source

	exactField     string
	cliticSubfield string

	maxResultWindow int
	defaultPageSize int
	maxPageSize     int
	exportPageSize  int
	fragmentCount   int
	fragmentSize    int
	preTag          string
	postTag         string

	requestTimeout   time.Duration
	readinessTimeout time.Duration
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		index:            "pages",
		exactField:       "page_content",
		cliticSubfield:   "proclitic",
		maxResultWindow:  10000,
		defaultPageSize:  20,
		maxPageSize:      100,
		exportPageSize:   5000,
		fragmentCount:    3,
		fragmentSize:     200,
		preTag:           "<em>",
		postTag:          "</em>",
		requestTimeout:   30 * time.Second,
		readinessTimeout: defaultReadinessTimeout,
	}
}

// WithEngine sets the engine address, e.g. "http://localhost:9200".
func WithEngine(addr string) Option {
	return func(c *clientConfig) {
		c.engineAddr = addr
	}
}

// WithEngineAuth sets basic auth credentials for the engine.
func WithEngineAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.engineUsername = username
		c.enginePassword = password
	}
}

// WithIndex sets the page index name. Defaults to "pages".
func WithIndex(name string) Option {
	return func(c *clientConfig) {
		c.index = name
	}
}

// WithCatalogFile loads the text/author catalog from a JSON file.
func WithCatalogFile(path string) Option {
	return func(c *clientConfig) {
		c.catalogSource = metadata.NewFileSource(path)
	}
}

// WithCatalogSource sets a custom catalog source, e.g. a RedisSource.
func WithCatalogSource(src metadata.Source) Option {
	return func(c *clientConfig) {
		c.catalogSource = src
	}
}

// WithPageSizes overrides the default, maximum, and export page sizes.
func WithPageSizes(def, max, export int) Option {
	return func(c *clientConfig) {
		if def > 0 {
			c.defaultPageSize = def
		}
		if max > 0 {
			c.maxPageSize = max
		}
		if export > 0 {
			c.exportPageSize = export
		}
	}
}

// WithResultWindow overrides the maximum result window.
func WithResultWindow(w int) Option {
	return func(c *clientConfig) {
		if w > 0 {
			c.maxResultWindow = w
		}
	}
}

// WithReadinessTimeout bounds the initial engine readiness wait.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.readinessTimeout = d
		}
	}
}
