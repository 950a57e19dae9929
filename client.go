// Package matndex is the embedded SDK: it wires the search pipeline
// directly against an OpenSearch-compatible engine and a metadata catalog,
// without going through the HTTP API.
package matndex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maktaba-cloud/matndex/internal/engine/opensearch"
	"github.com/maktaba-cloud/matndex/internal/highlight"
	"github.com/maktaba-cloud/matndex/internal/repository/metadata"
	searchrepo "github.com/maktaba-cloud/matndex/internal/repository/search"
	searchuc "github.com/maktaba-cloud/matndex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the matndex SDK entry point.
type Client struct {
	store     *opensearch.Store
	snapshot  *metadata.Snapshot
	searchSvc *searchuc.Service
}

// New creates a matndex Client, connects to the engine, and loads the
// metadata catalog. The provided context bounds the initial readiness check
// and catalog load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	if cfg.engineAddr == "" {
		return nil, errors.New("matndex: engine address required (use WithEngine)")
	}
	if cfg.catalogSource == nil {
		return nil, errors.New("matndex: catalog source required (use WithCatalogFile or WithCatalogSource)")
	}

	store, err := opensearch.NewStore(opensearch.Config{
		Addr:     cfg.engineAddr,
		Username: cfg.engineUsername,
		Password: cfg.enginePassword,
		Timeout:  cfg.requestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("matndex: create engine store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("matndex: engine not ready: %w", err)
	}

	snapshot, err := metadata.Load(ctx, cfg.catalogSource)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("matndex: load catalog: %w", err)
	}

	repo := searchrepo.New(store, searchrepo.Config{
		Index:           cfg.index,
		ExactField:      cfg.exactField,
		CliticField:     cfg.exactField + "." + cfg.cliticSubfield,
		MaxResultWindow: cfg.maxResultWindow,
		FragmentCount:   cfg.fragmentCount,
		FragmentSize:    cfg.fragmentSize,
		PreTag:          cfg.preTag,
		PostTag:         cfg.postTag,
	})

	svc := searchuc.New(repo, snapshot, highlight.New(cfg.preTag, cfg.postTag), searchuc.Limits{
		DefaultPageSize: cfg.defaultPageSize,
		MaxPageSize:     cfg.maxPageSize,
		ExportPageSize:  cfg.exportPageSize,
	})

	return &Client{
		store:     store,
		snapshot:  snapshot,
		searchSvc: svc,
	}, nil
}

// Close releases the engine connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Texts returns the number of catalog texts.
func (c *Client) Texts() int { return c.snapshot.TextCount() }

// Authors returns the number of catalog authors.
func (c *Client) Authors() int { return c.snapshot.AuthorCount() }

// Search starts a fluent search builder.
func (c *Client) Search(query string) *SearchBuilder {
	return &SearchBuilder{client: c, query: query}
}
