// Package opensearch implements engine.Store over the OpenSearch HTTP API.
package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maktaba-cloud/matndex/internal/engine"
)

// Compile-time check: Store implements engine.Store.
var _ engine.Store = (*Store)(nil)

const defaultTimeout = 30 * time.Second

// Config holds connection parameters for an OpenSearch store.
type Config struct {
	// Addr is the base URL of the engine, e.g. "http://localhost:9200".
	Addr     string
	Username string
	Password string
	Timeout  time.Duration
}

// Store talks to a single OpenSearch endpoint over HTTP.
type Store struct {
	base     string
	username string
	password string
	client   *http.Client
}

// NewStore creates an OpenSearch store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("addr is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{
		base:     strings.TrimRight(cfg.Addr, "/"),
		username: cfg.Username,
		password: cfg.Password,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Search executes a structured query against the given index.
func (s *Store) Search(ctx context.Context, index string, q *engine.Query) (*engine.Response, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	raw, status, err := s.do(ctx, http.MethodPost, "/"+index+"/_search", body)
	if err != nil {
		return nil, &engine.Error{Op: "search", Err: fmt.Errorf("%w: %w", engine.ErrUnavailable, err)}
	}
	if status != http.StatusOK {
		return nil, &engine.Error{
			Op: "search", Status: status,
			Err: fmt.Errorf("%w: %s", engine.ErrBadResponse, errorReason(raw, status)),
		}
	}

	var resp engine.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &engine.Error{
			Op: "search", Status: status,
			Err: fmt.Errorf("%w: decode response: %w", engine.ErrBadResponse, err),
		}
	}
	return &resp, nil
}

// CreateIndex creates an index with the given settings/mappings body.
func (s *Store) CreateIndex(ctx context.Context, index string, body []byte) error {
	raw, status, err := s.do(ctx, http.MethodPut, "/"+index, body)
	if err != nil {
		return &engine.Error{Op: "create index", Err: fmt.Errorf("%w: %w", engine.ErrUnavailable, err)}
	}
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusBadRequest && strings.Contains(string(raw), "resource_already_exists_exception"):
		return engine.ErrIndexExists
	default:
		return &engine.Error{
			Op: "create index", Status: status,
			Err: fmt.Errorf("%w: %s", engine.ErrBadResponse, errorReason(raw, status)),
		}
	}
}

// IndexExists probes index existence; a 404 means absent.
func (s *Store) IndexExists(ctx context.Context, index string) (bool, error) {
	raw, status, err := s.do(ctx, http.MethodHead, "/"+index, nil)
	if err != nil {
		return false, &engine.Error{Op: "index exists", Err: fmt.Errorf("%w: %w", engine.ErrUnavailable, err)}
	}
	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &engine.Error{
			Op: "index exists", Status: status,
			Err: fmt.Errorf("%w: %s", engine.ErrBadResponse, errorReason(raw, status)),
		}
	}
}

// Ping checks connectivity against the cluster root.
func (s *Store) Ping(ctx context.Context) error {
	raw, status, err := s.do(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return &engine.Error{Op: "ping", Err: fmt.Errorf("%w: %w", engine.ErrUnavailable, err)}
	}
	if status != http.StatusOK {
		return &engine.Error{
			Op: "ping", Status: status,
			Err: fmt.Errorf("%w: %s", engine.ErrBadResponse, errorReason(raw, status)),
		}
	}
	return nil
}

// Close releases idle connections.
func (s *Store) Close() {
	s.client.CloseIdleConnections()
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for engine: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) do(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.base+path, rd)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.username != "" {
		req.SetBasicAuth(s.username, s.password)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return raw, resp.StatusCode, nil
}

// errorReason extracts the engine's error reason from a failure body,
// falling back to the HTTP status.
func errorReason(raw []byte, status int) string {
	var envelope struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Reason != "" {
		return envelope.Error.Type + ": " + envelope.Error.Reason
	}
	return fmt.Sprintf("status %d", status)
}
