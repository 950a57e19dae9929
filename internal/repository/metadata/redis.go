package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/maktaba-cloud/matndex/internal/domain"
)

// RedisConfig holds connection parameters for a Redis catalog source.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	// KeyPrefix namespaces catalog keys, e.g. "matndex:".
	KeyPrefix string
}

// RedisSource loads the catalog from Redis hashes. Texts live under
// <prefix>text:<id>, authors under <prefix>author:<id>. Well-known fields
// are parsed; every other hash field lands in Extra.
type RedisSource struct {
	client rueidis.Client
	prefix string
}

// NewRedisSource connects to Redis and creates a catalog source.
func NewRedisSource(cfg RedisConfig) (*RedisSource, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisSource{client: client, prefix: cfg.KeyPrefix}, nil
}

// Ping checks connectivity.
func (r *RedisSource) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (r *RedisSource) Close() {
	r.client.Close()
}

// Load scans the catalog keys and fetches every hash.
func (r *RedisSource) Load(ctx context.Context) ([]domain.Text, []domain.Author, error) {
	textKeys, err := r.scan(ctx, r.prefix+"text:*")
	if err != nil {
		return nil, nil, fmt.Errorf("scan texts: %w", err)
	}
	authorKeys, err := r.scan(ctx, r.prefix+"author:*")
	if err != nil {
		return nil, nil, fmt.Errorf("scan authors: %w", err)
	}

	textHashes, err := r.getAll(ctx, textKeys)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch texts: %w", err)
	}
	authorHashes, err := r.getAll(ctx, authorKeys)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch authors: %w", err)
	}

	texts := make([]domain.Text, 0, len(textKeys))
	for i, key := range textKeys {
		t, err := parseText(key, r.prefix, textHashes[i])
		if err != nil {
			return nil, nil, err
		}
		texts = append(texts, t)
	}

	authors := make([]domain.Author, 0, len(authorKeys))
	for i, key := range authorKeys {
		a, err := parseAuthor(key, r.prefix, authorHashes[i])
		if err != nil {
			return nil, nil, err
		}
		authors = append(authors, a)
	}

	return texts, authors, nil
}

func (r *RedisSource) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := r.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := r.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", pattern, err)
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

func (r *RedisSource) getAll(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = r.client.B().Hgetall().Key(key).Build()
	}

	results := r.client.DoMulti(ctx, cmds...)
	out := make([]map[string]string, len(results))
	for i, res := range results {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, fmt.Errorf("hgetall %s: %w", keys[i], err)
		}
		out[i] = m
	}

	return out, nil
}

func parseText(key, prefix string, fields map[string]string) (domain.Text, error) {
	id, err := idFromKey(key, prefix+"text:")
	if err != nil {
		return domain.Text{}, err
	}

	t := domain.Text{ID: id}
	for k, v := range fields {
		switch k {
		case "title":
			t.Title = v
		case "author_id":
			n, err := strconv.Atoi(v)
			if err != nil {
				return domain.Text{}, fmt.Errorf("text %d: author_id %q: %w", id, v, err)
			}
			t.AuthorID = n
		case "tags":
			if v != "" {
				t.Tags = strings.Split(v, ",")
			}
		case "volume_count":
			n, err := strconv.Atoi(v)
			if err != nil {
				return domain.Text{}, fmt.Errorf("text %d: volume_count %q: %w", id, v, err)
			}
			t.VolumeCount = n
		default:
			if t.Extra == nil {
				t.Extra = make(map[string]string)
			}
			t.Extra[k] = v
		}
	}
	return t, nil
}

func parseAuthor(key, prefix string, fields map[string]string) (domain.Author, error) {
	id, err := idFromKey(key, prefix+"author:")
	if err != nil {
		return domain.Author{}, err
	}

	a := domain.Author{ID: id}
	for k, v := range fields {
		switch k {
		case "name":
			a.Name = v
		case "death_date_ah":
			n, err := strconv.Atoi(v)
			if err != nil {
				return domain.Author{}, fmt.Errorf("author %d: death_date_ah %q: %w", id, v, err)
			}
			a.DeathDateAH = &n
		case "birth_date_ah":
			n, err := strconv.Atoi(v)
			if err != nil {
				return domain.Author{}, fmt.Errorf("author %d: birth_date_ah %q: %w", id, v, err)
			}
			a.BirthDateAH = &n
		default:
			if a.Extra == nil {
				a.Extra = make(map[string]string)
			}
			a.Extra[k] = v
		}
	}
	return a, nil
}

// idFromKey extracts the numeric ID from a catalog key. Keys that do not
// carry a parsable ID are an error, not a record to guess at.
func idFromKey(key, prefix string) (int, error) {
	suffix := strings.TrimPrefix(key, prefix)
	id, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("catalog key %q: no numeric id: %w", key, err)
	}
	return id, nil
}
