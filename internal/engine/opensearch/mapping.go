package opensearch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MappingConfig describes the corpus page index.
type MappingConfig struct {
	// ContentField is the exact-match text field, e.g. "page_content".
	ContentField string
	// CliticSubfield names the clitic-expanded subfield under ContentField.
	CliticSubfield string
	// Clitics is the set of one-letter proclitics the subfield folds away.
	Clitics []string
	// MaxResultWindow is the deepest from+size the index will serve. Must
	// cover the export cap.
	MaxResultWindow int
}

// BuildIndexBody renders the settings/mappings JSON for the corpus page
// index. The clitic subfield is analyzed with a pattern_capture filter that
// keeps both the original token and the token with its leading proclitic
// stripped, so a bare term matches its proclitic-prefixed occurrences.
func BuildIndexBody(cfg MappingConfig) ([]byte, error) {
	if cfg.ContentField == "" {
		return nil, fmt.Errorf("content field is required")
	}
	if cfg.CliticSubfield == "" {
		return nil, fmt.Errorf("clitic subfield is required")
	}
	if len(cfg.Clitics) == 0 {
		return nil, fmt.Errorf("at least one proclitic is required")
	}
	for _, c := range cfg.Clitics {
		if len([]rune(c)) != 1 {
			return nil, fmt.Errorf("proclitic %q must be a single letter", c)
		}
	}
	if cfg.MaxResultWindow < 1 {
		return nil, fmt.Errorf("max result window must be positive")
	}

	pattern := "^[" + strings.Join(cfg.Clitics, "") + "](.+)$"

	body := map[string]any{
		"settings": map[string]any{
			"index": map[string]any{
				"max_result_window": cfg.MaxResultWindow,
			},
			"analysis": map[string]any{
				"filter": map[string]any{
					"proclitic_expand": map[string]any{
						"type":              "pattern_capture",
						"preserve_original": true,
						"patterns":          []string{pattern},
					},
				},
				"analyzer": map[string]any{
					"page_exact": map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
					},
					"page_proclitic": map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"proclitic_expand"},
					},
				},
			},
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"text_id":  map[string]any{"type": "integer"},
				"uri":      map[string]any{"type": "keyword"},
				"vol":      map[string]any{"type": "keyword"},
				"page_id":  map[string]any{"type": "integer"},
				"page_num": map[string]any{"type": "integer"},
				cfg.ContentField: map[string]any{
					"type":     "text",
					"analyzer": "page_exact",
					"fields": map[string]any{
						cfg.CliticSubfield: map[string]any{
							"type":     "text",
							"analyzer": "page_proclitic",
						},
					},
				},
			},
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal index body: %w", err)
	}
	return raw, nil
}
