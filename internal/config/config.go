package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the matndex API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Engine   EngineConfig   `yaml:"engine"`
	Metadata MetadataConfig `yaml:"metadata"`
	Search   SearchConfig   `yaml:"search"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// EngineConfig holds search engine connection settings.
type EngineConfig struct {
	Addr             string `yaml:"addr"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	Index            string `yaml:"index"`
	RequestTimeout   int    `yaml:"request_timeout_sec"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
	// EnsureIndex creates the page index with the corpus mapping at startup
	// when it does not exist yet.
	EnsureIndex bool `yaml:"ensure_index"`
}

// MetadataConfig holds catalog source settings.
type MetadataConfig struct {
	Driver string `yaml:"driver"` // file, redis (default: file)
	// Path is the catalog JSON file for the file driver.
	Path string `yaml:"path"`
	// Redis settings for the redis driver.
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// SearchConfig holds query construction and pagination settings.
type SearchConfig struct {
	ExactField      string   `yaml:"exact_field"`
	CliticSubfield  string   `yaml:"clitic_subfield"`
	Clitics         []string `yaml:"clitics"`
	MaxResultWindow int      `yaml:"max_result_window"`
	DefaultPageSize int      `yaml:"default_page_size"`
	MaxPageSize     int      `yaml:"max_page_size"`
	ExportPageSize  int      `yaml:"export_page_size"`
	FragmentCount   int      `yaml:"fragment_count"`
	FragmentSize    int      `yaml:"fragment_size"`
	HighlightPre    string   `yaml:"highlight_pre"`
	HighlightPost   string   `yaml:"highlight_post"`
}

// CliticField returns the fully qualified clitic-expanded field name.
func (s SearchConfig) CliticField() string {
	return s.ExactField + "." + s.CliticSubfield
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Engine.Index == "" {
		c.Engine.Index = "pages"
	}
	if c.Engine.RequestTimeout <= 0 {
		c.Engine.RequestTimeout = 30
	}
	if c.Engine.ReadinessTimeout <= 0 {
		c.Engine.ReadinessTimeout = 30
	}
	if c.Metadata.Driver == "" {
		c.Metadata.Driver = "file"
	}
	if c.Metadata.KeyPrefix == "" {
		c.Metadata.KeyPrefix = "matndex:"
	}
	if c.Search.ExactField == "" {
		c.Search.ExactField = "page_content"
	}
	if c.Search.CliticSubfield == "" {
		c.Search.CliticSubfield = "proclitic"
	}
	if len(c.Search.Clitics) == 0 {
		c.Search.Clitics = []string{"و", "ف", "ب", "ل", "ك"}
	}
	if c.Search.MaxResultWindow <= 0 {
		c.Search.MaxResultWindow = 10000
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.ExportPageSize <= 0 {
		c.Search.ExportPageSize = 5000
	}
	if c.Search.FragmentCount <= 0 {
		c.Search.FragmentCount = 3
	}
	if c.Search.FragmentSize <= 0 {
		c.Search.FragmentSize = 200
	}
	if c.Search.HighlightPre == "" {
		c.Search.HighlightPre = "<em>"
	}
	if c.Search.HighlightPost == "" {
		c.Search.HighlightPost = "</em>"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Engine.Addr == "" {
		return fmt.Errorf("engine.addr is required")
	}
	switch c.Metadata.Driver {
	case "file":
		if c.Metadata.Path == "" {
			return fmt.Errorf("metadata.path is required for the file driver")
		}
	case "redis":
		if len(c.Metadata.Addrs) == 0 {
			return fmt.Errorf("metadata.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("metadata.driver must be \"file\" or \"redis\", got %q", c.Metadata.Driver)
	}
	for _, cl := range c.Search.Clitics {
		if len([]rune(cl)) != 1 {
			return fmt.Errorf("search.clitics entries must be single letters, got %q", cl)
		}
	}
	if c.Search.MaxPageSize < c.Search.DefaultPageSize {
		return fmt.Errorf(
			"search.max_page_size %d is below default_page_size %d",
			c.Search.MaxPageSize, c.Search.DefaultPageSize,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
