package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Engine:   EngineConfig{Addr: "http://localhost:9200"},
		Metadata: MetadataConfig{Driver: "file", Path: "catalog.json"},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingEngineAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Engine.Addr = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing engine addr")
	}
}

func TestValidate_MetadataDrivers(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata = MetadataConfig{Driver: "file"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for file driver without path")
	}

	cfg.Metadata = MetadataConfig{Driver: "redis"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for redis driver without addrs")
	}

	cfg.Metadata = MetadataConfig{Driver: "redis", Addrs: []string{"localhost:6379"}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for valid redis driver: %v", err)
	}

	cfg.Metadata = MetadataConfig{Driver: "postgres"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestValidate_CliticsMustBeSingleLetters(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Search.Clitics = []string{"و", "ال"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for multi-letter clitic")
	}

	expected := `search.clitics entries must be single letters, got "ال"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_MaxBelowDefaultPageSize(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()
	cfg.Search.DefaultPageSize = 50
	cfg.Search.MaxPageSize = 20

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when max_page_size < default_page_size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Engine.Index != "pages" {
		t.Errorf("expected Index='pages', got %q", cfg.Engine.Index)
	}
	if cfg.Metadata.Driver != "file" {
		t.Errorf("expected Driver='file', got %q", cfg.Metadata.Driver)
	}
	if cfg.Metadata.KeyPrefix != "matndex:" {
		t.Errorf("expected KeyPrefix='matndex:', got %q", cfg.Metadata.KeyPrefix)
	}
	if cfg.Search.ExactField != "page_content" {
		t.Errorf("expected ExactField='page_content', got %q", cfg.Search.ExactField)
	}
	if got := cfg.Search.CliticField(); got != "page_content.proclitic" {
		t.Errorf("expected CliticField='page_content.proclitic', got %q", got)
	}
	if len(cfg.Search.Clitics) != 5 {
		t.Errorf("expected 5 default clitics, got %v", cfg.Search.Clitics)
	}
	if cfg.Search.MaxResultWindow != 10000 {
		t.Errorf("expected MaxResultWindow=10000, got %d", cfg.Search.MaxResultWindow)
	}
	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("unexpected page sizes: %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Search.ExportPageSize != 5000 {
		t.Errorf("expected ExportPageSize=5000, got %d", cfg.Search.ExportPageSize)
	}
	if cfg.Search.HighlightPre != "<em>" || cfg.Search.HighlightPost != "</em>" {
		t.Errorf("unexpected highlight tags: %q/%q", cfg.Search.HighlightPre, cfg.Search.HighlightPost)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Engine: EngineConfig{Index: "corpus", RequestTimeout: 15},
		Search: SearchConfig{DefaultPageSize: 50, MaxPageSize: 500, FragmentCount: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Engine.Index != "corpus" {
		t.Errorf("expected Index='corpus', got %q", cfg.Engine.Index)
	}
	if cfg.Search.DefaultPageSize != 50 || cfg.Search.MaxPageSize != 500 {
		t.Errorf("unexpected page sizes: %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Search.FragmentCount != 5 {
		t.Errorf("expected FragmentCount=5, got %d", cfg.Search.FragmentCount)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MATNDEX_TEST_ADDR", "http://search:9200")

	in := []byte("addr: ${MATNDEX_TEST_ADDR}\nindex: ${MATNDEX_TEST_INDEX:-pages}\n")
	out := string(expandEnvVars(in))

	if out != "addr: http://search:9200\nindex: pages\n" {
		t.Errorf("unexpected expansion: %q", out)
	}
}
