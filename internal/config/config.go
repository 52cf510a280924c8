// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration from a single YAML file.
//
// CONFIGURATION AREAS:
//   1. Paths: input file, output directory, archive directory, log file
//   2. Parsing: the ordered list of encodings to try when reading input
//   3. Filters: default region / amount filters (flags override these)
//   4. Analytics: top-N size and low-performer threshold
//   5. Catalog: base URL, timeout and page size for the product catalog API
//
// Defaults are applied after parsing so a minimal (or missing) config file
// still yields a fully usable configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// PATH SETTINGS
	// =========================================================================

	// InputFile is the pipe-delimited sales data file to process.
	// Default: "./data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// OutputDir is the directory where the text report is written.
	// Created on demand if it does not exist.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// EnrichedFile is the path of the enriched pipe-delimited output file.
	// Default: "./data/enriched_sales_data.txt"
	EnrichedFile string `yaml:"enriched_file"`

	// ReportName is the report file name, relative to OutputDir. Supports
	// the placeholders {uuid} and {timestamp}.
	// Default: "sales_report.txt"
	ReportName string `yaml:"report_name"`

	// ArchiveDir is where the input file is moved after a successful run
	// when ArchiveInput is enabled.
	// Default: "./input_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveInput moves the processed input file into ArchiveDir after a
	// fully successful run.
	// Default: false
	ArchiveInput bool `yaml:"archive_input"`

	// =========================================================================
	// PARSING SETTINGS
	// =========================================================================

	// Encodings is the ordered list of character encodings to try when
	// reading the input file. Supported: "utf-8", "latin-1" (iso-8859-1),
	// "cp1252" (windows-1252).
	// Default: [utf-8, latin-1, cp1252]
	Encodings []string `yaml:"encodings"`

	// =========================================================================
	// FILTER SETTINGS
	// =========================================================================

	// Filters holds the default record filters. Command-line flags take
	// precedence over these values.
	Filters FilterConfig `yaml:"filters"`

	// =========================================================================
	// ANALYTICS SETTINGS
	// =========================================================================

	// TopProducts is the N used for the top-products and top-customers
	// report tables.
	// Default: 5
	TopProducts int `yaml:"top_products"`

	// LowPerformerThreshold marks products whose total quantity sold is
	// strictly below this value as low performers.
	// Default: 10
	LowPerformerThreshold int `yaml:"low_performer_threshold"`

	// =========================================================================
	// CATALOG SETTINGS
	// =========================================================================

	// Catalog configures the external product catalog client.
	Catalog CatalogConfig `yaml:"catalog"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ExportXLSX also writes the enriched dataset and a summary sheet as an
	// XLSX workbook next to the text report.
	// Default: false
	ExportXLSX bool `yaml:"export_xlsx"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// FilterConfig holds the optional record filters applied after validation.
type FilterConfig struct {
	// Region keeps only transactions from this region (case-insensitive
	// exact match). Empty means no region filter.
	Region string `yaml:"region"`

	// MinAmount keeps only transactions with Quantity*UnitPrice >= MinAmount.
	MinAmount *float64 `yaml:"min_amount"`

	// MaxAmount keeps only transactions with Quantity*UnitPrice <= MaxAmount.
	MaxAmount *float64 `yaml:"max_amount"`
}

// CatalogConfig configures the product catalog HTTP client.
type CatalogConfig struct {
	// BaseURL is the catalog API root.
	// Default: "https://dummyjson.com"
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the HTTP client timeout.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Limit is the maximum number of products to fetch.
	// Default: 100
	Limit int `yaml:"limit"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults and
// validates the result. A missing file is not an error: the defaults are
// returned so the tool works out of the box.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "./data/sales_data.txt"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.EnrichedFile == "" {
		cfg.EnrichedFile = "./data/enriched_sales_data.txt"
	}
	if cfg.ReportName == "" {
		cfg.ReportName = "sales_report.txt"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./input_archive"
	}
	if len(cfg.Encodings) == 0 {
		cfg.Encodings = []string{"utf-8", "latin-1", "cp1252"}
	}
	if cfg.TopProducts == 0 {
		cfg.TopProducts = 5
	}
	if cfg.LowPerformerThreshold == 0 {
		cfg.LowPerformerThreshold = 10
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://dummyjson.com"
	}
	if cfg.Catalog.TimeoutSeconds == 0 {
		cfg.Catalog.TimeoutSeconds = 10
	}
	if cfg.Catalog.Limit == 0 {
		cfg.Catalog.Limit = 100
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate rejects configurations that cannot possibly work.
func validate(cfg *Config) error {
	if cfg.TopProducts < 0 {
		return fmt.Errorf("top_products must not be negative, got %d", cfg.TopProducts)
	}
	if cfg.LowPerformerThreshold < 0 {
		return fmt.Errorf("low_performer_threshold must not be negative, got %d", cfg.LowPerformerThreshold)
	}
	if cfg.Catalog.TimeoutSeconds < 0 {
		return fmt.Errorf("catalog.timeout_seconds must not be negative, got %d", cfg.Catalog.TimeoutSeconds)
	}
	if cfg.Filters.MinAmount != nil && cfg.Filters.MaxAmount != nil &&
		*cfg.Filters.MinAmount > *cfg.Filters.MaxAmount {
		return fmt.Errorf("filters.min_amount (%v) is greater than filters.max_amount (%v)",
			*cfg.Filters.MinAmount, *cfg.Filters.MaxAmount)
	}
	return nil
}
