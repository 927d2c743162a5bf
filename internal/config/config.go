// Package config defines the job model for a gemmap conversion run. A job is
// read from a JSON or YAML file, then overridden by environment variables so
// that credentials and deployment knobs stay out of the job file.
//
// Example (trimmed):
//
//	{
//	  "job":     "acme-weekly",
//	  "source":  { "kind": "file", "file": { "path": "vendor.csv" } },
//	  "parser":  { "kind": "csv", "options": { "comma": ";" } },
//	  "mapping": { "path": "acme-mapping.xlsx" },
//	  "output":  { "path": "upload.csv", "missing_path": "missing_diamond_weight.csv" },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "file:gemmap.db", "auto_create_table": true } }
//	}
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Job is the top-level object decoded from a job file.
type Job struct {
	// Job names the run in logs and metrics.
	Job string `json:"job" yaml:"job"`

	// Source describes where the vendor table comes from.
	Source Source `json:"source" yaml:"source"`

	// Parser configures how raw bytes become a table (csv or xlsx).
	Parser Parser `json:"parser" yaml:"parser"`

	// Mapping optionally points at a canonical-field -> vendor-column table.
	Mapping Mapping `json:"mapping" yaml:"mapping"`

	Output  Output        `json:"output" yaml:"output"`
	Storage Storage       `json:"storage" yaml:"storage"`
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime"`
	Metrics Metrics       `json:"metrics" yaml:"metrics"`
	Log     Log           `json:"log" yaml:"log"`
}

// RuntimeConfig controls concurrency across input files and storage batching.
type RuntimeConfig struct {
	Workers   int `json:"workers" yaml:"workers" env:"GEMMAP_WORKERS"`
	BatchSize int `json:"batch_size" yaml:"batch_size" env:"GEMMAP_BATCH_SIZE"`
}

// Source identifies the vendor table. Kinds: "file", "http".
type Source struct {
	Kind string     `json:"kind" yaml:"kind"`
	File SourceFile `json:"file" yaml:"file"`
	HTTP SourceHTTP `json:"http" yaml:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path" yaml:"path"`
}

// SourceHTTP holds configuration for the "http" source kind.
type SourceHTTP struct {
	URL string `json:"url" yaml:"url"`

	// Timeout is a Go duration string ("30s"). Empty means the client default.
	Timeout    string `json:"timeout" yaml:"timeout"`
	MaxRetries int    `json:"max_retries" yaml:"max_retries"`
}

// Parser selects how to parse the raw source.
type Parser struct {
	// Kind is "csv" or "xlsx". Empty means "infer from the file extension".
	Kind string `json:"kind" yaml:"kind"`

	// Options is interpreted by the parser implementation:
	//   csv:  comma (string), strict_quotes (bool), encoding (string)
	//   xlsx: sheet (string)
	Options Options `json:"options" yaml:"options"`
}

// Mapping points at an optional remapping table (csv or xlsx).
type Mapping struct {
	Path string `json:"path" yaml:"path" env:"GEMMAP_MAPPING"`
}

// Output configures the upload table and the missing-diamond side table.
type Output struct {
	Path string `json:"path" yaml:"path"`

	// Format is "csv" or "xlsx". Empty means "infer from Path".
	Format string `json:"format" yaml:"format"`

	// MissingPath receives diamond rows without a usable weight. Empty skips
	// the side table.
	MissingPath string `json:"missing_path" yaml:"missing_path"`
}

// Storage selects an optional database sink. An empty Kind disables it.
type Storage struct {
	Kind string   `json:"kind" yaml:"kind" env:"GEMMAP_STORAGE_KIND"`
	DB   DBConfig `json:"db" yaml:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the driver connection string.
	DSN string `json:"dsn" yaml:"dsn" env:"GEMMAP_STORAGE_DSN"`

	// Table receives upload rows; MissingTable receives missing-diamond rows.
	// Either may be schema-qualified ("public.uploads").
	Table        string `json:"table" yaml:"table"`
	MissingTable string `json:"missing_table" yaml:"missing_table"`

	// AutoCreateTable creates the tables (all TEXT columns) when absent.
	AutoCreateTable bool `json:"auto_create_table" yaml:"auto_create_table"`
}

// Metrics selects the metrics backend: "none", "pushgateway" or "datadog".
type Metrics struct {
	Backend        string `json:"backend" yaml:"backend" env:"GEMMAP_METRICS_BACKEND"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url" env:"PUSHGATEWAY_URL"`
	DatadogAddr    string `json:"datadog_addr" yaml:"datadog_addr" env:"DD_AGENT_ADDR"`
}

// Log configures logrus output. Format is TEXT or JSON. A non-empty File
// rotates through lumberjack.
type Log struct {
	Level      string `json:"level" yaml:"level" env:"GEMMAP_LOG_LEVEL"`
	Format     string `json:"format" yaml:"format" env:"GEMMAP_LOG_FORMAT"`
	File       string `json:"file" yaml:"file" env:"GEMMAP_LOG_FILE"`
	MaxSize    int    `json:"max_size" yaml:"max_size" env:"GEMMAP_LOG_MAX_SIZE"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups" env:"GEMMAP_LOG_MAX_BACKUPS"`
	MaxAge     int    `json:"max_age" yaml:"max_age" env:"GEMMAP_LOG_MAX_AGE"`
}

// Options is a small helper to fetch typed values from free-form option maps.
// It performs only minimal coercion and returns the default when a key is
// absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64
// and YAML integers as int; both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for the CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// UnmarshalJSON makes a missing or null "options" object decode to an empty,
// non-nil map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (o *Options) UnmarshalYAML(n *yaml.Node) error {
	var tmp map[string]any
	if err := n.Decode(&tmp); err != nil {
		return err
	}
	if tmp == nil {
		tmp = map[string]any{}
	}
	*o = Options(tmp)
	return nil
}
