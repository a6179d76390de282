// Package config defines the JSON-serializable configuration model for the
// track seeding job. A zero-argument run uses Default(), which reproduces the
// fixed behavior: read spotify_data_preprocessed_final.csv, add liked=0, and
// replace table "tracks" in app_data.db.
//
// Example pipeline file (every field optional, merged over Default()):
//
//	{
//	  "job":       "trackseed",
//	  "source":    { "kind": "file", "file": { "path": "spotify_data_preprocessed_final.csv" } },
//	  "parser":    { "kind": "csv", "options": { "comma": ",", "encoding": "utf-8" } },
//	  "transform": [
//	    { "kind": "add_column", "options": { "name": "liked", "type": "int", "value": 0 } }
//	  ],
//	  "storage":   { "kind": "sqlite", "db": { "dsn": "app_data.db", "table": "tracks" } },
//	  "metrics":   { "backend": "none" }
//	}
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultInputPath = "spotify_data_preprocessed_final.csv"
	DefaultDBPath    = "app_data.db"
	DefaultTable     = "tracks"
	DefaultJob       = "trackseed"
	LikedColumn      = "liked"
)

// Pipeline describes the full job. It is the top-level object decoded from a
// pipeline file.
type Pipeline struct {
	// Job names the run for logs and metrics grouping.
	Job string `json:"job"`

	// Source describes where input data comes from (e.g., local file).
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into a table (e.g., CSV).
	Parser Parser `json:"parser"`

	// Transform lists the ordered transformations applied to the loaded table.
	Transform []Transform `json:"transform"`

	// Storage describes where the table is written.
	Storage Storage `json:"storage"`

	Metrics Metrics `json:"metrics"`
}

// Source identifies the data source.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into columns and rows.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV: comma (string), trim_space (bool), encoding (string).
	Options Options `json:"options"`
}

// Transform defines a single transformation step.
type Transform struct {
	// Kind selects the transform implementation (e.g., "add_column").
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected transform.
	Options Options `json:"options"`
}

// Storage selects the sink used to persist the table.
type Storage struct {
	// Kind selects the storage implementation: "sqlite", "postgres", "mssql"
	// or "mysql".
	Kind string   `json:"kind"`
	DB   DBConfig `json:"db"`
}

// DBConfig configures the DB sink.
type DBConfig struct {
	// DSN is a SQLite file path / URI, or a server connection string for the
	// other kinds.
	DSN string `json:"dsn"`

	// Table is the destination table name. It is dropped and recreated on
	// every run.
	Table string `json:"table"`
}

// Metrics selects the metrics backend. Backend is "none" or "pushgateway".
type Metrics struct {
	Backend        string `json:"backend"`
	PushgatewayURL string `json:"pushgateway_url"`
}

// Default returns the pipeline used when no config file is given.
func Default() Pipeline {
	return Pipeline{
		Job:    DefaultJob,
		Source: Source{Kind: "file", File: SourceFile{Path: DefaultInputPath}},
		Parser: Parser{Kind: "csv", Options: Options{}},
		Transform: []Transform{{
			Kind: "add_column",
			Options: Options{
				"name":  LikedColumn,
				"type":  "int",
				"value": float64(0),
			},
		}},
		Storage: Storage{Kind: "sqlite", DB: DBConfig{DSN: DefaultDBPath, Table: DefaultTable}},
		Metrics: Metrics{Backend: "none"},
	}
}

// Load decodes the JSON pipeline at path over Default(). A "transform" array
// present in the file replaces the default chain entirely.
func Load(path string) (Pipeline, error) {
	p := Default()
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	// Decoding into a populated slice reuses its elements, so start the chain empty.
	p.Transform = nil

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("decode config %s: %w", path, err)
	}
	if p.Transform == nil {
		p.Transform = Default().Transform
	}
	return p, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides pipeline fields from the environment, using getenv for
// lookup (os.Getenv in production).
//
//	TRACKSEED_INPUT    source.file.path
//	TRACKSEED_STORAGE  storage.kind
//	TRACKSEED_DB       storage.db.dsn
//	TRACKSEED_TABLE    storage.db.table
//	METRICS_BACKEND    metrics.backend
//	PUSHGATEWAY_URL    metrics.pushgateway_url
func ApplyEnv(p *Pipeline, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&p.Source.File.Path, "TRACKSEED_INPUT")
	set(&p.Storage.Kind, "TRACKSEED_STORAGE")
	set(&p.Storage.DB.DSN, "TRACKSEED_DB")
	set(&p.Storage.DB.Table, "TRACKSEED_TABLE")
	set(&p.Metrics.Backend, "METRICS_BACKEND")
	set(&p.Metrics.PushgatewayURL, "PUSHGATEWAY_URL")
}

// Options is a small helper to fetch typed values from arbitrary JSON maps. It
// performs only minimal type coercion and returns provided defaults when a key
// is absent or of an unexpected type.
//
// Options is used for parser/transform-specific configuration where the shape
// varies by implementation.
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

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. This is useful for single-character parser settings such as
// a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// Any returns the raw value for key (which may itself be a nested
// map[string]any, []any, or primitive), e.g. the constant of an add_column
// transform whose type is decided by a sibling option.
func (o Options) Any(key string) any {
	if v, ok := o[key]; ok {
		return v
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that a null "options" object
// in JSON decodes to a non-nil, empty Options map. This simplifies call
// sites by removing the need to nil-check Options values.
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
