package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultJob          = "gemmap"
	DefaultWorkers      = 4
	DefaultBatchSize    = 500
	DefaultTable        = "gemmap_upload"
	DefaultMissingTable = "gemmap_missing_diamond"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "TEXT"
)

// Load reads a job file. Files ending in .yaml or .yml are decoded as YAML,
// everything else as JSON.
func Load(path string) (Job, error) {
	var j Job
	b, err := os.ReadFile(path)
	if err != nil {
		return j, fmt.Errorf("read job %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &j); err != nil {
			return j, fmt.Errorf("decode yaml job %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &j); err != nil {
			return j, fmt.Errorf("decode json job %s: %w", path, err)
		}
	}
	return j, nil
}

// ApplyEnv overlays environment variables onto j. When envfile is non-empty
// and exists it is loaded first and wins over the process environment. Only
// variables that are set override the job file.
func ApplyEnv(j *Job, envfile string) error {
	if envfile != "" {
		if _, err := os.Stat(envfile); err == nil {
			if err := godotenv.Overload(envfile); err != nil {
				return fmt.Errorf("load env file %s: %w", envfile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat env file %s: %w", envfile, err)
		}
	}
	if err := env.Parse(j); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// ApplyDefaults fills blank fields with their defaults. Parser and output
// formats are inferred from file extensions when not set.
func ApplyDefaults(j *Job) {
	if strings.TrimSpace(j.Job) == "" {
		j.Job = DefaultJob
	}
	if j.Source.Kind == "" {
		j.Source.Kind = "file"
		if j.Source.HTTP.URL != "" {
			j.Source.Kind = "http"
		}
	}
	if j.Parser.Kind == "" {
		j.Parser.Kind = KindForPath(j.Source.File.Path + j.Source.HTTP.URL)
	}
	if j.Parser.Options == nil {
		j.Parser.Options = Options{}
	}
	if j.Output.Format == "" {
		j.Output.Format = KindForPath(j.Output.Path)
	}
	if j.Runtime.Workers <= 0 {
		j.Runtime.Workers = DefaultWorkers
	}
	if j.Runtime.BatchSize <= 0 {
		j.Runtime.BatchSize = DefaultBatchSize
	}
	if j.Storage.DB.Table == "" {
		j.Storage.DB.Table = DefaultTable
	}
	if j.Storage.DB.MissingTable == "" {
		j.Storage.DB.MissingTable = DefaultMissingTable
	}
	if j.Metrics.Backend == "" {
		j.Metrics.Backend = "none"
	}
	if j.Log.Level == "" {
		j.Log.Level = DefaultLogLevel
	}
	if j.Log.Format == "" {
		j.Log.Format = DefaultLogFormat
	}
}

// KindForPath returns "xlsx" for spreadsheet extensions and "csv" otherwise.
// Query strings on URLs are ignored.
func KindForPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return "xlsx"
	default:
		return "csv"
	}
}
