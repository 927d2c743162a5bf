// Package datasource opens vendor inventory tables from local disk or HTTP.
package datasource

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gemmap/internal/config"
	"gemmap/internal/datasource/file"
	"gemmap/internal/datasource/httpds"
)

// Source yields the raw bytes of one vendor table.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	// Name identifies the source in logs and derived output names.
	Name() string
}

// New builds the Source described by cfg.
func New(cfg config.Source) (Source, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", "file":
		if cfg.File.Path == "" {
			return nil, fmt.Errorf("datasource: file.path is empty")
		}
		return file.NewLocal(cfg.File.Path), nil
	case "http":
		if cfg.HTTP.URL == "" {
			return nil, fmt.Errorf("datasource: http.url is empty")
		}
		hc := httpds.Config{MaxRetries: cfg.HTTP.MaxRetries}
		if cfg.HTTP.Timeout != "" {
			d, err := time.ParseDuration(cfg.HTTP.Timeout)
			if err != nil {
				return nil, fmt.Errorf("datasource: http.timeout: %w", err)
			}
			hc.Timeout = d
		}
		return httpds.NewSource(httpds.NewClient(hc), cfg.HTTP.URL), nil
	default:
		return nil, fmt.Errorf("datasource: unsupported kind %q", cfg.Kind)
	}
}

// ForInput builds a Source for a command-line argument. http(s) URLs are
// fetched with the HTTP settings of base; anything else is a local path.
func ForInput(arg string, base config.Source) (Source, error) {
	cfg := base
	if IsURL(arg) {
		cfg.Kind = "http"
		cfg.HTTP.URL = arg
	} else {
		cfg.Kind = "file"
		cfg.File.Path = arg
	}
	return New(cfg)
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
