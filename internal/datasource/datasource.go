// Package datasource opens the raw input of a pipeline.
package datasource

import (
	"context"
	"fmt"
	"io"

	"trackseed/internal/config"
	"trackseed/internal/datasource/file"
)

// Source yields the raw bytes of the input. String names the input for logs.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// New builds the Source selected by cfg.Kind.
func New(cfg config.Source) (Source, error) {
	switch cfg.Kind {
	case "file", "":
		return file.NewLocal(cfg.File.Path), nil
	default:
		return nil, fmt.Errorf("datasource: unsupported source.kind=%s", cfg.Kind)
	}
}
