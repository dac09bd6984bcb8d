package routefile

import (
	"context"
	"fmt"
	"os"
)

// Source yields the raw bytes of a route table and a name whose extension
// selects the format.
type Source interface {
	Load(ctx context.Context) (data []byte, name string, err error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]byte, string, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) ([]byte, string, error) { return f(ctx) }

type fileSource struct {
	path string
}

// File reads the table from a local file.
func File(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Load(ctx context.Context) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return data, s.path, nil
}

// Bytes serves a fixed in-memory table.
func Bytes(name string, data []byte) Source {
	return SourceFunc(func(context.Context) ([]byte, string, error) {
		return data, name, nil
	})
}

// Load reads and parses a table from src.
func Load(ctx context.Context, src Source) (*Table, error) {
	data, name, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ParseNamed(name, data)
}

// LoadFile reads and parses a table from a local file.
func LoadFile(path string) (*Table, error) {
	return Load(context.Background(), File(path))
}
