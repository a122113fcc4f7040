// Package persist maps an inventory table to a single binary file and back.
// Every load and save moves the whole table; there are no incremental updates.
package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/tailored-agentic-units/cdinventory/inventory"
	"github.com/tailored-agentic-units/cdinventory/observability"
)

const fileMode = 0o644

// Gateway loads and saves inventory tables. It holds no file handles between
// calls.
type Gateway struct {
	observer observability.Observer
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithObserver sets the observer that receives gateway events.
func WithObserver(o observability.Observer) Option {
	return func(g *Gateway) { g.observer = o }
}

// NewGateway creates a Gateway. Without options events are discarded.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load reads the table stored at path. A missing file is created empty and
// yields an empty table. On error no table is returned, so callers keep
// whatever table they already hold.
func (g *Gateway) Load(ctx context.Context, path string) (*inventory.Table, error) {
	created, err := ensure(path)
	if err != nil {
		return nil, err
	}
	if created {
		observability.Emit(ctx, g.observer, EventCreate, observability.LevelInfo, "persist.Load", map[string]any{
			"path": path,
		})
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	observability.Emit(ctx, g.observer, EventLoad, observability.LevelVerbose, "persist.Load", map[string]any{
		"path":    path,
		"records": len(records),
		"size":    humanize.Bytes(uint64(len(data))),
	})

	return inventory.NewTable(records...), nil
}

// Save replaces the contents of path with a snapshot of t. The snapshot is
// written to a temporary file in the same directory and renamed over path.
// An existing file keeps its permission bits.
func (g *Gateway) Save(ctx context.Context, path string, t *inventory.Table) error {
	records := t.Records()
	data := Encode(records)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}

	mode := os.FileMode(fileMode)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}

	observability.Emit(ctx, g.observer, EventSave, observability.LevelInfo, "persist.Save", map[string]any{
		"path":    path,
		"records": len(records),
		"size":    humanize.Bytes(uint64(len(data))),
	})

	return nil
}

// ensure creates an empty file at path if nothing exists there and reports
// whether it did.
func ensure(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if err := f.Close(); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	return true, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	return data, nil
}
