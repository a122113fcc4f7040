package persist_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/tailored-agentic-units/cdinventory/inventory"
	"github.com/tailored-agentic-units/cdinventory/observability"
	"github.com/tailored-agentic-units/cdinventory/persist"
)

type captureObserver struct {
	events []observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.events = append(c.events, event)
}

func TestGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.dat")
	gw := persist.NewGateway()

	want := []inventory.Record{
		{ID: 1, Title: "Abbey Road", Artist: "The Beatles"},
		{ID: 2, Title: "Thriller", Artist: "Michael Jackson"},
		{ID: 1, Title: "Let It Be", Artist: "The Beatles"},
	}

	if err := gw.Save(ctx, path, inventory.NewTable(want...)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	table, err := gw.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.Records(); !slices.Equal(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if table.Count(1) != 2 {
		t.Errorf("loaded table Count(1) = %d, want 2", table.Count(1))
	}
}

func TestGateway_Save_Overwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.dat")
	gw := persist.NewGateway()

	first := inventory.NewTable(
		inventory.Record{ID: 1, Title: "a"},
		inventory.Record{ID: 2, Title: "b"},
		inventory.Record{ID: 3, Title: "c"},
	)
	second := inventory.NewTable(inventory.Record{ID: 9, Title: "z"})

	if err := gw.Save(ctx, path, first); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := gw.Save(ctx, path, second); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	table, err := gw.Load(ctx, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.Records(); !slices.Equal(got, second.Records()) {
		t.Errorf("Load() = %+v, want last snapshot %+v", got, second.Records())
	}
}

func TestGateway_Save_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.dat")
	gw := persist.NewGateway()

	if err := gw.Save(context.Background(), path, inventory.NewTable(inventory.Record{ID: 1})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "inventory.dat" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want [inventory.dat]", names)
	}
}

func TestGateway_Load_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.dat")
	obs := &captureObserver{}
	gw := persist.NewGateway(persist.WithObserver(obs))

	table, err := gw.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Load() returned %d records, want 0", table.Len())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Load() did not create file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("created file size = %d, want 0", info.Size())
	}

	if len(obs.events) == 0 || obs.events[0].Type != persist.EventCreate {
		t.Errorf("first event = %v, want %q", obs.events, persist.EventCreate)
	}

	// Second load finds the empty file without recreating it.
	obs.events = nil
	if _, err := gw.Load(context.Background(), path); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	for _, e := range obs.events {
		if e.Type == persist.EventCreate {
			t.Error("second Load() recreated an existing file")
		}
	}
}

func TestGateway_Load_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.dat")
	corrupt := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	table, err := persist.NewGateway().Load(context.Background(), path)
	if !errors.Is(err, persist.ErrDeserialization) {
		t.Fatalf("Load() error = %v, want %v", err, persist.ErrDeserialization)
	}
	if table != nil {
		t.Errorf("Load() returned table %+v alongside error", table.Records())
	}
}

func TestGateway_Load_FileAccess(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "parent is a file", path: filepath.Join(blocker, "inventory.dat")},
		{name: "path is a directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := persist.NewGateway().Load(context.Background(), tt.path)
			if !errors.Is(err, persist.ErrFileAccess) {
				t.Errorf("Load(%q) error = %v, want %v", tt.path, err, persist.ErrFileAccess)
			}
		})
	}
}

func TestGateway_Save_FileAccess(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := persist.NewGateway().Save(context.Background(), filepath.Join(blocker, "inventory.dat"), inventory.NewTable())
	if !errors.Is(err, persist.ErrFileAccess) {
		t.Errorf("Save() error = %v, want %v", err, persist.ErrFileAccess)
	}
}

func TestGateway_Events(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inventory.dat")
	obs := &captureObserver{}
	gw := persist.NewGateway(persist.WithObserver(obs))

	if err := gw.Save(ctx, path, inventory.NewTable(inventory.Record{ID: 1}, inventory.Record{ID: 2})); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := gw.Load(ctx, path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(obs.events) != 2 {
		t.Fatalf("received %d events, want 2", len(obs.events))
	}
	if obs.events[0].Type != persist.EventSave || obs.events[0].Data["records"] != 2 {
		t.Errorf("save event = %+v", obs.events[0])
	}
	if obs.events[1].Type != persist.EventLoad || obs.events[1].Data["records"] != 2 {
		t.Errorf("load event = %+v", obs.events[1])
	}
}

func TestGateway_Scenario(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "CDInventory.dat")
	gw := persist.NewGateway()
	store := inventory.NewStore()

	table, err := gw.Load(ctx, path)
	if err != nil {
		t.Fatalf("startup Load() error = %v", err)
	}
	if _, err := store.Add(ctx, table, "1", "Abbey Road", "The Beatles"); err != nil {
		t.Fatalf("Add(1) error = %v", err)
	}
	if _, err := store.Add(ctx, table, "2", "Thriller", "Michael Jackson"); err != nil {
		t.Fatalf("Add(2) error = %v", err)
	}
	store.Delete(ctx, table, 1)

	want := []inventory.Record{{ID: 2, Title: "Thriller", Artist: "Michael Jackson"}}
	if got := table.Records(); !slices.Equal(got, want) {
		t.Fatalf("records = %+v, want %+v", got, want)
	}

	if err := gw.Save(ctx, path, table); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	reloaded, err := gw.Load(ctx, path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := reloaded.Records(); !slices.Equal(got, want) {
		t.Errorf("reloaded = %+v, want %+v", got, want)
	}
}

func TestGateway_Save_FileMode(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	gw := persist.NewGateway()
	table := inventory.NewTable(inventory.Record{ID: 1, Title: "Blue", Artist: "Joni Mitchell"})

	tests := []struct {
		name     string
		existing os.FileMode // zero means no file before the save
		want     os.FileMode
	}{
		{name: "new file", want: 0o644},
		{name: "private file stays private", existing: 0o600, want: 0o600},
		{name: "group readable file kept", existing: 0o640, want: 0o640},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("inventory-%d.dat", i))
			if tt.existing != 0 {
				if err := os.WriteFile(path, nil, tt.existing); err != nil {
					t.Fatalf("WriteFile() error = %v", err)
				}
				if err := os.Chmod(path, tt.existing); err != nil {
					t.Fatalf("Chmod() error = %v", err)
				}
			}

			if err := gw.Save(ctx, path, table); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if got := info.Mode().Perm(); got != tt.want {
				t.Errorf("mode after save = %v, want %v", got, tt.want)
			}
		})
	}
}
