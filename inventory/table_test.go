package inventory_test

import (
	"context"
	"slices"
	"testing"

	"github.com/tailored-agentic-units/cdinventory/inventory"
)

func TestNewTable_CopiesRecords(t *testing.T) {
	input := []inventory.Record{
		{ID: 1, Title: "Abbey Road", Artist: "The Beatles"},
		{ID: 2, Title: "Thriller", Artist: "Michael Jackson"},
	}
	table := inventory.NewTable(input...)
	input[0].Title = "changed"

	got := table.Records()
	if got[0].Title != "Abbey Road" {
		t.Errorf("NewTable did not copy input, got title %q", got[0].Title)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestTable_Records_DefensiveCopy(t *testing.T) {
	table := inventory.NewTable(inventory.Record{ID: 1, Title: "Blue", Artist: "Joni Mitchell"})

	got := table.Records()
	got[0].ID = 99

	if table.Records()[0].ID != 1 {
		t.Error("Records() returned mutable reference")
	}
}

func TestTable_ZeroValue(t *testing.T) {
	var table inventory.Table

	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if table.Contains(1) {
		t.Error("Contains(1) = true on zero table")
	}
	if len(table.Duplicates()) != 0 {
		t.Errorf("Duplicates() = %v, want none", table.Duplicates())
	}

	store := inventory.NewStore()
	if _, err := store.Add(context.Background(), &table, "4", "Kid A", "Radiohead"); err != nil {
		t.Fatalf("Add() on zero table error = %v", err)
	}
	if !table.Contains(4) {
		t.Error("Contains(4) = false after Add")
	}
}

func TestTable_CountAndDuplicates(t *testing.T) {
	table := inventory.NewTable(
		inventory.Record{ID: 5, Title: "a"},
		inventory.Record{ID: 3, Title: "b"},
		inventory.Record{ID: 5, Title: "c"},
		inventory.Record{ID: 1, Title: "d"},
		inventory.Record{ID: 3, Title: "e"},
	)

	tests := []struct {
		id   int
		want int
	}{
		{id: 1, want: 1},
		{id: 3, want: 2},
		{id: 5, want: 2},
		{id: 9, want: 0},
	}
	for _, tt := range tests {
		if got := table.Count(tt.id); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}

	if got, want := table.Duplicates(), []int{3, 5}; !slices.Equal(got, want) {
		t.Errorf("Duplicates() = %v, want %v", got, want)
	}

	store := inventory.NewStore()
	store.Delete(context.Background(), table, 3)

	if got := table.Count(3); got != 1 {
		t.Errorf("Count(3) after delete = %d, want 1", got)
	}
	if got, want := table.Duplicates(), []int{5}; !slices.Equal(got, want) {
		t.Errorf("Duplicates() after delete = %v, want %v", got, want)
	}

	store.Delete(context.Background(), table, 1)
	if table.Contains(1) {
		t.Error("Contains(1) = true after removing its only record")
	}
}

func TestRecord_String(t *testing.T) {
	rec := inventory.Record{ID: 2, Title: "Thriller", Artist: "Michael Jackson"}
	want := "2\tThriller (by:Michael Jackson)"
	if got := rec.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
