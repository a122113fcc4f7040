package inventory

import (
	"slices"

	"github.com/google/btree"
)

const indexDegree = 8

type idCount struct {
	id int
	n  int
}

func lessID(a, b idCount) bool {
	return a.id < b.id
}

// Table is the ordered, in-memory collection of records. Insertion order is
// display order. An ordered ID index tracks how many records carry each ID so
// membership checks avoid a scan; it never affects ordering.
//
// Table is not safe for concurrent use.
type Table struct {
	records []Record
	index   *btree.BTreeG[idCount]
}

// NewTable creates a Table holding a copy of records in the given order.
func NewTable(records ...Record) *Table {
	t := &Table{
		records: make([]Record, 0, len(records)),
		index:   btree.NewG[idCount](indexDegree, lessID),
	}
	for _, r := range records {
		t.append(r)
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in insertion order.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Count returns how many records carry id.
func (t *Table) Count(id int) int {
	if t.index == nil {
		return 0
	}
	item, ok := t.index.Get(idCount{id: id})
	if !ok {
		return 0
	}
	return item.n
}

// Contains reports whether any record carries id.
func (t *Table) Contains(id int) bool {
	return t.Count(id) > 0
}

// Duplicates returns, in ascending order, every ID shared by more than one
// record.
func (t *Table) Duplicates() []int {
	var ids []int
	if t.index == nil {
		return ids
	}
	t.index.Ascend(func(item idCount) bool {
		if item.n > 1 {
			ids = append(ids, item.id)
		}
		return true
	})
	return ids
}

func (t *Table) append(r Record) {
	if t.index == nil {
		t.index = btree.NewG[idCount](indexDegree, lessID)
	}
	t.records = append(t.records, r)

	item, _ := t.index.Get(idCount{id: r.ID})
	item.id = r.ID
	item.n++
	t.index.ReplaceOrInsert(item)
}

// removeFirst deletes the first record with id, shifting later records down
// by one. Remaining order is unchanged.
func (t *Table) removeFirst(id int) (Record, bool) {
	if !t.Contains(id) {
		return Record{}, false
	}

	i := slices.IndexFunc(t.records, func(r Record) bool {
		return r.ID == id
	})
	if i < 0 {
		return Record{}, false
	}

	removed := t.records[i]
	t.records = slices.Delete(t.records, i, i+1)

	item, _ := t.index.Get(idCount{id: id})
	if item.n <= 1 {
		t.index.Delete(item)
	} else {
		item.n--
		t.index.ReplaceOrInsert(item)
	}

	return removed, true
}
