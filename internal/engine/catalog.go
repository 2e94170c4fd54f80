package engine

import (
	"strings"

	"github.com/bamsammich/copybench/internal/platform"
)

// Entry pairs a strategy with the label it is reported under.
type Entry struct {
	Strategy platform.Strategy
	Label    string
}

// Catalog is the ordered, immutable list of entries a Runner measures.
// Order is declaration order and only affects the report.
type Catalog struct {
	entries []Entry
}

// NewCatalog builds a catalog from entries, copying the slice.
func NewCatalog(entries ...Entry) Catalog {
	return Catalog{entries: append([]Entry(nil), entries...)}
}

// Entries returns a copy of the catalog's entries in order.
func (c Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of entries.
func (c Catalog) Len() int { return len(c.entries) }

// variant decorates base with mods and appends their names to the label,
// e.g. "sendfile + advices + falloc".
func variant(base Entry, mods ...platform.Modifier) Entry {
	var label strings.Builder
	label.WriteString(base.Label)
	for _, m := range mods {
		label.WriteString(" + ")
		label.WriteString(m.String())
	}
	return Entry{
		Strategy: platform.Modify(base.Strategy, mods...),
		Label:    label.String(),
	}
}

// hinted returns base followed by its advice, advice+fallocate and
// advice+truncate variants.
func hinted(base Entry) []Entry {
	return []Entry{
		base,
		variant(base, platform.Advice),
		variant(base, platform.Advice, platform.Fallocate),
		variant(base, platform.Advice, platform.Truncate),
	}
}

// DefaultCatalog returns the drain baseline, the read/write block-size
// sweep and every hinted combination of the 16× read/write, mmap, splice
// and sendfile strategies.
func DefaultCatalog() Catalog {
	entries := []Entry{
		{Strategy: platform.DrainStrategy{}, Label: "dummy"},
		{Strategy: platform.ReadWriteStrategy{Fixed: 1024}, Label: "read+write 1k"},
		{Strategy: platform.ReadWriteStrategy{Factor: 1}, Label: "read+write bs"},
		{Strategy: platform.ReadWriteStrategy{Factor: 4}, Label: "read+write 4bs"},
	}
	entries = append(entries, hinted(Entry{
		Strategy: platform.ReadWriteStrategy{Factor: 16},
		Label:    "read+write 16bs",
	})...)
	entries = append(entries, Entry{
		Strategy: platform.ReadWriteStrategy{Factor: 256},
		Label:    "read+write 256bs",
	})
	entries = append(entries, hinted(Entry{Strategy: platform.MmapStrategy{}, Label: "mmap+write"})...)
	entries = append(entries, hinted(Entry{Strategy: platform.SpliceStrategy{}, Label: "pipe+splice"})...)
	entries = append(entries, hinted(Entry{Strategy: platform.SendfileStrategy{}, Label: "sendfile"})...)
	return NewCatalog(entries...)
}
