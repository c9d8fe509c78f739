// Package dedupe keeps the first occurrence of each participation key.
package dedupe

import (
	"context"
	"strconv"

	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/okian/cohortviz/internal/domain/types"
)

// Deduper records seen keys.
type Deduper interface {
	// SeenAndRecord reports whether key was already seen and records it if not.
	SeenAndRecord(ctx context.Context, key string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with an unbounded set.
type inMemoryDeduper struct {
	seen     map[string]struct{}
	capacity int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	return int64(len(d.seen))
}

// Key returns the deduplication key of row for level: the person id at person level,
// the (person id, award id) pair at role level.
func Key(level types.Level, row model.Participation) string {
	if level == types.LevelRole {
		// length prefix keeps ("a:b","c") and ("a","b:c") apart
		return strconv.Itoa(len(row.PersonID)) + ":" + row.PersonID + row.AwardID
	}
	return row.PersonID
}

// Unique keeps the first row per key in input order.
func Unique(ctx context.Context, rows []model.Participation, level types.Level) []model.Participation {
	d := NewInMemoryDeduper(WithCapacity(len(rows)))
	out := make([]model.Participation, 0, len(rows))
	for _, r := range rows {
		if d.SeenAndRecord(ctx, Key(level, r)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
