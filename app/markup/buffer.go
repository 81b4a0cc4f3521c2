package markup

import (
	"log/slog"
	"sort"
	"strings"
)

// Buffer owns the content of one rewrite pass. Replacements are queued
// against the snapshot the pass scanned and applied together by Apply, so
// match offsets never go stale mid-pass.
type Buffer struct {
	snapshot string
	edits    []edit
}

type edit struct {
	start int
	end   int
	text  string
}

func NewBuffer(snapshot string) *Buffer {
	return &Buffer{snapshot: snapshot}
}

func (b *Buffer) Snapshot() string {
	return b.snapshot
}

func (b *Buffer) Pending() int {
	return len(b.edits)
}

// Replace queues text in place of the matched tag. The match offset is used
// when it still points at the tag; otherwise the first occurrence of the tag
// text is used. Returns false when the tag cannot be located or the edit
// would overlap a queued one.
func (b *Buffer) Replace(m TagMatch, text string) bool {
	if m.Tag == "" {
		return false
	}

	start := m.Offset
	if start < 0 || start+len(m.Tag) > len(b.snapshot) || b.snapshot[start:start+len(m.Tag)] != m.Tag {
		start = strings.Index(b.snapshot, m.Tag)
		if start == -1 {
			slog.Warn("Tag not found in buffer", "tag", abbreviate(m.Tag))
			return false
		}
	}

	e := edit{start: start, end: start + len(m.Tag), text: text}
	for _, queued := range b.edits {
		if e.start < queued.end && queued.start < e.end {
			slog.Warn("Overlapping tag replacement skipped", "tag", abbreviate(m.Tag), "offset", start)
			return false
		}
	}

	b.edits = append(b.edits, e)
	return true
}

// Apply splices all queued edits into the snapshot, last edit first, and
// makes the result the new snapshot.
func (b *Buffer) Apply() string {
	if len(b.edits) == 0 {
		return b.snapshot
	}

	sort.Slice(b.edits, func(i, j int) bool {
		return b.edits[i].start > b.edits[j].start
	})

	result := b.snapshot
	for _, e := range b.edits {
		result = result[:e.start] + e.text + result[e.end:]
	}

	b.snapshot = result
	b.edits = nil
	return result
}

func abbreviate(s string) string {
	const limit = 120
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
