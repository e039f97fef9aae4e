package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine/buffer"
)

// Snapshot is a complete, independent copy of a buffer stored in history.
type Snapshot struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time

	buf *buffer.Buffer
}

// Buffer returns a clone of the snapshot's buffer.
// The stored copy is never handed out, so callers may edit the result freely.
func (s *Snapshot) Buffer() *buffer.Buffer {
	return s.buf.Clone()
}

// Text returns the snapshot's serialized text.
func (s *Snapshot) Text() string {
	return s.buf.Text()
}

// EntryInfo provides read-only info about a snapshot.
// Used for displaying history to users.
type EntryInfo struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
	Current     bool
}

// History is an append-only sequence of buffer snapshots with a movable
// pointer. The pointer always names a valid snapshot.
//
// History is not safe for concurrent use.
type History struct {
	snapshots []*Snapshot
	current   int
}

// New creates a history holding a single snapshot of initial.
func New(initial *buffer.Buffer) *History {
	return &History{
		snapshots: []*Snapshot{newSnapshot(initial, "Open")},
	}
}

func newSnapshot(b *buffer.Buffer, description string) *Snapshot {
	return &Snapshot{
		ID:          uuid.New(),
		Description: description,
		Timestamp:   time.Now(),
		buf:         b.Clone(),
	}
}

// Commit stores a clone of b as the newest snapshot.
// Snapshots after the pointer (the redo branch) are discarded first.
// The pointer moves to the new snapshot.
func (h *History) Commit(b *buffer.Buffer, description string) *Snapshot {
	// Drop the redo branch; clear the tail so pruned buffers can be collected.
	for i := h.current + 1; i < len(h.snapshots); i++ {
		h.snapshots[i] = nil
	}
	h.snapshots = h.snapshots[:h.current+1]

	snap := newSnapshot(b, description)
	h.snapshots = append(h.snapshots, snap)
	h.current = len(h.snapshots) - 1
	return snap
}

// Undo moves the pointer back one snapshot, if possible, and returns a clone
// of the snapshot at the pointer. At the earliest snapshot the pointer stays
// put and the same snapshot is returned.
func (h *History) Undo() *buffer.Buffer {
	if h.current > 0 {
		h.current--
	}
	return h.snapshots[h.current].Buffer()
}

// Redo moves the pointer forward one snapshot, if possible, and returns a
// clone of the snapshot at the pointer. At the tail it is a no-op.
func (h *History) Redo() *buffer.Buffer {
	if h.current < len(h.snapshots)-1 {
		h.current++
	}
	return h.snapshots[h.current].Buffer()
}

// ResetToTip moves the pointer to the newest snapshot without altering the
// sequence.
func (h *History) ResetToTip() {
	h.current = len(h.snapshots) - 1
}

// Current returns the snapshot at the pointer.
func (h *History) Current() *Snapshot {
	return h.snapshots[h.current]
}

// Tip returns the newest snapshot.
func (h *History) Tip() *Snapshot {
	return h.snapshots[len(h.snapshots)-1]
}

// AtTip returns true if the pointer is at the newest snapshot.
func (h *History) AtTip() bool {
	return h.current == len(h.snapshots)-1
}

// CanUndo returns true if undo would move the pointer.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo returns true if redo would move the pointer.
func (h *History) CanRedo() bool {
	return h.current < len(h.snapshots)-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Index returns the pointer position.
func (h *History) Index() int {
	return h.current
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	return h.current
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	return len(h.snapshots) - 1 - h.current
}

// Info returns info about every stored snapshot, oldest first.
func (h *History) Info() []EntryInfo {
	result := make([]EntryInfo, len(h.snapshots))
	for i, s := range h.snapshots {
		result[i] = EntryInfo{
			ID:          s.ID,
			Description: s.Description,
			Timestamp:   s.Timestamp,
			Current:     i == h.current,
		}
	}
	return result
}
