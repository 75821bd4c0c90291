// Package history implements linear undo/redo over full snapshots of the
// contact collection.
//
// Callers take a Snapshot of the collection immediately before every
// mutation. entries[cursor] then holds the pre-mutation state and the
// history is "dirty": the live collection is ahead of the cursor. The first
// Undo on a dirty history records the live collection as the redo target
// and returns entries[cursor] without moving the cursor, so a single undo
// always restores the exact pre-mutation collection. A Snapshot taken on a
// clean history (after undo or redo) only prunes the redo branch, because
// entries[cursor] already equals the live collection.
package history

import (
	"slices"

	"github.com/dmitrijs2005/contactpro/internal/models"
)

// History is not safe for concurrent use.
type History struct {
	entries [][]models.Contact
	cursor  int
	dirty   bool
	limit   int
}

// New returns an empty history. limit > 0 caps the number of stored
// snapshots (minimum 2); limit <= 0 keeps every snapshot.
func New(limit int) *History {
	if limit == 1 {
		limit = 2
	}
	return &History{cursor: -1, limit: limit}
}

// Snapshot records pre, the collection as it is right before a mutation,
// and discards any redo states.
func (h *History) Snapshot(pre []models.Contact) {
	if h.cursor >= 0 && !h.dirty {
		h.entries = h.entries[:h.cursor+1]
	} else {
		h.entries = append(h.entries[:h.cursor+1], models.CloneAll(pre))
		h.cursor = len(h.entries) - 1
	}
	h.dirty = true
	h.trim()
}

// Undo returns the collection to restore, or false at the start of history.
// live is the current collection and becomes the redo target.
func (h *History) Undo(live []models.Contact) ([]models.Contact, bool) {
	if h.dirty {
		h.entries = append(h.entries[:h.cursor+1], models.CloneAll(live))
		h.dirty = false
		h.trim()
		return models.CloneAll(h.entries[h.cursor]), true
	}

	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return models.CloneAll(h.entries[h.cursor]), true
}

// Redo returns the collection to restore, or false when there is nothing to
// redo.
func (h *History) Redo() ([]models.Contact, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return models.CloneAll(h.entries[h.cursor]), true
}

func (h *History) CanUndo() bool {
	return h.dirty || h.cursor > 0
}

func (h *History) CanRedo() bool {
	return !h.dirty && h.cursor < len(h.entries)-1
}

// Len is the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor is the index of the current snapshot, -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
	h.dirty = false
}

func (h *History) trim() {
	if h.limit <= 0 || len(h.entries) <= h.limit {
		return
	}
	drop := len(h.entries) - h.limit
	h.entries = slices.Delete(h.entries, 0, drop)
	h.cursor -= drop
}
