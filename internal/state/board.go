package state

import (
	"sync"

	"MarkBoard/internal/logger"
)

// Board is the authoritative stroke collection held by the host. The
// drawing core only reads snapshots of it and hands back replacements.
type Board struct {
	mu      sync.RWMutex
	strokes Collection
	version uint64
}

func NewBoard() *Board {
	return &Board{strokes: make(Collection, 0)}
}

// Strokes returns a snapshot of the current collection.
func (b *Board) Strokes() Collection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.strokes.Clone()
}

// Add appends a committed stroke. Strokes without points are ignored.
func (b *Board) Add(s Stroke) bool {
	if !s.Valid() {
		logger.For("board").Debug("rejected invalid stroke", "id", s.ID)
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strokes = append(b.strokes, s)
	b.version++
	logger.For("board").Debug("stroke added", "id", s.ID, "points", len(s.Points))
	return true
}

// Replace swaps in a new collection, as produced by an eraser step.
func (b *Board) Replace(c Collection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	before := len(b.strokes)
	b.strokes = c.Clone()
	if b.strokes == nil {
		b.strokes = make(Collection, 0)
	}
	b.version++
	logger.For("board").Debug("strokes replaced", "before", before, "after", len(b.strokes))
}

// Clear removes every stroke.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strokes = make(Collection, 0)
	b.version++
	logger.For("board").Info("board cleared")
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.strokes)
}

// Version increases on every mutation.
func (b *Board) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}
