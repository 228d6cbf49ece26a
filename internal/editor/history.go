package editor

import (
	"errors"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultHistoryLimit bounds the undo stack when NewHistory is given no limit.
const DefaultHistoryLimit = 100

// ErrNothingToUndo and ErrNothingToRedo are returned when a stack is empty.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History keeps document snapshots for undo and redo. Snapshots are produced
// by Produce and are never modified after they are stored, so Current may be
// shared with readers that do not write to it. History is not safe for
// concurrent use.
type History struct {
	past    []*types.ResumeData
	present *types.ResumeData
	future  []*types.ResumeData
	limit   int
}

// NewHistory starts a history at doc. A limit of zero or less uses DefaultHistoryLimit.
func NewHistory(doc *types.ResumeData, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{present: doc.Clone(), limit: limit}
}

// Current returns the present snapshot. Callers must not modify it.
func (h *History) Current() *types.ResumeData {
	return h.present
}

// Apply produces a new present from fn. A failed fn leaves the history unchanged.
// A successful apply clears the redo stack.
func (h *History) Apply(fn func(draft *types.ResumeData) error) error {
	next, err := Produce(h.present, fn)
	if err != nil {
		return err
	}
	h.push(next)
	return nil
}

// ApplyMove runs a move command against the present snapshot.
func (h *History) ApplyMove(cmd MoveCommand) (*MoveResult, error) {
	next, result, err := Move(h.present, cmd)
	if err != nil {
		return nil, err
	}
	h.push(next)
	return result, nil
}

func (h *History) push(next *types.ResumeData) {
	h.past = append(h.past, h.present)
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.present = next
	h.future = nil
}

// Undo steps back one snapshot.
func (h *History) Undo() error {
	if len(h.past) == 0 {
		return ErrNothingToUndo
	}
	h.future = append(h.future, h.present)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return nil
}

// Redo steps forward one snapshot.
func (h *History) Redo() error {
	if len(h.future) == 0 {
		return ErrNothingToRedo
	}
	h.past = append(h.past, h.present)
	h.present = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.future) > 0 }
