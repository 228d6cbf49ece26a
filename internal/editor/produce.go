package editor

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Produce applies fn to a deep copy of doc and returns the copy. If fn fails
// the copy is dropped and the error returned; doc is never modified.
func Produce(doc *types.ResumeData, fn func(draft *types.ResumeData) error) (*types.ResumeData, error) {
	draft := doc.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	return draft, nil
}
