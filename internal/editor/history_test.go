package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func rename(name string) func(*types.ResumeData) error {
	return func(draft *types.ResumeData) error {
		draft.Basics.Name = name
		return nil
	}
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(types.DefaultResumeData(), 0)
	assert.False(t, h.CanUndo())
	assert.ErrorIs(t, h.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, h.Redo(), ErrNothingToRedo)

	require.NoError(t, h.Apply(rename("first")))
	require.NoError(t, h.Apply(rename("second")))
	assert.Equal(t, "second", h.Current().Basics.Name)

	require.NoError(t, h.Undo())
	assert.Equal(t, "first", h.Current().Basics.Name)
	require.NoError(t, h.Undo())
	assert.Equal(t, "", h.Current().Basics.Name)
	assert.True(t, h.CanRedo())

	require.NoError(t, h.Redo())
	assert.Equal(t, "first", h.Current().Basics.Name)

	// A new edit drops the redo stack.
	require.NoError(t, h.Apply(rename("third")))
	assert.False(t, h.CanRedo())
	require.NoError(t, h.Undo())
	assert.Equal(t, "first", h.Current().Basics.Name)
}

func TestHistory_FailedApply(t *testing.T) {
	h := NewHistory(types.DefaultResumeData(), 0)
	require.NoError(t, h.Apply(rename("kept")))

	boom := errors.New("boom")
	err := h.Apply(func(draft *types.ResumeData) error {
		draft.Basics.Name = "lost"
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "kept", h.Current().Basics.Name)
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(types.DefaultResumeData(), 2)
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, h.Apply(rename(name)))
	}

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.Equal(t, "b", h.Current().Basics.Name)
	assert.ErrorIs(t, h.Undo(), ErrNothingToUndo)
}

func TestHistory_ApplyMove(t *testing.T) {
	start := types.SampleResumeData()
	h := NewHistory(start, 0)
	skillID := start.Sections.Skills.Items[0].Base().ID

	result, err := h.ApplyMove(MoveCommand{ItemID: skillID, Type: types.TypeSkills, Target: TargetNewPage})
	require.NoError(t, err)
	assert.NotNil(t, h.Current().CustomSection(result.SectionID))

	require.NoError(t, h.Undo())
	assert.Nil(t, h.Current().CustomSection(result.SectionID))
	assert.Equal(t, start, h.Current())
}
