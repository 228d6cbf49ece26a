package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// execute runs the CLI in-process and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeDoc stores doc in a temp file and returns its path.
func writeDoc(t *testing.T, doc *types.ResumeData) string {
	t.Helper()
	data, err := schemas.MarshalResumeData(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func parseDoc(t *testing.T, out string) *types.ResumeData {
	t.Helper()
	doc, err := schemas.ParseResumeData([]byte(out))
	require.NoError(t, err)
	return doc
}

func brokenLayout() *types.ResumeData {
	doc := types.SampleResumeData()
	doc.Metadata.Layout.Pages[0].Main = append(doc.Metadata.Layout.Pages[0].Main, "ghost-section")
	return doc
}

func TestRoot_InvalidConfigFile(t *testing.T) {
	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.json"), "new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNewCommand(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		out, err := execute(t, "", "new")
		require.NoError(t, err)
		doc := parseDoc(t, out)
		assert.Zero(t, doc.ItemCount())
		assert.Len(t, doc.Metadata.Layout.Pages, 1)
	})

	t.Run("sample with locale to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sample.json")
		_, err := execute(t, "", "new", "--sample", "--locale", "fr-FR", "--out", path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		doc := parseDoc(t, string(data))
		assert.Equal(t, "fr-FR", doc.Metadata.Page.Locale)
		assert.Equal(t, types.SampleResumeData().ItemCount(), doc.ItemCount())
	})
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       func(t *testing.T) []string
		stdin      string
		wantError  bool
		wantOutput []string
	}{
		{
			name:       "sample passes",
			args:       func(t *testing.T) []string { return []string{"validate", "--in", writeDoc(t, types.SampleResumeData())} },
			wantOutput: []string{"Validation passed"},
		},
		{
			name:       "verbose prints summary",
			args:       func(t *testing.T) []string { return []string{"validate", "-v", "--in", writeDoc(t, types.SampleResumeData())} },
			wantOutput: []string{"RESUME", "David Kowalski", "Validation passed"},
		},
		{
			name:       "stdin",
			args:       func(*testing.T) []string { return []string{"validate", "--in", "-"} },
			stdin:      `[1, 2, 3]`,
			wantError:  true,
			wantOutput: []string{"VALIDATION ERRORS", "Validation failed"},
		},
		{
			name:       "dangling layout reference",
			args:       func(t *testing.T) []string { return []string{"validate", "--in", writeDoc(t, brokenLayout())} },
			wantError:  true,
			wantOutput: []string{"LAYOUT ISSUES", "ghost-section", "Validation failed"},
		},
		{
			name:      "missing --in",
			args:      func(*testing.T) []string { return []string{"validate"} },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args(t)...)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestTargetsCommand(t *testing.T) {
	path := writeDoc(t, types.SampleResumeData())

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "", "targets", "--in", path, "--type", "experience", "--json")
		require.NoError(t, err)

		var pages []editor.MoveTargetPage
		require.NoError(t, json.Unmarshal([]byte(out), &pages))
		require.NotEmpty(t, pages)
		var ids []string
		for _, page := range pages {
			for _, sec := range page.Sections {
				ids = append(ids, sec.SectionID)
			}
		}
		assert.NotContains(t, ids, "experience", "the standard section is the source")
		assert.Contains(t, ids, types.SampleExperienceSectionID)
	})

	t.Run("excludes source section", func(t *testing.T) {
		out, err := execute(t, "", "targets", "--in", path, "--type", "experience", "--source", types.SampleExperienceSectionID)
		require.NoError(t, err)
		assert.Contains(t, out, "MOVE TARGETS: experience")
		assert.Contains(t, out, "(standard, experience)")
		assert.NotContains(t, out, types.SampleExperienceSectionID)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := execute(t, "", "targets", "--in", path, "--type", "hobbies")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown section type")
	})

	t.Run("type is required", func(t *testing.T) {
		_, err := execute(t, "", "targets", "--in", path)
		assert.Error(t, err)
	})
}

func TestMoveCommand(t *testing.T) {
	sample := types.SampleResumeData()
	path := writeDoc(t, sample)
	awardID := sample.Sections.Awards.Items[0].Base().ID
	skillID := sample.Sections.Skills.Items[0].Base().ID

	t.Run("single move from flags", func(t *testing.T) {
		out, err := execute(t, "", "move", "--in", path, "--item", awardID, "--type", "awards", "--target", "new-page", "--title", "Honors")
		require.NoError(t, err)

		doc := parseDoc(t, out)
		assert.Empty(t, doc.Sections.Awards.Items)
		require.Len(t, doc.Metadata.Layout.Pages, len(sample.Metadata.Layout.Pages)+1)
		last := doc.Metadata.Layout.Pages[len(doc.Metadata.Layout.Pages)-1]
		require.Len(t, last.Main, 1)
		assert.Equal(t, "Honors", doc.CustomSection(last.Main[0]).Title)
		assert.Empty(t, layout.CheckLayout(doc))
	})

	t.Run("command list with undo", func(t *testing.T) {
		commands := []editor.MoveCommand{
			{ItemID: awardID, Type: types.TypeAwards, Target: editor.TargetNewPage},
			{ItemID: skillID, Type: types.TypeSkills, Target: editor.TargetNewSection, TargetPageIndex: 1},
		}
		data, err := json.Marshal(commands)
		require.NoError(t, err)
		cmdPath := filepath.Join(t.TempDir(), "moves.json")
		require.NoError(t, os.WriteFile(cmdPath, data, 0644))

		out, err := execute(t, "", "move", "--in", path, "--commands", cmdPath, "--undo", "1")
		require.NoError(t, err)

		doc := parseDoc(t, out)
		assert.Empty(t, doc.Sections.Awards.Items)
		assert.Len(t, doc.Sections.Skills.Items, len(sample.Sections.Skills.Items))
		assert.Len(t, doc.CustomSections, len(sample.CustomSections)+1)
	})

	t.Run("failed move names the command", func(t *testing.T) {
		_, err := execute(t, "", "move", "--in", path, "--item", "missing", "--type", "awards", "--target", "new-page")
		require.Error(t, err)
		assert.ErrorIs(t, err, editor.ErrItemNotFound)
		assert.Contains(t, err.Error(), "move 1 (missing)")
	})

	t.Run("too many undos", func(t *testing.T) {
		_, err := execute(t, "", "move", "--in", path, "--item", awardID, "--type", "awards", "--target", "new-page", "--undo", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--undo")
	})

	t.Run("no move given", func(t *testing.T) {
		_, err := execute(t, "", "move", "--in", path)
		assert.Error(t, err)
	})
}

func TestCheckLayoutCommand(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		out, err := execute(t, "", "check-layout", "--in", writeDoc(t, types.SampleResumeData()))
		require.NoError(t, err)
		assert.Contains(t, out, "No issues")
	})

	t.Run("json issues", func(t *testing.T) {
		out, err := execute(t, "", "check-layout", "--json", "--in", writeDoc(t, brokenLayout()))
		require.Error(t, err)

		var issues []layout.Issue
		require.NoError(t, json.Unmarshal([]byte(out), &issues))
		require.Len(t, issues, 1)
		assert.Equal(t, layout.IssueDangling, issues[0].Kind)
		assert.Equal(t, "ghost-section", issues[0].Ref)
	})
}

func TestServeCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := execute(t, "", "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
