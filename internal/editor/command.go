package editor

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// ErrItemNotFound is returned when the item to move is not in its source section.
	ErrItemNotFound = errors.New("item not found")
	// ErrSectionNotFound is returned when the source or target section does not exist.
	ErrSectionNotFound = errors.New("section not found")
	// ErrIncompatibleTarget is returned when the target is not a move target for the item.
	ErrIncompatibleTarget = errors.New("target section is not compatible with the item")
)

// TargetKind selects where a moved item goes.
type TargetKind string

const (
	// TargetSection moves into an existing compatible section.
	TargetSection TargetKind = "section"
	// TargetNewSection moves into a new custom section on an existing page.
	TargetNewSection TargetKind = "new-section"
	// TargetNewPage moves into a new custom section on a new last page.
	TargetNewPage TargetKind = "new-page"
)

// MoveCommand relocates one item.
type MoveCommand struct {
	ItemID string                  `json:"itemId" validate:"required"`
	Type   types.CustomSectionType `json:"type" validate:"required"`
	// SourceSectionID is the custom section holding the item. Empty means
	// the standard section of Type.
	SourceSectionID string     `json:"sourceSectionId,omitempty"`
	Target          TargetKind `json:"target" validate:"required,oneof=section new-section new-page"`
	TargetSectionID string     `json:"targetSectionId,omitempty" validate:"required_if=Target section"`
	TargetPageIndex int        `json:"targetPageIndex" validate:"min=0"`
	// SectionTitle names a created section. Empty uses the source title.
	SectionTitle string `json:"sectionTitle,omitempty"`
}

// Validate validates the MoveCommand using the validator.
func (c *MoveCommand) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unknown section type: %q", c.Type)
	}
	return nil
}

// MoveResult describes where a moved item ended up.
type MoveResult struct {
	SectionID string `json:"sectionId"`
	PageIndex int    `json:"pageIndex"`
	// Created is true when a new section was made for the item.
	Created bool `json:"created"`
}

// Move applies cmd to a copy of doc and returns the copy. doc is never
// modified; on failure the copy is dropped.
func Move(doc *types.ResumeData, cmd MoveCommand) (*types.ResumeData, *MoveResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid move command: %w", err)
	}

	result := &MoveResult{}
	next, err := Produce(doc, func(draft *types.ResumeData) error {
		if cmd.SourceSectionID != "" {
			src := draft.CustomSection(cmd.SourceSectionID)
			if src == nil {
				return fmt.Errorf("%w: %s", ErrSectionNotFound, cmd.SourceSectionID)
			}
			if src.Type != cmd.Type {
				return fmt.Errorf("%w: section %s holds %s items", ErrIncompatibleTarget, src.ID, src.Type)
			}
		} else if _, ok := cmd.Type.Standard(); !ok {
			return fmt.Errorf("%w: no standard %s section", ErrSectionNotFound, cmd.Type)
		}

		switch cmd.Target {
		case TargetSection:
			if _, ok := draft.Resolve(types.ParseSectionRef(cmd.TargetSectionID)); !ok {
				return fmt.Errorf("%w: %s", ErrSectionNotFound, cmd.TargetSectionID)
			}
			page, ok := findTarget(draft, cmd)
			if !ok {
				return fmt.Errorf("%w: %s", ErrIncompatibleTarget, cmd.TargetSectionID)
			}
			item, err := take(draft, cmd)
			if err != nil {
				return err
			}
			if !AddItemToSection(draft, item, cmd.TargetSectionID, cmd.Type) {
				return fmt.Errorf("%w: %s", ErrSectionNotFound, cmd.TargetSectionID)
			}
			*result = MoveResult{SectionID: cmd.TargetSectionID, PageIndex: page}

		case TargetNewSection:
			pages := len(draft.Metadata.Layout.Pages)
			if cmd.TargetPageIndex >= pages {
				return fmt.Errorf("%w: %d of %d", layout.ErrPageOutOfRange, cmd.TargetPageIndex, pages)
			}
			title := sectionTitle(draft, cmd)
			item, err := take(draft, cmd)
			if err != nil {
				return err
			}
			id := CreateCustomSectionWithItem(draft, item, cmd.Type, title, cmd.TargetPageIndex)
			*result = MoveResult{SectionID: id, PageIndex: cmd.TargetPageIndex, Created: true}

		case TargetNewPage:
			title := sectionTitle(draft, cmd)
			item, err := take(draft, cmd)
			if err != nil {
				return err
			}
			id := CreatePageWithSection(draft, item, cmd.Type, title)
			*result = MoveResult{SectionID: id, PageIndex: len(draft.Metadata.Layout.Pages) - 1, Created: true}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return next, result, nil
}

// findTarget returns the page on which cmd's target section is a compatible move target.
func findTarget(doc *types.ResumeData, cmd MoveCommand) (int, bool) {
	for _, page := range GetCompatibleMoveTargets(doc, cmd.Type, cmd.SourceSectionID) {
		for _, sec := range page.Sections {
			if sec.SectionID == cmd.TargetSectionID {
				return page.PageIndex, true
			}
		}
	}
	return 0, false
}

func take(doc *types.ResumeData, cmd MoveCommand) (types.Item, error) {
	item := RemoveItemFromSource(doc, cmd.ItemID, cmd.Type, cmd.SourceSectionID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, cmd.ItemID)
	}
	return item, nil
}

func sectionTitle(doc *types.ResumeData, cmd MoveCommand) string {
	if cmd.SectionTitle != "" {
		return cmd.SectionTitle
	}
	return GetSourceSectionTitle(doc, cmd.Type, cmd.SourceSectionID)
}
