// Package editor implements the document edits behind the resume editor:
// finding where an item may move, relocating it, and keeping the layout in
// step.
//
// The functions in this file mutate the document they are given. Callers
// that need all-or-nothing edits run them inside Produce.
package editor

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// MoveTargetSection is a section an item may be moved into.
type MoveTargetSection struct {
	SectionID    string `json:"sectionId"`
	SectionTitle string `json:"sectionTitle"`
	IsStandard   bool   `json:"isStandard"`
}

// MoveTargetPage lists the compatible sections placed on one page.
type MoveTargetPage struct {
	PageIndex int                 `json:"pageIndex"`
	Sections  []MoveTargetSection `json:"sections"`
}

// GetSourceSectionTitle returns the title of the section an item comes from.
// An empty or unknown customSectionID falls back to the default title of t.
func GetSourceSectionTitle(doc *types.ResumeData, t types.CustomSectionType, customSectionID string) string {
	if customSectionID != "" {
		if cs := doc.CustomSection(customSectionID); cs != nil {
			return cs.Title
		}
	}
	return types.DefaultSectionTitle(t)
}

// GetCompatibleMoveTargets returns, for every page in order, the placed
// sections whose type matches sourceType, excluding the source itself. An
// empty sourceSectionID means the item lives in the standard section of
// sourceType. Every page has an entry, possibly with no sections.
func GetCompatibleMoveTargets(doc *types.ResumeData, sourceType types.CustomSectionType, sourceSectionID string) []MoveTargetPage {
	pages := doc.Metadata.Layout.Pages
	out := make([]MoveTargetPage, 0, len(pages))
	for i := range pages {
		entry := MoveTargetPage{PageIndex: i, Sections: []MoveTargetSection{}}
		for _, raw := range pages[i].Refs() {
			if isSource(raw, sourceType, sourceSectionID) {
				continue
			}
			ref := types.ParseSectionRef(raw)
			switch ref.Kind() {
			case types.RefStandard:
				if raw == string(sourceType) {
					entry.Sections = append(entry.Sections, MoveTargetSection{
						SectionID:    raw,
						SectionTitle: types.DefaultSectionTitle(sourceType),
						IsStandard:   true,
					})
				}
			case types.RefCustom:
				if cs := doc.CustomSection(raw); cs != nil && cs.Type == sourceType {
					entry.Sections = append(entry.Sections, MoveTargetSection{
						SectionID:    cs.ID,
						SectionTitle: cs.Title,
						IsStandard:   false,
					})
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

func isSource(ref string, sourceType types.CustomSectionType, sourceSectionID string) bool {
	if sourceSectionID != "" {
		return ref == sourceSectionID
	}
	return ref == string(sourceType)
}

// RemoveItemFromSource takes the item with itemID out of its section and
// returns it. It returns nil, leaving doc untouched, when the section or the
// item does not exist.
func RemoveItemFromSource(doc *types.ResumeData, itemID string, t types.CustomSectionType, customSectionID string) types.Item {
	var items *[]types.Item
	if customSectionID != "" {
		cs := doc.CustomSection(customSectionID)
		if cs == nil {
			return nil
		}
		items = &cs.Items
	} else {
		st, ok := t.Standard()
		if !ok {
			return nil
		}
		items = &doc.Sections.Get(st).Items
	}

	for i, item := range *items {
		if item.Base().ID != itemID {
			continue
		}
		rest := make([]types.Item, 0, len(*items)-1)
		rest = append(rest, (*items)[:i]...)
		*items = append(rest, (*items)[i+1:]...)
		return item
	}
	return nil
}

// AddItemToSection appends item to the section targetSectionID. The target is
// either the standard section whose key equals t or a custom section of type
// t. It reports false, leaving doc untouched, when there is no such section.
func AddItemToSection(doc *types.ResumeData, item types.Item, targetSectionID string, t types.CustomSectionType) bool {
	if types.IsStandardSectionID(targetSectionID) {
		if targetSectionID != string(t) {
			return false
		}
		sec := doc.Sections.Get(types.SectionType(targetSectionID))
		sec.Items = append(sec.Items, item)
		return true
	}

	cs := doc.CustomSection(targetSectionID)
	if cs == nil || cs.Type != t {
		return false
	}
	cs.Items = append(cs.Items, item)
	return true
}

// CreateCustomSectionWithItem creates a custom section of type t holding item
// and places it at the end of the main column of page targetPageIndex. The new
// id is returned. When the page does not exist the section is still created
// but is not placed anywhere.
func CreateCustomSectionWithItem(doc *types.ResumeData, item types.Item, t types.CustomSectionType, sectionTitle string, targetPageIndex int) string {
	id := addCustomSection(doc, item, t, sectionTitle)
	pages := doc.Metadata.Layout.Pages
	if targetPageIndex >= 0 && targetPageIndex < len(pages) {
		pages[targetPageIndex].Main = append(pages[targetPageIndex].Main, id)
	}
	return id
}

// CreatePageWithSection creates a custom section of type t holding item on a
// new last page and returns the section id.
func CreatePageWithSection(doc *types.ResumeData, item types.Item, t types.CustomSectionType, sectionTitle string) string {
	id := addCustomSection(doc, item, t, sectionTitle)
	doc.Metadata.Layout.Pages = append(doc.Metadata.Layout.Pages, types.Page{
		FullWidth: false,
		Main:      []string{id},
		Sidebar:   []string{},
	})
	return id
}

func addCustomSection(doc *types.ResumeData, item types.Item, t types.CustomSectionType, title string) string {
	id := types.GenerateID()
	doc.CustomSections = append(doc.CustomSections, types.NewCustomSection(id, t, title, item))
	return id
}
