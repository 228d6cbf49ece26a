// Package layout keeps the page arrangement of a resume consistent with its
// sections.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	// ErrDuplicateReference is returned when a reference is already placed on a page.
	ErrDuplicateReference = errors.New("section is already placed in the layout")
	// ErrPageOutOfRange is returned for a page index outside the layout.
	ErrPageOutOfRange = errors.New("page index out of range")
	// ErrLastPage is returned when removing the only page.
	ErrLastPage = errors.New("cannot remove the last page")
	// ErrUnknownReference is returned when a reference resolves to no section.
	ErrUnknownReference = errors.New("reference does not resolve to a section")
	// ErrUnknownColumn is returned for a column other than main or sidebar.
	ErrUnknownColumn = errors.New("unknown column")
)

// Location is one slot position holding a reference.
type Location struct {
	PageIndex int
	Column    types.Column
	Index     int
}

// Find returns the first slot holding ref in layout order.
func Find(doc *types.ResumeData, ref types.SectionRef) (Location, bool) {
	locs := locations(doc, ref.String())
	if len(locs) == 0 {
		return Location{}, false
	}
	return locs[0], true
}

func locations(doc *types.ResumeData, ref string) []Location {
	var out []Location
	for p := range doc.Metadata.Layout.Pages {
		page := &doc.Metadata.Layout.Pages[p]
		for _, col := range []types.Column{types.ColumnMain, types.ColumnSidebar} {
			for i, r := range *page.Slot(col) {
				if r == ref {
					out = append(out, Location{PageIndex: p, Column: col, Index: i})
				}
			}
		}
	}
	return out
}

// Place inserts ref into a page column at position at. A negative or too large
// position appends. References are placed at most once.
func Place(doc *types.ResumeData, pageIndex int, column types.Column, at int, ref types.SectionRef) error {
	pages := doc.Metadata.Layout.Pages
	if pageIndex < 0 || pageIndex >= len(pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, pageIndex, len(pages))
	}
	slot := pages[pageIndex].Slot(column)
	if slot == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if _, ok := doc.Resolve(ref); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReference, ref)
	}
	if _, ok := Find(doc, ref); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateReference, ref)
	}
	if at < 0 || at > len(*slot) {
		at = len(*slot)
	}
	*slot = slices.Insert(*slot, at, ref.String())
	return nil
}

// Unplace removes ref from every slot and reports how many were removed.
func Unplace(doc *types.ResumeData, ref types.SectionRef) int {
	removed := 0
	for p := range doc.Metadata.Layout.Pages {
		page := &doc.Metadata.Layout.Pages[p]
		for _, col := range []types.Column{types.ColumnMain, types.ColumnSidebar} {
			slot := page.Slot(col)
			before := len(*slot)
			*slot = slices.DeleteFunc(*slot, func(r string) bool { return r == ref.String() })
			removed += before - len(*slot)
		}
	}
	return removed
}

// RemoveCustomSection deletes a custom section together with its layout
// references. It reports whether the section existed.
func RemoveCustomSection(doc *types.ResumeData, id string) bool {
	idx := slices.IndexFunc(doc.CustomSections, func(cs *types.CustomSection) bool { return cs.ID == id })
	if idx < 0 {
		return false
	}
	doc.CustomSections = slices.Delete(doc.CustomSections, idx, idx+1)
	Unplace(doc, types.CustomRef(id))
	return true
}

// AddPage appends an empty page and returns its index.
func AddPage(doc *types.ResumeData) int {
	doc.Metadata.Layout.Pages = append(doc.Metadata.Layout.Pages, types.Page{
		FullWidth: false,
		Main:      []string{},
		Sidebar:   []string{},
	})
	return len(doc.Metadata.Layout.Pages) - 1
}

// RemovePage deletes a page. Its references move to the end of the same
// columns on the previous page, or on the next page when removing the first.
func RemovePage(doc *types.ResumeData, index int) error {
	pages := doc.Metadata.Layout.Pages
	if index < 0 || index >= len(pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, len(pages))
	}
	if len(pages) == 1 {
		return ErrLastPage
	}

	removed := pages[index]
	target := index - 1
	if index == 0 {
		target = 1
	}
	dst := &pages[target]
	dst.Main = append(dst.Main, removed.Main...)
	dst.Sidebar = append(dst.Sidebar, removed.Sidebar...)

	doc.Metadata.Layout.Pages = slices.Delete(pages, index, index+1)
	return nil
}

// MoveReference moves ref from wherever it is placed to a new slot.
func MoveReference(doc *types.ResumeData, ref types.SectionRef, pageIndex int, column types.Column, at int) error {
	pages := doc.Metadata.Layout.Pages
	if pageIndex < 0 || pageIndex >= len(pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, pageIndex, len(pages))
	}
	if pages[pageIndex].Slot(column) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if _, ok := doc.Resolve(ref); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownReference, ref)
	}
	Unplace(doc, ref)
	return Place(doc, pageIndex, column, at, ref)
}
