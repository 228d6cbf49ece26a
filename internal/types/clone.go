package types

import "slices"

// Clone returns a deep copy of d that shares no slices, pointers or items with it.
func (d *ResumeData) Clone() *ResumeData {
	if d == nil {
		return nil
	}
	c := *d
	c.Basics.CustomFields = cloneSlice(d.Basics.CustomFields)
	for _, t := range StandardSections {
		sec := c.Sections.Get(t)
		sec.Items = CloneItems(sec.Items)
	}
	if d.CustomSections != nil {
		c.CustomSections = make([]*CustomSection, len(d.CustomSections))
		for i, cs := range d.CustomSections {
			c.CustomSections[i] = cs.Clone()
		}
	}
	c.Metadata.Layout.Pages = clonePages(d.Metadata.Layout.Pages)
	c.Metadata.Typography.Body.FontWeights = cloneSlice(d.Metadata.Typography.Body.FontWeights)
	c.Metadata.Typography.Heading.FontWeights = cloneSlice(d.Metadata.Typography.Heading.FontWeights)
	return &c
}

// Clone returns a deep copy of the custom section.
func (c *CustomSection) Clone() *CustomSection {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = CloneItems(c.Items)
	return &out
}

// CloneItems deep-copies a list of items, preserving nil versus empty.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = CloneItem(item)
	}
	return out
}

// CloneItem returns a deep copy of item.
func CloneItem(item Item) Item {
	switch v := item.(type) {
	case nil:
		return nil
	case *SummaryItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *ProfileItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *ExperienceItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *EducationItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *ProjectItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *SkillItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		c.Keywords = cloneSlice(v.Keywords)
		return &c
	case *LanguageItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *InterestItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		c.Keywords = cloneSlice(v.Keywords)
		return &c
	case *AwardItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *CertificationItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *PublicationItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *VolunteerItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *ReferenceItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	case *CoverLetterItem:
		c := *v
		c.BaseItem = v.BaseItem.clone()
		return &c
	default:
		panic("types: unhandled item variant")
	}
}

func (b BaseItem) clone() BaseItem {
	if b.Options != nil {
		opts := *b.Options
		b.Options = &opts
	}
	return b
}

func clonePages(pages []Page) []Page {
	if pages == nil {
		return nil
	}
	out := make([]Page, len(pages))
	for i, p := range pages {
		out[i] = Page{FullWidth: p.FullWidth, Main: cloneSlice(p.Main), Sidebar: cloneSlice(p.Sidebar)}
	}
	return out
}

// cloneSlice copies s, keeping a nil slice nil and an empty slice empty.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
