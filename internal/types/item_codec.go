package types

import (
	"encoding/json"
	"fmt"
)

// UnknownItemTypeError is returned when an item discriminant has no variant.
type UnknownItemTypeError struct {
	Type CustomSectionType
}

func (e *UnknownItemTypeError) Error() string {
	return fmt.Sprintf("unknown item type: %q", e.Type)
}

// NewItem returns an empty item of the variant selected by t.
// Every discriminant in CustomSectionTypes must have a case here.
func NewItem(t CustomSectionType) (Item, error) {
	switch t {
	case TypeSummary:
		return &SummaryItem{}, nil
	case TypeProfiles:
		return &ProfileItem{}, nil
	case TypeExperience:
		return &ExperienceItem{}, nil
	case TypeEducation:
		return &EducationItem{}, nil
	case TypeProjects:
		return &ProjectItem{}, nil
	case TypeSkills:
		return &SkillItem{Keywords: []string{}}, nil
	case TypeLanguages:
		return &LanguageItem{}, nil
	case TypeInterests:
		return &InterestItem{Keywords: []string{}}, nil
	case TypeAwards:
		return &AwardItem{}, nil
	case TypeCertifications:
		return &CertificationItem{}, nil
	case TypePublications:
		return &PublicationItem{}, nil
	case TypeVolunteer:
		return &VolunteerItem{}, nil
	case TypeReferences:
		return &ReferenceItem{}, nil
	case TypeCoverLetter:
		return &CoverLetterItem{}, nil
	default:
		return nil, &UnknownItemTypeError{Type: t}
	}
}

// DecodeItem decodes raw into the variant selected by t.
func DecodeItem(t CustomSectionType, raw []byte) (Item, error) {
	item, err := NewItem(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, item); err != nil {
		return nil, fmt.Errorf("failed to decode %s item: %w", t, err)
	}
	return item, nil
}

func decodeItems(t CustomSectionType, raws []json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(raws))
	for i, raw := range raws {
		item, err := DecodeItem(t, raw)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// sectionJSON is the wire shape of a section before its items are typed.
type sectionJSON struct {
	Title   string            `json:"title"`
	Columns int               `json:"columns"`
	Hidden  bool              `json:"hidden"`
	Items   []json.RawMessage `json:"items"`
}

func (s sectionJSON) decode(t CustomSectionType) (Section, error) {
	items, err := decodeItems(t, s.Items)
	if err != nil {
		return Section{}, err
	}
	return Section{Title: s.Title, Columns: s.Columns, Hidden: s.Hidden, Items: items}, nil
}

// UnmarshalJSON decodes each standard section with the item variant of its key.
func (s *Sections) UnmarshalJSON(data []byte) error {
	var raw map[string]sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, t := range StandardSections {
		r, ok := raw[string(t)]
		if !ok {
			return fmt.Errorf("sections: missing %q", t)
		}
		sec, err := r.decode(t.ItemType())
		if err != nil {
			return fmt.Errorf("sections.%s: %w", t, err)
		}
		*s.Get(t) = sec
	}
	return nil
}

// UnmarshalJSON decodes the section type first and then its items with the
// matching variant.
func (c *CustomSection) UnmarshalJSON(data []byte) error {
	var raw struct {
		sectionJSON
		ID   string            `json:"id"`
		Type CustomSectionType `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Type.Valid() {
		return &UnknownItemTypeError{Type: raw.Type}
	}
	sec, err := raw.decode(raw.Type)
	if err != nil {
		return fmt.Errorf("custom section %s: %w", raw.ID, err)
	}
	*c = CustomSection{
		ID:      raw.ID,
		Type:    raw.Type,
		Title:   sec.Title,
		Columns: sec.Columns,
		Hidden:  sec.Hidden,
		Items:   sec.Items,
	}
	return nil
}
