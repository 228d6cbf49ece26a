package types

// RefKind tells what a layout slot reference points at.
type RefKind int

const (
	// RefCustom points at a custom section by its generated id.
	RefCustom RefKind = iota
	// RefStandard points at one of the twelve standard sections.
	RefStandard
	// RefSummary points at the summary block.
	RefSummary
)

// SummaryRefID is the layout reference of the summary block.
const SummaryRefID = "summary"

// SectionRef is a resolved layout reference: a standard key, the summary
// block, or a custom section id.
type SectionRef struct {
	kind RefKind
	id   string
}

// ParseSectionRef classifies a raw layout string.
func ParseSectionRef(s string) SectionRef {
	switch {
	case IsStandardSectionID(s):
		return SectionRef{kind: RefStandard, id: s}
	case s == SummaryRefID:
		return SectionRef{kind: RefSummary, id: s}
	default:
		return SectionRef{kind: RefCustom, id: s}
	}
}

// StandardRef returns the reference of a standard section.
func StandardRef(t SectionType) SectionRef {
	return SectionRef{kind: RefStandard, id: string(t)}
}

// CustomRef returns the reference of a custom section.
func CustomRef(id string) SectionRef {
	return SectionRef{kind: RefCustom, id: id}
}

// Kind returns what the reference points at.
func (r SectionRef) Kind() RefKind { return r.kind }

// String returns the raw layout string.
func (r SectionRef) String() string { return r.id }

// Standard returns the standard section key when r points at one.
func (r SectionRef) Standard() (SectionType, bool) {
	if r.kind != RefStandard {
		return "", false
	}
	return SectionType(r.id), true
}

// CustomID returns the custom section id when r points at one.
func (r SectionRef) CustomID() (string, bool) {
	if r.kind != RefCustom {
		return "", false
	}
	return r.id, true
}
