// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionType is the key of one of the twelve standard resume sections.
type SectionType string

// Standard section keys, in document order.
const (
	SectionProfiles       SectionType = "profiles"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionProjects       SectionType = "projects"
	SectionSkills         SectionType = "skills"
	SectionLanguages      SectionType = "languages"
	SectionInterests      SectionType = "interests"
	SectionAwards         SectionType = "awards"
	SectionCertifications SectionType = "certifications"
	SectionPublications   SectionType = "publications"
	SectionVolunteer      SectionType = "volunteer"
	SectionReferences     SectionType = "references"
)

// StandardSections lists every standard section key in document order.
var StandardSections = []SectionType{
	SectionProfiles,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSkills,
	SectionLanguages,
	SectionInterests,
	SectionAwards,
	SectionCertifications,
	SectionPublications,
	SectionVolunteer,
	SectionReferences,
}

// CustomSectionType is the item discriminant of a section. It is either a
// standard section key or one of the two custom-only kinds (summary, cover-letter).
type CustomSectionType string

// Item discriminants.
const (
	TypeSummary        CustomSectionType = "summary"
	TypeProfiles       CustomSectionType = CustomSectionType(SectionProfiles)
	TypeExperience     CustomSectionType = CustomSectionType(SectionExperience)
	TypeEducation      CustomSectionType = CustomSectionType(SectionEducation)
	TypeProjects       CustomSectionType = CustomSectionType(SectionProjects)
	TypeSkills         CustomSectionType = CustomSectionType(SectionSkills)
	TypeLanguages      CustomSectionType = CustomSectionType(SectionLanguages)
	TypeInterests      CustomSectionType = CustomSectionType(SectionInterests)
	TypeAwards         CustomSectionType = CustomSectionType(SectionAwards)
	TypeCertifications CustomSectionType = CustomSectionType(SectionCertifications)
	TypePublications   CustomSectionType = CustomSectionType(SectionPublications)
	TypeVolunteer      CustomSectionType = CustomSectionType(SectionVolunteer)
	TypeReferences     CustomSectionType = CustomSectionType(SectionReferences)
	TypeCoverLetter    CustomSectionType = "cover-letter"
)

// CustomSectionTypes lists every item discriminant a custom section may carry.
var CustomSectionTypes = []CustomSectionType{
	TypeSummary,
	TypeProfiles,
	TypeExperience,
	TypeEducation,
	TypeProjects,
	TypeSkills,
	TypeLanguages,
	TypeInterests,
	TypeAwards,
	TypeCertifications,
	TypePublications,
	TypeVolunteer,
	TypeReferences,
	TypeCoverLetter,
}

var standardSectionSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(StandardSections))
	for _, t := range StandardSections {
		set[string(t)] = struct{}{}
	}
	return set
}()

// IsStandardSectionID reports whether sectionID exactly matches one of the
// twelve standard section keys. The comparison is case-sensitive.
func IsStandardSectionID(sectionID string) bool {
	_, ok := standardSectionSet[sectionID]
	return ok
}

// Valid reports whether t is a known item discriminant.
func (t CustomSectionType) Valid() bool {
	if t == TypeSummary || t == TypeCoverLetter {
		return true
	}
	return IsStandardSectionID(string(t))
}

// Standard returns the standard section key for t, if t names one.
func (t CustomSectionType) Standard() (SectionType, bool) {
	if IsStandardSectionID(string(t)) {
		return SectionType(t), true
	}
	return "", false
}

// ItemType returns the item discriminant of the standard section.
func (s SectionType) ItemType() CustomSectionType {
	return CustomSectionType(s)
}

var defaultTitles = map[CustomSectionType]string{
	TypeSummary:        "Summary",
	TypeProfiles:       "Profiles",
	TypeExperience:     "Experience",
	TypeEducation:      "Education",
	TypeProjects:       "Projects",
	TypeSkills:         "Skills",
	TypeLanguages:      "Languages",
	TypeInterests:      "Interests",
	TypeAwards:         "Awards",
	TypeCertifications: "Certifications",
	TypePublications:   "Publications",
	TypeVolunteer:      "Volunteer",
	TypeReferences:     "References",
	TypeCoverLetter:    "Cover Letter",
}

// DefaultSectionTitle returns the heading shown for a section of type t when
// the user has not set one. Unknown types return the raw discriminant.
func DefaultSectionTitle(t CustomSectionType) string {
	if title, ok := defaultTitles[t]; ok {
		return title
	}
	return string(t)
}
