package types

// URL is a link with an optional display label.
type URL struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// ItemOptions holds per-item display options.
type ItemOptions struct {
	// ShowLinkInTitle renders the website as a hyperlink on the title
	// instead of as a separate link.
	ShowLinkInTitle bool `json:"showLinkInTitle"`
}

// BaseItem carries the fields shared by every item variant.
type BaseItem struct {
	ID      string       `json:"id"`
	Hidden  bool         `json:"hidden"`
	Options *ItemOptions `json:"options,omitempty"`
}

// Base returns the shared fields of the item.
func (b *BaseItem) Base() *BaseItem { return b }

func (b *BaseItem) sealed() {}

// Item is one entry of a section. The concrete variant is fixed by the type
// of the section that owns it; Type reports that discriminant.
type Item interface {
	Base() *BaseItem
	Type() CustomSectionType
	sealed()
}

// SummaryItem is a rich-text block inside a custom summary section.
type SummaryItem struct {
	BaseItem
	Content string `json:"content"`
}

// ProfileItem is an account on a network or platform.
type ProfileItem struct {
	BaseItem
	Icon     string `json:"icon"`
	Network  string `json:"network" validate:"required"`
	Username string `json:"username"`
	Website  URL    `json:"website"`
}

// ExperienceItem is a position held at a company or organization.
type ExperienceItem struct {
	BaseItem
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

// EducationItem is a qualification from a school or institution.
type EducationItem struct {
	BaseItem
	School      string `json:"school" validate:"required"`
	Degree      string `json:"degree"`
	Area        string `json:"area"`
	Grade       string `json:"grade"`
	Location    string `json:"location"`
	Period      string `json:"period"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

// ProjectItem is a project the author worked on.
type ProjectItem struct {
	BaseItem
	Name        string `json:"name" validate:"required"`
	Period      string `json:"period"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

// SkillItem is a skill with an optional 0-5 level.
type SkillItem struct {
	BaseItem
	Icon        string   `json:"icon"`
	Name        string   `json:"name" validate:"required"`
	Proficiency string   `json:"proficiency"`
	Level       float64  `json:"level" validate:"min=0,max=5"`
	Keywords    []string `json:"keywords"`
}

// LanguageItem is a spoken language with an optional 0-5 level.
type LanguageItem struct {
	BaseItem
	Language string  `json:"language" validate:"required"`
	Fluency  string  `json:"fluency"`
	Level    float64 `json:"level" validate:"min=0,max=5"`
}

// InterestItem is a hobby or interest.
type InterestItem struct {
	BaseItem
	Icon     string   `json:"icon"`
	Name     string   `json:"name" validate:"required"`
	Keywords []string `json:"keywords"`
}

// AwardItem is an award received.
type AwardItem struct {
	BaseItem
	Title       string `json:"title" validate:"required"`
	Awarder     string `json:"awarder"`
	Date        string `json:"date"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

// CertificationItem is a certification obtained.
type CertificationItem struct {
	BaseItem
	Title       string `json:"title" validate:"required"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

// PublicationItem is a published article, talk or paper.
type PublicationItem struct {
	BaseItem
	Title       string `json:"title" validate:"required"`
	Publisher   string `json:"publisher"`
	Date        string `json:"date"`
	Website     URL    `json:"website"`
	Description string `json:"description"`
}

// VolunteerItem is volunteer work for an organization.
type VolunteerItem struct {
	BaseItem
	Organization string `json:"organization" validate:"required"`
	Location     string `json:"location"`
	Period       string `json:"period"`
	Website      URL    `json:"website"`
	Description  string `json:"description"`
}

// ReferenceItem is a person vouching for the author, or a note such as
// "Available upon request".
type ReferenceItem struct {
	BaseItem
	Name        string `json:"name" validate:"required"`
	Position    string `json:"position"`
	Website     URL    `json:"website"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// CoverLetterItem is a cover letter with a recipient block and body.
type CoverLetterItem struct {
	BaseItem
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

func (*SummaryItem) Type() CustomSectionType       { return TypeSummary }
func (*ProfileItem) Type() CustomSectionType       { return TypeProfiles }
func (*ExperienceItem) Type() CustomSectionType    { return TypeExperience }
func (*EducationItem) Type() CustomSectionType     { return TypeEducation }
func (*ProjectItem) Type() CustomSectionType       { return TypeProjects }
func (*SkillItem) Type() CustomSectionType         { return TypeSkills }
func (*LanguageItem) Type() CustomSectionType      { return TypeLanguages }
func (*InterestItem) Type() CustomSectionType      { return TypeInterests }
func (*AwardItem) Type() CustomSectionType         { return TypeAwards }
func (*CertificationItem) Type() CustomSectionType { return TypeCertifications }
func (*PublicationItem) Type() CustomSectionType   { return TypePublications }
func (*VolunteerItem) Type() CustomSectionType     { return TypeVolunteer }
func (*ReferenceItem) Type() CustomSectionType     { return TypeReferences }
func (*CoverLetterItem) Type() CustomSectionType   { return TypeCoverLetter }
