package types

// ResumeData is the whole resume document. It is read and written as one
// JSON blob.
type ResumeData struct {
	Picture        Picture          `json:"picture"`
	Basics         Basics           `json:"basics"`
	Summary        Summary          `json:"summary"`
	Sections       Sections         `json:"sections"`
	CustomSections []*CustomSection `json:"customSections" validate:"-"`
	Metadata       Metadata         `json:"metadata"`
}

// Picture configures the photograph shown on the resume.
type Picture struct {
	Hidden       bool    `json:"hidden"`
	URL          string  `json:"url"`
	Size         float64 `json:"size" validate:"min=32,max=512"`
	Rotation     float64 `json:"rotation" validate:"min=0,max=360"`
	AspectRatio  float64 `json:"aspectRatio" validate:"min=0.5,max=2.5"`
	BorderRadius float64 `json:"borderRadius" validate:"min=0,max=100"`
	BorderColor  string  `json:"borderColor"`
	BorderWidth  float64 `json:"borderWidth" validate:"min=0"`
	ShadowColor  string  `json:"shadowColor"`
	ShadowWidth  float64 `json:"shadowWidth" validate:"min=0"`
}

// CustomField is an extra contact line in the header.
type CustomField struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Text string `json:"text"`
	Link string `json:"link"`
}

// Basics holds the author's identity and contact details.
type Basics struct {
	Name         string        `json:"name"`
	Headline     string        `json:"headline"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Location     string        `json:"location"`
	Website      URL           `json:"website"`
	CustomFields []CustomField `json:"customFields"`
}

// Summary is the short introduction block.
type Summary struct {
	Title   string `json:"title"`
	Columns int    `json:"columns"`
	Hidden  bool   `json:"hidden"`
	Content string `json:"content"`
}

// Section is a standard section. Its items all share the variant of the
// section key.
type Section struct {
	Title   string `json:"title"`
	Columns int    `json:"columns"`
	Hidden  bool   `json:"hidden"`
	Items   []Item `json:"items" validate:"-"`
}

// Sections is the fixed set of twelve standard sections.
type Sections struct {
	Profiles       Section `json:"profiles"`
	Experience     Section `json:"experience"`
	Education      Section `json:"education"`
	Projects       Section `json:"projects"`
	Skills         Section `json:"skills"`
	Languages      Section `json:"languages"`
	Interests      Section `json:"interests"`
	Awards         Section `json:"awards"`
	Certifications Section `json:"certifications"`
	Publications   Section `json:"publications"`
	Volunteer      Section `json:"volunteer"`
	References     Section `json:"references"`
}

// Get returns the section stored under t, or nil for an unknown key.
func (s *Sections) Get(t SectionType) *Section {
	switch t {
	case SectionProfiles:
		return &s.Profiles
	case SectionExperience:
		return &s.Experience
	case SectionEducation:
		return &s.Education
	case SectionProjects:
		return &s.Projects
	case SectionSkills:
		return &s.Skills
	case SectionLanguages:
		return &s.Languages
	case SectionInterests:
		return &s.Interests
	case SectionAwards:
		return &s.Awards
	case SectionCertifications:
		return &s.Certifications
	case SectionPublications:
		return &s.Publications
	case SectionVolunteer:
		return &s.Volunteer
	case SectionReferences:
		return &s.References
	default:
		return nil
	}
}

// CustomSection is a user-created section. Type is fixed at creation and
// selects the variant of every item in Items.
type CustomSection struct {
	Title   string            `json:"title"`
	Columns int               `json:"columns"`
	Hidden  bool              `json:"hidden"`
	ID      string            `json:"id"`
	Type    CustomSectionType `json:"type"`
	Items   []Item            `json:"items" validate:"-"`
}

// CustomSection returns the custom section with the given id, or nil.
func (d *ResumeData) CustomSection(id string) *CustomSection {
	for _, cs := range d.CustomSections {
		if cs.ID == id {
			return cs
		}
	}
	return nil
}

// ResolvedSection is the section a layout reference points at.
type ResolvedSection struct {
	Ref   SectionRef
	Type  CustomSectionType
	Title string
	// Items is nil for the summary block.
	Items *[]Item
}

// Resolve looks up the section a layout reference points at.
func (d *ResumeData) Resolve(ref SectionRef) (ResolvedSection, bool) {
	switch ref.Kind() {
	case RefStandard:
		t, _ := ref.Standard()
		sec := d.Sections.Get(t)
		return ResolvedSection{Ref: ref, Type: t.ItemType(), Title: DefaultSectionTitle(t.ItemType()), Items: &sec.Items}, true
	case RefSummary:
		return ResolvedSection{Ref: ref, Type: TypeSummary, Title: DefaultSectionTitle(TypeSummary)}, true
	default:
		id, _ := ref.CustomID()
		cs := d.CustomSection(id)
		if cs == nil {
			return ResolvedSection{}, false
		}
		return ResolvedSection{Ref: ref, Type: cs.Type, Title: cs.Title, Items: &cs.Items}, true
	}
}

// ItemCount returns the number of items across all standard and custom sections.
func (d *ResumeData) ItemCount() int {
	n := 0
	for _, t := range StandardSections {
		n += len(d.Sections.Get(t).Items)
	}
	for _, cs := range d.CustomSections {
		n += len(cs.Items)
	}
	return n
}
