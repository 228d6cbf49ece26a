package types

import "github.com/google/uuid"

// GenerateID returns a new time-ordered identifier (UUIDv7).
func GenerateID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func emptySection() Section {
	return Section{Title: "", Columns: 1, Hidden: false, Items: []Item{}}
}

// NewCustomSection returns a visible single-column custom section holding items.
func NewCustomSection(id string, t CustomSectionType, title string, items ...Item) *CustomSection {
	if items == nil {
		items = []Item{}
	}
	return &CustomSection{
		ID:      id,
		Type:    t,
		Title:   title,
		Columns: 1,
		Hidden:  false,
		Items:   items,
	}
}

// DefaultResumeData returns the empty resume used to seed new resumes.
// Every call returns fresh data that shares nothing with earlier calls.
func DefaultResumeData() *ResumeData {
	return &ResumeData{
		Picture: Picture{
			Hidden:       false,
			URL:          "",
			Size:         80,
			Rotation:     0,
			AspectRatio:  1,
			BorderRadius: 0,
			BorderColor:  "rgba(0, 0, 0, 0.5)",
			BorderWidth:  0,
			ShadowColor:  "rgba(0, 0, 0, 0.5)",
			ShadowWidth:  0,
		},
		Basics: Basics{
			Website:      URL{},
			CustomFields: []CustomField{},
		},
		Summary: Summary{Columns: 1},
		Sections: Sections{
			Profiles:       emptySection(),
			Experience:     emptySection(),
			Education:      emptySection(),
			Projects:       emptySection(),
			Skills:         emptySection(),
			Languages:      emptySection(),
			Interests:      emptySection(),
			Awards:         emptySection(),
			Certifications: emptySection(),
			Publications:   emptySection(),
			Volunteer:      emptySection(),
			References:     emptySection(),
		},
		CustomSections: []*CustomSection{},
		Metadata: Metadata{
			Template: DefaultTemplate,
			Layout: Layout{
				SidebarWidth: 35,
				Pages: []Page{
					{
						FullWidth: false,
						Main:      []string{"profiles", "summary", "education", "experience", "projects", "volunteer", "references"},
						Sidebar:   []string{"skills", "certifications", "awards", "languages", "interests", "publications"},
					},
				},
			},
			CSS: CSS{Enabled: false, Value: ""},
			Page: PageSettings{
				GapX:      4,
				GapY:      6,
				MarginX:   14,
				MarginY:   12,
				Format:    PageFormatA4,
				Locale:    DefaultLocale,
				HideIcons: false,
			},
			Design: Design{
				Colors: Colors{
					Primary:    "rgba(220, 38, 38, 1)",
					Text:       "rgba(0, 0, 0, 1)",
					Background: "rgba(255, 255, 255, 1)",
				},
				Level: LevelDesign{Icon: "star", Type: DefaultLevelType},
			},
			Typography: Typography{
				Body: Font{
					FontFamily:  "IBM Plex Serif",
					FontWeights: []FontWeight{"400", "500"},
					FontSize:    10,
					LineHeight:  1.5,
				},
				Heading: Font{
					FontFamily:  "IBM Plex Serif",
					FontWeights: []FontWeight{"600"},
					FontSize:    14,
					LineHeight:  1.5,
				},
			},
			Notes: "",
		},
	}
}
