package types

// Stable ids of the custom sections in the sample resume.
const (
	SampleExperienceSectionID  = "019becaf-0b87-769d-98a6-46ccf558c0e8"
	SampleCoverLetterSectionID = "019bef5b-0b3d-7e2a-8a7c-12d9e23a4f6b"
)

func link(url, label string) URL { return URL{URL: url, Label: label} }

func section(items ...Item) Section {
	s := emptySection()
	s.Items = append(s.Items, items...)
	return s
}

// SampleResumeData returns a fully populated four-page resume used when a
// user asks for sample content. Every call returns fresh data.
func SampleResumeData() *ResumeData {
	d := DefaultResumeData()

	d.Picture.URL = "https://i.imgur.com/o4Jpt1p.jpeg"
	d.Picture.Size = 100

	d.Basics = Basics{
		Name:     "David Kowalski",
		Headline: "Game Developer | Unity & Unreal Engine Specialist",
		Email:    "david.kowalski@email.com",
		Phone:    "+1 (555) 291-4756",
		Location: "Seattle, WA",
		Website:  link("https://davidkowalski.games", "davidkowalski.games"),
		CustomFields: []CustomField{
			{ID: "019bef5a-0477-77e0-968b-5d0e2ecb34e3", Icon: "github-logo", Text: "github.com/dkowalski-dev", Link: "https://github.com/dkowalski-dev"},
			{ID: "019bef5a-93e4-7746-ad39-3a132360f823", Icon: "game-controller", Text: "itch.io/dkowalski", Link: "https://itch.io/dkowalski"},
		},
	}

	d.Summary = Summary{
		Columns: 1,
		Content: "<p>Game developer with 5+ years of professional experience building gameplay systems and polished player experiences in Unity and Unreal Engine.</p>",
	}

	d.Sections = Sections{
		Profiles: section(
			&ProfileItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-3d42ddc9b4d8"}, Icon: "github-logo", Network: "GitHub", Username: "dkowalski-dev", Website: link("https://github.com/dkowalski-dev", "github.com/dkowalski-dev")},
			&ProfileItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-43c470b77f4a"}, Icon: "linkedin-logo", Network: "LinkedIn", Username: "davidkowalski", Website: link("https://linkedin.com/in/davidkowalski", "linkedin.com/in/davidkowalski")},
		),
		Experience: section(
			&ExperienceItem{
				BaseItem:    BaseItem{ID: "019bef5a-93e4-7746-ad39-44d8cec98ca4"},
				Company:     "Cascade Studios",
				Position:    "Senior Game Developer",
				Location:    "Seattle, WA",
				Period:      "March 2022 - Present",
				Description: "<ul><li><p>Lead gameplay programmer on an unannounced action-adventure title in Unreal Engine 5</p></li><li><p>Built custom C++ editor tools that cut level iteration time by 40%</p></li></ul>",
			},
		),
		Education: section(
			&EducationItem{
				BaseItem:    BaseItem{ID: "019bef5a-93e4-7746-ad39-48455f6cef9e"},
				School:      "University of Washington",
				Degree:      "Bachelor of Science",
				Area:        "Computer Science",
				Grade:       "3.6 GPA",
				Location:    "Seattle, WA",
				Period:      "2014 - 2018",
				Description: "<p>Concentration in Game Development.</p>",
			},
		),
		Projects: section(
			&ProjectItem{
				BaseItem:    BaseItem{ID: "019bef5a-93e4-7746-ad39-4d2603fe2801", Options: &ItemOptions{ShowLinkInTitle: true}},
				Name:        "Echoes of the Void (Indie Game)",
				Period:      "2023 - Present",
				Website:     link("https://itch.io/echoes-of-the-void", "View on itch.io"),
				Description: "<p>Narrative-driven 2D platformer built in Unity with a custom dialogue system.</p>",
			},
			&ProjectItem{
				BaseItem:    BaseItem{ID: "019bef5a-93e4-7746-ad39-524195dd7eff"},
				Name:        "Open Source: Unity Dialogue Framework",
				Period:      "2021 - 2023",
				Website:     link("https://github.com/dkowalski-dev/unity-dialogue", "View on GitHub"),
				Description: "<p>Node-based dialogue system for Unity with localization support.</p>",
			},
		),
		Skills: section(
			&SkillItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-5a52dcf50ed4"}, Icon: "code", Name: "Unity Engine", Proficiency: "Expert", Level: 5, Keywords: []string{"C#", "Editor Tools", "Performance Profiling"}},
			&SkillItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-5e8bb7cacbc8"}, Icon: "brackets-curly", Name: "Unreal Engine", Proficiency: "Advanced", Level: 4, Keywords: []string{"C++", "Blueprints", "UE5 Features"}},
			&SkillItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-6d8bf7be7514", Hidden: true}, Icon: "chart-line-up", Name: "Performance Optimization", Proficiency: "Advanced", Level: 4, Keywords: []string{"Profiling", "Memory Management"}},
		),
		Languages: section(
			&LanguageItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-73807ccc48b5"}, Language: "English", Fluency: "Native", Level: 5},
			&LanguageItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-768670459358"}, Language: "Polish", Fluency: "Conversational", Level: 3},
		),
		Interests: section(
			&InterestItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-7821b4de95f7"}, Icon: "game-controller", Name: "Game Design", Keywords: []string{"Mechanics", "Level Design"}},
			&InterestItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-84bb7e9af005"}, Icon: "pen-nib", Name: "Technical Art", Keywords: []string{"Shaders", "VFX"}},
		),
		Awards: section(
			&AwardItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-8a8bb9fbe182"}, Title: "Best Gameplay - Ludum Dare 48", Awarder: "Ludum Dare", Date: "April 2021", Description: "<p>Top 5% overall among 3,000+ submissions.</p>"},
		),
		Certifications: section(
			&CertificationItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-91fe8a4dfea6"}, Title: "Unity Certified Expert: Programmer", Issuer: "Unity Technologies", Date: "March 2022"},
			&CertificationItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-961afccc2508"}, Title: "Unreal Engine 5 C++ Developer", Issuer: "Epic Games (Udemy)", Date: "June 2023"},
		),
		Publications: section(
			&PublicationItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-9816f0081895"}, Title: "Optimizing Unity Games for Mobile: A Practical Guide", Publisher: "Game Developer Magazine", Date: "September 2021"},
		),
		Volunteer: section(
			&VolunteerItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-a02580473e05"}, Organization: "Seattle Indies", Location: "Seattle, WA", Period: "2020 - Present", Description: "<p>Organize monthly game showcases and mentor new developers.</p>"},
		),
		References: section(
			&ReferenceItem{BaseItem: BaseItem{ID: "019bef5a-93e4-7746-ad39-a945c0f42dd5"}, Name: "Available upon request"},
		),
	}

	d.CustomSections = []*CustomSection{
		NewCustomSection(SampleExperienceSectionID, TypeExperience, "Experience",
			&ExperienceItem{
				BaseItem:    BaseItem{ID: "019bef5a-d1fa-7289-a87c-2677688d9e75"},
				Company:     "Pixel Forge Interactive",
				Position:    "Game Developer",
				Location:    "Bellevue, WA",
				Period:      "June 2020 - February 2022",
				Description: "<ul><li>Core developer on 'Starbound Odyssey', a sci-fi roguelike with 500K+ sales on Steam</li></ul>",
			},
			&ExperienceItem{
				BaseItem:    BaseItem{ID: "019bef5a-db0e-73c6-9b6e-4471703864f1"},
				Company:     "Mobile Games Studio",
				Position:    "Junior Game Developer",
				Location:    "Remote",
				Period:      "September 2018 - May 2020",
				Description: "<ul><li><p>Shipped three mobile puzzle games downloaded 2M+ times</p></li></ul>",
			},
		),
		NewCustomSection(SampleCoverLetterSectionID, TypeCoverLetter, "Cover Letter",
			&CoverLetterItem{
				BaseItem:  BaseItem{ID: "019bef5b-0f8d-77d1-9b2a-4a1b65e1b8aa"},
				Recipient: "<p>Hiring Manager<br />Sunrise Games Studio<br />Seattle, WA</p>",
				Content:   "<p>Dear Hiring Manager,</p><p>I'm excited to apply for the Senior Gameplay Engineer role at Sunrise Games Studio.</p><p>Sincerely,<br />David Kowalski</p>",
			},
		),
	}

	d.Metadata.Template = "azurill"
	d.Metadata.Layout = Layout{
		SidebarWidth: 30,
		Pages: []Page{
			{Main: []string{"summary", "education", "experience"}, Sidebar: []string{"profiles", "skills"}},
			{Main: []string{SampleExperienceSectionID, "awards"}, Sidebar: []string{"languages", "certifications", "interests", "references"}},
			{FullWidth: true, Main: []string{"projects", "publications", "volunteer"}, Sidebar: []string{}},
			{FullWidth: true, Main: []string{SampleCoverLetterSectionID}, Sidebar: []string{}},
		},
	}
	d.Metadata.Page.GapY = 8
	d.Metadata.Page.MarginX = 16
	d.Metadata.Page.MarginY = 14
	d.Metadata.Design.Level.Icon = "acorn"
	d.Metadata.Design.Colors.Primary = "rgba(0, 132, 209, 1)"
	d.Metadata.Typography.Body.FontWeights = []FontWeight{"400", "600"}
	d.Metadata.Typography.Body.FontSize = 11
	d.Metadata.Typography.Heading.FontFamily = "Fira Sans Condensed"
	d.Metadata.Typography.Heading.FontWeights = []FontWeight{"500"}
	d.Metadata.Typography.Heading.FontSize = 18

	return d
}
