package types

// Template names a page layout design.
type Template string

// DefaultTemplate is used when the stored template is unknown.
const DefaultTemplate Template = "onyx"

// Templates lists every known template.
var Templates = []Template{
	"azurill", "bronzor", "chikorita", "ditgar", "ditto", "gengar", "glalie",
	"kakuna", "lapras", "leafish", "onyx", "pikachu", "rhyhorn",
}

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// Metadata holds everything about a resume that is not content.
type Metadata struct {
	Template   Template     `json:"template"`
	Layout     Layout       `json:"layout"`
	CSS        CSS          `json:"css"`
	Page       PageSettings `json:"page"`
	Design     Design       `json:"design"`
	Typography Typography   `json:"typography"`
	Notes      string       `json:"notes"`
}

// Layout is the multi-page arrangement of sections.
type Layout struct {
	// SidebarWidth is a percentage of the page width.
	SidebarWidth float64 `json:"sidebarWidth" validate:"min=10,max=50"`
	Pages        []Page  `json:"pages" validate:"dive"`
}

// Page holds two ordered columns of section references. Each reference is a
// standard section key, "summary", or a custom section id.
type Page struct {
	FullWidth bool     `json:"fullWidth"`
	Main      []string `json:"main"`
	Sidebar   []string `json:"sidebar"`
}

// Column selects one of the two slot lists of a page.
type Column string

const (
	ColumnMain    Column = "main"
	ColumnSidebar Column = "sidebar"
)

// Slot returns the reference list for the column, or nil for an unknown column.
func (p *Page) Slot(c Column) *[]string {
	switch c {
	case ColumnMain:
		return &p.Main
	case ColumnSidebar:
		return &p.Sidebar
	default:
		return nil
	}
}

// Refs returns main then sidebar references.
func (p *Page) Refs() []string {
	refs := make([]string, 0, len(p.Main)+len(p.Sidebar))
	refs = append(refs, p.Main...)
	return append(refs, p.Sidebar...)
}

// CSS is user-supplied style overrides.
type CSS struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
}

// PageFormat is the paper size.
type PageFormat string

const (
	PageFormatA4       PageFormat = "a4"
	PageFormatLetter   PageFormat = "letter"
	PageFormatFreeForm PageFormat = "free-form"
)

// Valid reports whether f is a known page format.
func (f PageFormat) Valid() bool {
	return f == PageFormatA4 || f == PageFormatLetter || f == PageFormatFreeForm
}

// DefaultLocale is used when the stored locale is not a string.
const DefaultLocale = "en-US"

// PageSettings holds page spacing, format and locale. Gaps and margins are in points.
type PageSettings struct {
	GapX      float64    `json:"gapX" validate:"min=0"`
	GapY      float64    `json:"gapY" validate:"min=0"`
	MarginX   float64    `json:"marginX" validate:"min=0"`
	MarginY   float64    `json:"marginY" validate:"min=0"`
	Format    PageFormat `json:"format"`
	Locale    string     `json:"locale"`
	HideIcons bool       `json:"hideIcons"`
}

// LevelType is how skill and language levels are drawn.
type LevelType string

// DefaultLevelType is used when the stored level type is unknown.
const DefaultLevelType LevelType = "circle"

// LevelTypes lists every known level type.
var LevelTypes = []LevelType{"hidden", "circle", "square", "rectangle", "rectangle-full", "progress-bar", "icon"}

// Valid reports whether l is a known level type.
func (l LevelType) Valid() bool {
	for _, known := range LevelTypes {
		if l == known {
			return true
		}
	}
	return false
}

// LevelDesign configures level indicators.
type LevelDesign struct {
	Icon string    `json:"icon"`
	Type LevelType `json:"type"`
}

// Colors are rgba() strings.
type Colors struct {
	Primary    string `json:"primary"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

// Design holds level and color settings.
type Design struct {
	Level  LevelDesign `json:"level"`
	Colors Colors      `json:"colors"`
}

// FontWeight is a CSS font weight from "100" to "900".
type FontWeight string

// FontWeights lists the allowed font weights.
var FontWeights = []FontWeight{"100", "200", "300", "400", "500", "600", "700", "800", "900"}

// Valid reports whether w is an allowed weight.
func (w FontWeight) Valid() bool {
	for _, known := range FontWeights {
		if w == known {
			return true
		}
	}
	return false
}

// Font settings for one text role.
type Font struct {
	FontFamily  string       `json:"fontFamily"`
	FontWeights []FontWeight `json:"fontWeights"`
	FontSize    float64      `json:"fontSize" validate:"min=6,max=24"`
	LineHeight  float64      `json:"lineHeight" validate:"min=0.5,max=4"`
}

// Typography holds body and heading fonts.
type Typography struct {
	Body    Font `json:"body"`
	Heading Font `json:"heading"`
}
