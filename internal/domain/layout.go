package domain

// Layout is the renderer-agnostic output of the template: a page header,
// two columns of blocks, and the resolved font metrics. Pagination is the
// renderer's job; the layout only marks which blocks must not be split
// across a page boundary.

type BlockKind string

const (
	BlockDetails    BlockKind = "details"
	BlockSkills     BlockKind = "skills"
	BlockLanguages  BlockKind = "languages"
	BlockRichText   BlockKind = "richtext"
	BlockDatedItems BlockKind = "datedItems"
)

// FontSpec is the resolved typeface and scale table for the whole layout.
type FontSpec struct {
	Normal     string
	Bold       string
	Italic     string
	BoldItalic string

	Small int
	Base  int
	Large int
	Title int
}

// Header renders once at the top of the first page.
type Header struct {
	Name     string
	JobTitle string
}

// Layout is the full render tree for one document.
type Layout struct {
	Header  Header
	Sidebar []Block
	Main    []Block
	Font    FontSpec
}

// Block is one titled panel in either column. Exactly one of the payload
// slices is populated, selected by Kind.
type Block struct {
	Kind  BlockKind
	Title string

	Details   []DetailGroup
	Skills    []SkillGauge
	Languages []LanguageLine
	RichText  []RichNode
	Items     []DatedItem
}

// DetailGroup is one labelled group inside the sidebar Details block
// ("Personal", "Address", "Contact").
type DetailGroup struct {
	Label string
	Lines []string
}

// SkillGauge is a 5-unit discrete gauge. Filled+Empty always sums to 5.
type SkillGauge struct {
	Name   string
	Filled int
	Empty  int
}

type LanguageLine struct {
	Name  string
	Level string
}

// DatedItem is a single education or employment entry. Atomic entries must
// render on a single page.
type DatedItem struct {
	Heading     string
	DateRange   string
	Description []RichNode
	Atomic      bool
}

// RichNode is restricted formatted text: paragraphs, bold, italic and
// ordered/unordered lists. Anything else in the source markup is dropped.
type RichNodeKind string

const (
	RichParagraph   RichNodeKind = "p"
	RichText        RichNodeKind = "text"
	RichBold        RichNodeKind = "b"
	RichItalic      RichNodeKind = "i"
	RichOrderedList RichNodeKind = "ol"
	RichBulletList  RichNodeKind = "ul"
	RichListItem    RichNodeKind = "li"
)

type RichNode struct {
	Kind     RichNodeKind
	Text     string
	Children []RichNode
}

// Artifact is a paginated rendered document produced by a Renderer.
type Artifact struct {
	PDF   []byte
	Pages int
}
