package model

// Go models for the resume document persisted as {sections, settings} JSON.

import (
	"encoding/json"
	"fmt"
	"time"
)

type SectionType string

const (
	TypePersonalDetails   SectionType = "personalDetails"
	TypeSkills            SectionType = "skills"
	TypeEducations        SectionType = "educations"
	TypeEmploymentHistory SectionType = "employmentHistory"
	TypeLanguages         SectionType = "languages"
)

// DefaultTitle returns the canonical display label for a section type.
func (t SectionType) DefaultTitle() string {
	switch t {
	case TypePersonalDetails:
		return "Personal Details"
	case TypeSkills:
		return "Skills"
	case TypeEducations:
		return "Education"
	case TypeEmploymentHistory:
		return "Employment History"
	case TypeLanguages:
		return "Languages"
	}
	return ""
}

// Unique reports whether at most one section of this type may exist in a
// document. personalDetails feeds the page header, skills and languages are
// single-instance sidebar blocks.
func (t SectionType) Unique() bool {
	switch t {
	case TypePersonalDetails, TypeSkills, TypeLanguages:
		return true
	}
	return false
}

// Date is the canonical date representation. Dates parse from RFC 3339 or
// plain "2006-01-02" strings and always serialize as RFC 3339 in UTC so an
// export/import cycle is byte-stable.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05"}

// ParseDate coerces a date-like string into a canonical Date.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date: %s", data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type SkillLevel string

const (
	SkillNovice       SkillLevel = "novice"
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Rank maps a skill level to its position on the 5-unit gauge. Unknown
// levels rank 0 (fully empty gauge).
func (l SkillLevel) Rank() int {
	switch l {
	case SkillNovice:
		return 1
	case SkillBeginner:
		return 2
	case SkillIntermediate:
		return 3
	case SkillAdvanced:
		return 4
	case SkillExpert:
		return 5
	}
	return 0
}

func (l SkillLevel) Valid() bool { return l.Rank() > 0 }

type LanguageLevel string

const (
	LanguageNative       LanguageLevel = "native"
	LanguageFluent       LanguageLevel = "fluent"
	LanguageIntermediate LanguageLevel = "intermediate"
	LanguageBasic        LanguageLevel = "basic"
)

func (l LanguageLevel) Valid() bool {
	switch l {
	case LanguageNative, LanguageFluent, LanguageIntermediate, LanguageBasic:
		return true
	}
	return false
}

type FontFamily string

const (
	FontCourier    FontFamily = "courier"
	FontHelvetica  FontFamily = "helvetica"
	FontTimesRoman FontFamily = "times-roman"

	DefaultFontFamily = FontCourier
	DefaultFontSize   = FontSize(10)
)

type FontSize int

// Settings holds template style settings. Unknown values never fail
// validation; they normalize to courier/10.
type Settings struct {
	FontFamily FontFamily `json:"fontFamily"`
	FontSize   FontSize   `json:"fontSize"`
}

func (s *Settings) normalize() {
	switch s.FontFamily {
	case FontCourier, FontHelvetica, FontTimesRoman:
	default:
		s.FontFamily = DefaultFontFamily
	}
	switch s.FontSize {
	case 10, 12, 14:
	default:
		s.FontSize = DefaultFontSize
	}
}

// Section is one typed block of resume content. The concrete type carries
// the payload; the Type json field is the discriminant and is immutable
// once the section exists.
type Section interface {
	Kind() SectionType
	SectionTitle() string
	Normalize()
	Clone() Section
}

type PersonalDetails struct {
	Type           SectionType `json:"type"`
	Title          string      `json:"title"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Country        string      `json:"country"`
	City           string      `json:"city"`
	Address        string      `json:"address"`
	PostalCode     string      `json:"postalCode"`
	DrivingLicense string      `json:"drivingLicense"`
	Nationality    string      `json:"nationality"`
	PlaceOfBirth   string      `json:"placeOfBirth"`
	DateOfBirth    *Date       `json:"dateOfBirth"`
	Summary        string      `json:"summary"`
	WantedJobTitle string      `json:"wantedJobTitle"`
}

func (s *PersonalDetails) Kind() SectionType    { return TypePersonalDetails }
func (s *PersonalDetails) SectionTitle() string { return s.Title }

func (s *PersonalDetails) Normalize() {
	s.Type = TypePersonalDetails
	if s.Title == "" {
		s.Title = TypePersonalDetails.DefaultTitle()
	}
}

func (s *PersonalDetails) Clone() Section {
	out := *s
	if s.DateOfBirth != nil {
		d := *s.DateOfBirth
		out.DateOfBirth = &d
	}
	return &out
}

type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

type Skills struct {
	Type   SectionType `json:"type"`
	Title  string      `json:"title"`
	Skills []Skill     `json:"skills"`
}

func (s *Skills) Kind() SectionType    { return TypeSkills }
func (s *Skills) SectionTitle() string { return s.Title }

func (s *Skills) Normalize() {
	s.Type = TypeSkills
	if s.Title == "" {
		s.Title = TypeSkills.DefaultTitle()
	}
	if s.Skills == nil {
		s.Skills = []Skill{}
	}
}

func (s *Skills) Clone() Section {
	out := *s
	out.Skills = append([]Skill(nil), s.Skills...)
	return &out
}

// Education is a single dated entry. Both dates are optional; when both are
// present the end must be strictly after the start.
type Education struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	StartDate   *Date  `json:"startDate"`
	EndDate     *Date  `json:"endDate"`
	Description string `json:"description"`
}

type Educations struct {
	Type       SectionType `json:"type"`
	Title      string      `json:"title"`
	Educations []Education `json:"educations"`
}

func (s *Educations) Kind() SectionType    { return TypeEducations }
func (s *Educations) SectionTitle() string { return s.Title }

func (s *Educations) Normalize() {
	s.Type = TypeEducations
	if s.Title == "" {
		s.Title = TypeEducations.DefaultTitle()
	}
	if s.Educations == nil {
		s.Educations = []Education{}
	}
}

func (s *Educations) Clone() Section {
	out := *s
	out.Educations = make([]Education, len(s.Educations))
	for i, e := range s.Educations {
		out.Educations[i] = e.cloned()
	}
	return &out
}

func (e Education) cloned() Education {
	if e.StartDate != nil {
		d := *e.StartDate
		e.StartDate = &d
	}
	if e.EndDate != nil {
		d := *e.EndDate
		e.EndDate = &d
	}
	return e
}

type Employment struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   *Date  `json:"startDate"`
	EndDate     *Date  `json:"endDate"`
	Description string `json:"description"`
}

type EmploymentHistory struct {
	Type        SectionType  `json:"type"`
	Title       string       `json:"title"`
	Employments []Employment `json:"employments"`
}

func (s *EmploymentHistory) Kind() SectionType    { return TypeEmploymentHistory }
func (s *EmploymentHistory) SectionTitle() string { return s.Title }

func (s *EmploymentHistory) Normalize() {
	s.Type = TypeEmploymentHistory
	if s.Title == "" {
		s.Title = TypeEmploymentHistory.DefaultTitle()
	}
	if s.Employments == nil {
		s.Employments = []Employment{}
	}
}

func (s *EmploymentHistory) Clone() Section {
	out := *s
	out.Employments = make([]Employment, len(s.Employments))
	for i, e := range s.Employments {
		out.Employments[i] = e.cloned()
	}
	return &out
}

func (e Employment) cloned() Employment {
	if e.StartDate != nil {
		d := *e.StartDate
		e.StartDate = &d
	}
	if e.EndDate != nil {
		d := *e.EndDate
		e.EndDate = &d
	}
	return e
}

type Language struct {
	Name  string        `json:"name"`
	Level LanguageLevel `json:"level"`
}

type Languages struct {
	Type      SectionType `json:"type"`
	Title     string      `json:"title"`
	Languages []Language  `json:"languages"`
}

func (s *Languages) Kind() SectionType    { return TypeLanguages }
func (s *Languages) SectionTitle() string { return s.Title }

func (s *Languages) Normalize() {
	s.Type = TypeLanguages
	if s.Title == "" {
		s.Title = TypeLanguages.DefaultTitle()
	}
	if s.Languages == nil {
		s.Languages = []Language{}
	}
}

func (s *Languages) Clone() Section {
	out := *s
	out.Languages = append([]Language(nil), s.Languages...)
	return &out
}

// NewSection returns an empty section seed of the given type.
func NewSection(t SectionType) (Section, error) {
	var s Section
	switch t {
	case TypePersonalDetails:
		s = &PersonalDetails{}
	case TypeSkills:
		s = &Skills{}
	case TypeEducations:
		s = &Educations{}
	case TypeEmploymentHistory:
		s = &EmploymentHistory{}
	case TypeLanguages:
		s = &Languages{}
	default:
		return nil, fmt.Errorf("unknown section type %q", t)
	}
	s.Normalize()
	return s, nil
}

// SectionList decodes the polymorphic sections array by dispatching on the
// "type" discriminant of each element.
type SectionList []Section

func (l *SectionList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(SectionList, 0, len(raws))
	for i, raw := range raws {
		var envelope struct {
			Type SectionType `json:"type"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
		section, err := NewSection(envelope.Type)
		if err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
		if err := json.Unmarshal(raw, section); err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
		out = append(out, section)
	}
	*l = out
	return nil
}

// Document is the full resume: ordered sections plus style settings.
type Document struct {
	Sections SectionList `json:"sections"`
	Settings Settings    `json:"settings"`
}

// ApplyDefaults fills per-type titles, discriminant tags, empty entry lists
// and settings fallbacks. It is idempotent: applying it to already-defaulted
// data changes nothing.
func (d *Document) ApplyDefaults() {
	for _, s := range d.Sections {
		s.Normalize()
	}
	d.Settings.normalize()
}

// Clone returns a deep copy safe to hand across goroutine boundaries.
func (d *Document) Clone() *Document {
	out := &Document{
		Sections: make(SectionList, len(d.Sections)),
		Settings: d.Settings,
	}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// FirstPersonalDetails returns the first personalDetails section, which
// feeds the page header, or nil when the document has none.
func (d *Document) FirstPersonalDetails() *PersonalDetails {
	for _, s := range d.Sections {
		if pd, ok := s.(*PersonalDetails); ok {
			return pd
		}
	}
	return nil
}

// CountByType returns how many sections of the given type the document holds.
func (d *Document) CountByType(t SectionType) int {
	n := 0
	for _, s := range d.Sections {
		if s.Kind() == t {
			n++
		}
	}
	return n
}

// DefaultDocument is the built-in starting document: personal details plus
// empty skills, education and employment sections, courier at 10pt.
func DefaultDocument() *Document {
	doc := &Document{
		Sections: SectionList{
			&PersonalDetails{},
			&Skills{},
			&Educations{},
			&EmploymentHistory{},
		},
		Settings: Settings{FontFamily: DefaultFontFamily, FontSize: DefaultFontSize},
	}
	doc.ApplyDefaults()
	return doc
}
