package template

import (
	"reflect"
	"testing"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

func date(t *testing.T, s string) *model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return &d
}

func TestBuildDefaultDocument(t *testing.T) {
	lay := Build(model.DefaultDocument())

	if lay.Header.Name != "" {
		t.Errorf("header name = %q, want empty", lay.Header.Name)
	}
	// Empty skills, educations and employment blocks are suppressed; only
	// the details block remains.
	if len(lay.Sidebar) != 1 {
		t.Fatalf("sidebar blocks = %d, want 1", len(lay.Sidebar))
	}
	if lay.Sidebar[0].Kind != domain.BlockDetails {
		t.Errorf("sidebar[0].Kind = %q, want details", lay.Sidebar[0].Kind)
	}
	if len(lay.Main) != 0 {
		t.Errorf("main blocks = %d, want 0", len(lay.Main))
	}
	if lay.Font.Base != 10 {
		t.Errorf("base font = %v, want 10", lay.Font.Base)
	}
}

func TestBuildHeaderAndGauge(t *testing.T) {
	doc := model.DefaultDocument()
	pd := doc.Sections[0].(*model.PersonalDetails)
	pd.FirstName = "Ada"
	pd.LastName = "Lovelace"
	pd.WantedJobTitle = "Analyst"
	doc.Sections[1].(*model.Skills).Skills = []model.Skill{
		{Name: "Rust", Level: model.SkillExpert},
		{Name: "COBOL", Level: model.SkillNovice},
	}

	lay := Build(doc)

	if lay.Header.Name != "Ada Lovelace" {
		t.Errorf("header name = %q, want %q", lay.Header.Name, "Ada Lovelace")
	}
	if lay.Header.JobTitle != "Analyst" {
		t.Errorf("job title = %q", lay.Header.JobTitle)
	}

	var skills *domain.Block
	for i := range lay.Sidebar {
		if lay.Sidebar[i].Kind == domain.BlockSkills {
			skills = &lay.Sidebar[i]
		}
	}
	if skills == nil {
		t.Fatal("no skills block in sidebar")
	}
	want := []domain.SkillGauge{
		{Name: "Rust", Filled: 5, Empty: 0},
		{Name: "COBOL", Filled: 1, Empty: 4},
	}
	if !reflect.DeepEqual(skills.Skills, want) {
		t.Errorf("gauges = %+v, want %+v", skills.Skills, want)
	}
}

func TestBuildColumnPartition(t *testing.T) {
	doc := model.DefaultDocument()
	doc.Sections[1].(*model.Skills).Skills = []model.Skill{{Name: "Go", Level: model.SkillIntermediate}}
	doc.Sections[2].(*model.Educations).Educations = []model.Education{{School: "UCL"}}
	doc.Sections[3].(*model.EmploymentHistory).Employments = []model.Employment{{JobTitle: "Engineer"}}
	langs, _ := model.NewSection(model.TypeLanguages)
	langs.(*model.Languages).Languages = []model.Language{{Name: "French", Level: model.LanguageFluent}}
	doc.Sections = append(doc.Sections, langs)

	lay := Build(doc)

	sidebarKinds := make([]domain.BlockKind, len(lay.Sidebar))
	for i, b := range lay.Sidebar {
		sidebarKinds[i] = b.Kind
	}
	wantSidebar := []domain.BlockKind{domain.BlockDetails, domain.BlockSkills, domain.BlockLanguages}
	if !reflect.DeepEqual(sidebarKinds, wantSidebar) {
		t.Errorf("sidebar kinds = %v, want %v", sidebarKinds, wantSidebar)
	}

	if len(lay.Main) != 2 {
		t.Fatalf("main blocks = %d, want 2", len(lay.Main))
	}
	if lay.Main[0].Title != "Education" || lay.Main[1].Title != "Employment History" {
		t.Errorf("main titles = %q, %q", lay.Main[0].Title, lay.Main[1].Title)
	}
	for _, b := range lay.Main {
		for _, item := range b.Items {
			if !item.Atomic {
				t.Errorf("item %q not atomic", item.Heading)
			}
		}
	}
}

func TestBuildProfileBlock(t *testing.T) {
	doc := model.DefaultDocument()
	doc.Sections[0].(*model.PersonalDetails).Summary = "<p>Curious <b>engineer</b>.</p>"

	lay := Build(doc)
	if len(lay.Main) != 1 {
		t.Fatalf("main blocks = %d, want 1", len(lay.Main))
	}
	profile := lay.Main[0]
	if profile.Kind != domain.BlockRichText || profile.Title != "Profile" {
		t.Errorf("profile block = %+v", profile)
	}
	if got := PlainText(profile.RichText); got != "Curious engineer." {
		t.Errorf("profile text = %q", got)
	}

	// A whitespace-only summary produces no profile block.
	doc.Sections[0].(*model.PersonalDetails).Summary = "   "
	if lay := Build(doc); len(lay.Main) != 0 {
		t.Error("blank summary produced a profile block")
	}
}

func TestBuildDeterministic(t *testing.T) {
	doc := model.DefaultDocument()
	pd := doc.Sections[0].(*model.PersonalDetails)
	pd.FirstName = "Ada"
	pd.Email = "ada@example.com"
	doc.Sections[1].(*model.Skills).Skills = []model.Skill{{Name: "Go", Level: model.SkillExpert}}

	first := Build(doc)
	second := Build(doc)
	if !reflect.DeepEqual(first, second) {
		t.Error("Build is not deterministic for equal input")
	}
}

func TestBuildFontFollowsSettings(t *testing.T) {
	doc := model.DefaultDocument()
	small := Build(doc)

	doc.Settings = model.Settings{FontFamily: model.FontHelvetica, FontSize: 14}
	big := Build(doc)

	if small.Font == big.Font {
		t.Error("font spec did not change with settings")
	}
	if big.Font.Base != 14 || big.Font.Normal != "Helvetica" {
		t.Errorf("font = %+v", big.Font)
	}

	// Content is unaffected by style settings.
	small.Font = domain.FontSpec{}
	big.Font = domain.FontSpec{}
	if !reflect.DeepEqual(small, big) {
		t.Error("settings changed layout content")
	}
}

func TestBuildDetailGroups(t *testing.T) {
	doc := model.DefaultDocument()
	pd := doc.Sections[0].(*model.PersonalDetails)
	pd.Country = "UK"
	pd.City = "London"
	pd.Email = "ada@example.com"
	pd.DrivingLicense = "B"
	pd.DateOfBirth = date(t, "1815-12-10")

	lay := Build(doc)
	details := lay.Sidebar[0]
	if len(details.Details) != 3 {
		t.Fatalf("detail groups = %d, want 3", len(details.Details))
	}
	personal, address, contact := details.Details[0], details.Details[1], details.Details[2]

	wantPersonal := []string{"December 10, 1815", "License: B"}
	if !reflect.DeepEqual(personal.Lines, wantPersonal) {
		t.Errorf("personal lines = %v, want %v", personal.Lines, wantPersonal)
	}
	if !reflect.DeepEqual(address.Lines, []string{"UK, London"}) {
		t.Errorf("address lines = %v", address.Lines)
	}
	if !reflect.DeepEqual(contact.Lines, []string{"ada@example.com"}) {
		t.Errorf("contact lines = %v", contact.Lines)
	}
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end *model.Date
		want       string
	}{
		{"both", date(t, "2020-01-15"), date(t, "2022-06-01"), "Jan 2020 – Jun 2022"},
		{"ongoing", date(t, "2020-01-15"), nil, "Jan 2020 – Present"},
		{"no start", nil, date(t, "2022-06-01"), "N/A – Jun 2022"},
		{"neither", nil, nil, "N/A – Present"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateRange(tt.start, tt.end); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
