package usecase

import (
	"errors"
	"testing"

	"resume-builder/internal/model"
)

func TestSessionAppendUniqueness(t *testing.T) {
	session := NewSession(model.DefaultDocument())
	before := session.Len()

	langs, err := model.NewSection(model.TypeLanguages)
	if err != nil {
		t.Fatal(err)
	}
	if err := session.Append(langs); err != nil {
		t.Fatalf("first languages append failed: %v", err)
	}

	// Second languages section must be refused and leave the count alone.
	again, _ := model.NewSection(model.TypeLanguages)
	if err := session.Append(again); !errors.Is(err, ErrDuplicateSection) {
		t.Fatalf("expected ErrDuplicateSection, got %v", err)
	}
	if got := session.Document().CountByType(model.TypeLanguages); got != 1 {
		t.Errorf("languages count = %d, want 1", got)
	}

	// skills already exists in the default document.
	skills, _ := model.NewSection(model.TypeSkills)
	if err := session.Append(skills); !errors.Is(err, ErrDuplicateSection) {
		t.Fatalf("expected ErrDuplicateSection for skills, got %v", err)
	}

	// personalDetails is single-instance too.
	pd, _ := model.NewSection(model.TypePersonalDetails)
	if err := session.Append(pd); !errors.Is(err, ErrDuplicateSection) {
		t.Fatalf("expected ErrDuplicateSection for personalDetails, got %v", err)
	}

	// educations is unconstrained.
	edu, _ := model.NewSection(model.TypeEducations)
	if err := session.Append(edu); err != nil {
		t.Fatalf("educations append failed: %v", err)
	}
	if session.Len() != before+2 {
		t.Errorf("len = %d, want %d", session.Len(), before+2)
	}
}

func TestSessionRemoveShiftsIndices(t *testing.T) {
	session := NewSession(model.DefaultDocument())
	// default order: personalDetails, skills, educations, employmentHistory

	if err := session.Remove(1); err != nil {
		t.Fatal(err)
	}
	got, err := session.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != model.TypeEducations {
		t.Errorf("after remove, index 1 = %q, want educations", got.Kind())
	}
	if session.Len() != 3 {
		t.Errorf("len = %d, want 3", session.Len())
	}

	if err := session.Remove(7); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := session.Remove(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSessionUpdate(t *testing.T) {
	session := NewSession(model.DefaultDocument())

	updated := &model.Skills{
		Title:  "Core Skills",
		Skills: []model.Skill{{Name: "Go", Level: model.SkillExpert}},
	}
	if err := session.Update(1, updated); err != nil {
		t.Fatal(err)
	}
	got, _ := session.Get(1)
	skills := got.(*model.Skills)
	if skills.Title != "Core Skills" || len(skills.Skills) != 1 {
		t.Errorf("update not applied: %+v", skills)
	}

	// Type is immutable.
	if err := session.Update(1, &model.Languages{}); !errors.Is(err, ErrTypeImmutable) {
		t.Errorf("expected ErrTypeImmutable, got %v", err)
	}

	// Invalid payloads are rejected whole.
	bad := &model.Skills{Skills: []model.Skill{{Name: "Go", Level: "guru"}}}
	err := session.Update(1, bad)
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	if err := session.Update(9, updated); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSessionNotifies(t *testing.T) {
	session := NewSession(model.DefaultDocument())
	var events int
	session.Subscribe(func() { events++ })

	langs, _ := model.NewSection(model.TypeLanguages)
	session.Append(langs)
	session.Remove(0)
	session.SetSettings(model.Settings{FontFamily: model.FontHelvetica, FontSize: 12})
	session.Replace(model.DefaultDocument())

	if events != 4 {
		t.Errorf("events = %d, want 4", events)
	}

	// Refused mutations do not notify.
	events = 0
	again, _ := model.NewSection(model.TypeLanguages)
	if err := session.Append(again); err == nil {
		t.Fatal("expected duplicate error")
	}
	if events != 0 {
		t.Errorf("refused append notified %d times", events)
	}
}

func TestSessionSnapshotIsolation(t *testing.T) {
	session := NewSession(model.DefaultDocument())
	snap := session.Document()
	snap.Sections[0].(*model.PersonalDetails).FirstName = "Mallory"

	fresh := session.Document()
	if fresh.Sections[0].(*model.PersonalDetails).FirstName != "" {
		t.Error("snapshot mutation leaked into session")
	}
}

func TestSessionSettingsNormalized(t *testing.T) {
	session := NewSession(model.DefaultDocument())
	session.SetSettings(model.Settings{FontFamily: "wingdings", FontSize: 7})
	settings := session.Document().Settings
	if settings.FontFamily != model.DefaultFontFamily || settings.FontSize != model.DefaultFontSize {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}
