package model

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

// Issue codes. UnknownSectionType and InvalidDate are the two the rest of
// the system branches on; everything else is presentation only.
const (
	CodeUnknownSectionType = "UnknownSectionType"
	CodeInvalidDate        = "InvalidDate"
	CodeDateOrder          = "DateOrder"
	CodeBadShape           = "BadShape"
)

// Issue is one violated constraint with the field path that caused it.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every violated constraint found in one pass.
// Validation is total: a document either validates as a whole or all of its
// problems are reported together.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		if issue.Path != "" {
			parts[i] = issue.Path + ": " + issue.Message
		} else {
			parts[i] = issue.Message
		}
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Validate parses and validates an untrusted blob into a Document. The
// returned document has defaults applied; validating already-defaulted data
// is a no-op. On failure the error is a *ValidationError carrying one entry
// per violated constraint.
func Validate(raw []byte) (*Document, error) {
	if !json.Valid(raw) {
		return nil, &ValidationError{Issues: []Issue{{
			Code:    CodeBadShape,
			Message: "not valid JSON",
		}}}
	}

	// Coarse shape gate: root object, sections array of typed objects,
	// settings object.
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, &ValidationError{Issues: []Issue{{
			Code:    CodeBadShape,
			Message: err.Error(),
		}}}
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, e := range result.Errors() {
			verr.Issues = append(verr.Issues, Issue{
				Path:    e.Field(),
				Code:    CodeBadShape,
				Message: e.Description(),
			})
		}
		return nil, verr
	}

	var envelope struct {
		Sections []json.RawMessage `json:"sections"`
		Settings json.RawMessage   `json:"settings"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ValidationError{Issues: []Issue{{
			Code:    CodeBadShape,
			Message: err.Error(),
		}}}
	}

	doc := &Document{Sections: make(SectionList, 0, len(envelope.Sections))}
	var issues []Issue

	for i, rawSection := range envelope.Sections {
		path := fmt.Sprintf("sections[%d]", i)

		var tag struct {
			Type SectionType `json:"type"`
		}
		if err := json.Unmarshal(rawSection, &tag); err != nil {
			issues = append(issues, Issue{Path: path + ".type", Code: CodeBadShape, Message: err.Error()})
			continue
		}

		section, err := NewSection(tag.Type)
		if err != nil {
			issues = append(issues, Issue{
				Path:    path + ".type",
				Code:    CodeUnknownSectionType,
				Message: fmt.Sprintf("unknown section type %q", tag.Type),
			})
			continue
		}

		if err := json.Unmarshal(rawSection, section); err != nil {
			// Typed decode failed; scan the raw section for the exact date
			// field that broke so the issue carries a useful path.
			dateIssues := scanDates(rawSection, tag.Type, path)
			if len(dateIssues) > 0 {
				issues = append(issues, dateIssues...)
			} else {
				issues = append(issues, Issue{Path: path, Code: CodeBadShape, Message: err.Error()})
			}
			continue
		}

		issues = append(issues, CheckSection(section, path)...)
		doc.Sections = append(doc.Sections, section)
	}

	doc.Settings = decodeSettings(envelope.Settings)

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	doc.ApplyDefaults()
	return doc, nil
}

// CheckSection verifies the per-entry invariants of a single section:
// date ordering and level enum membership. The path prefixes every issue,
// e.g. "sections[2]".
func CheckSection(s Section, path string) []Issue {
	var issues []Issue
	switch sec := s.(type) {
	case *PersonalDetails:
		// Scalar fields only; nothing beyond date coercion, which decoding
		// already enforced.
	case *Skills:
		for j, skill := range sec.Skills {
			if !skill.Level.Valid() {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.skills[%d].level", path, j),
					Code:    CodeBadShape,
					Message: fmt.Sprintf("invalid skill level %q", skill.Level),
				})
			}
		}
	case *Educations:
		for j, e := range sec.Educations {
			if badDateOrder(e.StartDate, e.EndDate) {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.educations[%d].endDate", path, j),
					Code:    CodeDateOrder,
					Message: "End date cannot be earlier than start date.",
				})
			}
		}
	case *EmploymentHistory:
		for j, e := range sec.Employments {
			if badDateOrder(e.StartDate, e.EndDate) {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.employments[%d].endDate", path, j),
					Code:    CodeDateOrder,
					Message: "End date cannot be earlier than start date.",
				})
			}
		}
	case *Languages:
		for j, lang := range sec.Languages {
			if !lang.Level.Valid() {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.languages[%d].level", path, j),
					Code:    CodeBadShape,
					Message: fmt.Sprintf("invalid language level %q", lang.Level),
				})
			}
		}
	}
	return issues
}

func badDateOrder(start, end *Date) bool {
	if start == nil || end == nil {
		return false
	}
	return !end.After(start.Time)
}

// scanDates walks the raw JSON of one section looking for date fields that
// fail to parse, so decode failures report the exact offending field.
func scanDates(raw []byte, t SectionType, path string) []Issue {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}

	var issues []Issue
	checkField := func(fieldPath string, v interface{}) {
		s, ok := v.(string)
		if !ok || v == nil {
			return
		}
		if _, err := ParseDate(s); err != nil {
			issues = append(issues, Issue{
				Path:    fieldPath,
				Code:    CodeInvalidDate,
				Message: "Invalid date",
			})
		}
	}
	checkEntries := func(listKey string) {
		entries, _ := m[listKey].([]interface{})
		for j, entry := range entries {
			em, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			checkField(fmt.Sprintf("%s.%s[%d].startDate", path, listKey, j), em["startDate"])
			checkField(fmt.Sprintf("%s.%s[%d].endDate", path, listKey, j), em["endDate"])
		}
	}

	switch t {
	case TypePersonalDetails:
		checkField(path+".dateOfBirth", m["dateOfBirth"])
	case TypeEducations:
		checkEntries("educations")
	case TypeEmploymentHistory:
		checkEntries("employments")
	}
	return issues
}

// decodeSettings reads settings leniently: values of the wrong type or
// outside the known enums fall back to the documented defaults rather than
// failing validation.
func decodeSettings(raw []byte) Settings {
	out := Settings{FontFamily: DefaultFontFamily, FontSize: DefaultFontSize}
	if len(raw) == 0 {
		return out
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	if family, ok := m["fontFamily"].(string); ok {
		out.FontFamily = FontFamily(family)
	}
	if size, ok := m["fontSize"].(float64); ok {
		out.FontSize = FontSize(int(size))
	}
	out.normalize()
	return out
}
