// Package template maps a validated resume document plus style settings
// onto the fixed two-column page layout. Build is pure and deterministic;
// pagination happens later in the renderer.
package template

import (
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

const gaugeUnits = 5

// Build partitions the document into the two-column layout: personal
// details, skills and languages in the sidebar; profile summary, education
// and employment history in the main column, each group in document order.
// The page header (name, wanted job title) is promoted out of the first
// personalDetails section.
func Build(doc *model.Document) *domain.Layout {
	lay := &domain.Layout{Font: ResolveFont(doc.Settings)}

	first := doc.FirstPersonalDetails()
	if first != nil {
		lay.Header = domain.Header{
			Name:     strings.TrimSpace(first.FirstName + " " + first.LastName),
			JobTitle: first.WantedJobTitle,
		}
	}

	for _, section := range doc.Sections {
		switch sec := section.(type) {
		case *model.PersonalDetails:
			if sec == first {
				lay.Sidebar = append(lay.Sidebar, detailsBlock(sec))
			}
		case *model.Skills:
			if len(sec.Skills) > 0 {
				lay.Sidebar = append(lay.Sidebar, skillsBlock(sec))
			}
		case *model.Languages:
			if len(sec.Languages) > 0 {
				lay.Sidebar = append(lay.Sidebar, languagesBlock(sec))
			}
		case *model.Educations, *model.EmploymentHistory:
			// Main column, handled below in document order alongside the
			// summary block.
		}
	}

	if first != nil {
		if summary := ParseRichText(first.Summary); summary != nil {
			lay.Main = append(lay.Main, domain.Block{
				Kind:     domain.BlockRichText,
				Title:    "Profile",
				RichText: summary,
			})
		}
	}

	for _, section := range doc.Sections {
		switch sec := section.(type) {
		case *model.Educations:
			if len(sec.Educations) > 0 {
				lay.Main = append(lay.Main, educationsBlock(sec))
			}
		case *model.EmploymentHistory:
			if len(sec.Employments) > 0 {
				lay.Main = append(lay.Main, employmentBlock(sec))
			}
		}
	}

	return lay
}

func detailsBlock(sec *model.PersonalDetails) domain.Block {
	personal := domain.DetailGroup{Label: "Personal"}
	if sec.PlaceOfBirth != "" {
		personal.Lines = append(personal.Lines, sec.PlaceOfBirth)
	}
	if sec.DateOfBirth != nil {
		personal.Lines = append(personal.Lines, sec.DateOfBirth.Format("January 2, 2006"))
	}
	if sec.DrivingLicense != "" {
		personal.Lines = append(personal.Lines, "License: "+sec.DrivingLicense)
	}
	if sec.Nationality != "" {
		personal.Lines = append(personal.Lines, sec.Nationality)
	}

	address := domain.DetailGroup{Label: "Address"}
	if sec.Country != "" || sec.City != "" {
		address.Lines = append(address.Lines, sec.Country+", "+sec.City)
	}
	if sec.Address != "" {
		address.Lines = append(address.Lines, sec.Address)
	}
	if sec.PostalCode != "" {
		address.Lines = append(address.Lines, sec.PostalCode)
	}

	contact := domain.DetailGroup{Label: "Contact"}
	if sec.Email != "" {
		contact.Lines = append(contact.Lines, sec.Email)
	}
	if sec.Phone != "" {
		contact.Lines = append(contact.Lines, sec.Phone)
	}

	return domain.Block{
		Kind:    domain.BlockDetails,
		Title:   "Details",
		Details: []domain.DetailGroup{personal, address, contact},
	}
}

func skillsBlock(sec *model.Skills) domain.Block {
	block := domain.Block{Kind: domain.BlockSkills, Title: sec.Title}
	for _, skill := range sec.Skills {
		filled := skill.Level.Rank()
		block.Skills = append(block.Skills, domain.SkillGauge{
			Name:   skill.Name,
			Filled: filled,
			Empty:  gaugeUnits - filled,
		})
	}
	return block
}

func languagesBlock(sec *model.Languages) domain.Block {
	block := domain.Block{Kind: domain.BlockLanguages, Title: sec.Title}
	for _, lang := range sec.Languages {
		block.Languages = append(block.Languages, domain.LanguageLine{
			Name:  lang.Name,
			Level: string(lang.Level),
		})
	}
	return block
}

func educationsBlock(sec *model.Educations) domain.Block {
	block := domain.Block{Kind: domain.BlockDatedItems, Title: sec.Title}
	for _, e := range sec.Educations {
		block.Items = append(block.Items, domain.DatedItem{
			Heading:     e.School,
			DateRange:   FormatDateRange(e.StartDate, e.EndDate),
			Description: ParseRichText(e.Description),
			Atomic:      true,
		})
	}
	return block
}

func employmentBlock(sec *model.EmploymentHistory) domain.Block {
	block := domain.Block{Kind: domain.BlockDatedItems, Title: sec.Title}
	for _, e := range sec.Employments {
		block.Items = append(block.Items, domain.DatedItem{
			Heading:     e.JobTitle,
			DateRange:   FormatDateRange(e.StartDate, e.EndDate),
			Description: ParseRichText(e.Description),
			Atomic:      true,
		})
	}
	return block
}

// FormatDateRange renders "Jan 2006 – Jan 2008", with "Present" for a
// missing end and "N/A" for a missing start.
func FormatDateRange(start, end *model.Date) string {
	from := "N/A"
	if start != nil {
		from = start.Format("Jan 2006")
	}
	to := "Present"
	if end != nil {
		to = end.Format("Jan 2006")
	}
	return from + " – " + to
}
