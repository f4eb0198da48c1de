package template

import (
	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// Font lookup tables, loaded once and never mutated. Unknown settings fall
// back to courier/10 instead of erroring.

type fontFaces struct {
	normal, bold, italic, boldItalic string
}

type fontScale struct {
	small, base, large, title int
}

var fontFamilies = map[model.FontFamily]fontFaces{
	model.FontCourier: {
		normal:     "Courier",
		bold:       "Courier-Bold",
		italic:     "Courier-Oblique",
		boldItalic: "Courier-BoldOblique",
	},
	model.FontHelvetica: {
		normal:     "Helvetica",
		bold:       "Helvetica-Bold",
		italic:     "Helvetica-Oblique",
		boldItalic: "Helvetica-BoldOblique",
	},
	model.FontTimesRoman: {
		normal:     "Times-Roman",
		bold:       "Times-Bold",
		italic:     "Times-Italic",
		boldItalic: "Times-BoldItalic",
	},
}

var fontScales = map[model.FontSize]fontScale{
	10: {small: 8, base: 10, large: 12, title: 14},
	12: {small: 10, base: 12, large: 14, title: 14},
	14: {small: 12, base: 14, large: 16, title: 14},
}

// ResolveFont maps style settings onto concrete typefaces and sizes.
func ResolveFont(s model.Settings) domain.FontSpec {
	faces, ok := fontFamilies[s.FontFamily]
	if !ok {
		faces = fontFamilies[model.DefaultFontFamily]
	}
	scale, ok := fontScales[s.FontSize]
	if !ok {
		scale = fontScales[model.DefaultFontSize]
	}
	return domain.FontSpec{
		Normal:     faces.normal,
		Bold:       faces.bold,
		Italic:     faces.italic,
		BoldItalic: faces.boldItalic,
		Small:      scale.small,
		Base:       scale.base,
		Large:      scale.large,
		Title:      scale.title,
	}
}
