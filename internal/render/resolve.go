// Package render turns a template plus a variable mapping into a resolved
// content model ready for a rendering target to consume.
//
// Resolution substitutes variable references in text items with current
// values and passes everything else through untouched. The package does not
// rasterize and does not validate layout sanity; geometry, fonts, and
// colors are a rendering-target concern. Collection ordering is preserved
// exactly: draw order matters for visual stacking and this layer never
// reorders, only resolves values.
package render

import (
	"github.com/openepaper/epaper-mock/internal/state"
)

// ResolvedText is a text item with its content flattened to a plain string.
type ResolvedText struct {
	X               int    `json:"x"`
	Y               int    `json:"y"`
	Color           string `json:"color,omitempty"`
	Font            string `json:"font,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	Value           string `json:"value"`
}

// ResolvedTemplate is a template with all variable references substituted
// by current values.
type ResolvedTemplate struct {
	Name            string                  `json:"name"`
	Width           int                     `json:"width"`
	Height          int                     `json:"height"`
	BackgroundColor string                  `json:"background_color,omitempty"`
	Texts           []ResolvedText          `json:"texts"`
	Rectangles      []state.Rectangle       `json:"rectangles"`
	Bitmaps         []state.BitmapPlacement `json:"bitmaps"`
	Lines           []state.Line            `json:"lines"`
}

// Resolve produces the resolved content model for a template against a
// variable mapping.
//
// Resolution is pure: it never mutates the template or the mapping, and
// resolving the same inputs twice yields identical output. A reference to a
// variable missing from the mapping resolves to the empty string, never an
// error.
func Resolve(tpl state.Template, vars map[string]string) ResolvedTemplate {
	resolved := ResolvedTemplate{
		Name:            tpl.Name,
		Width:           tpl.Width,
		Height:          tpl.Height,
		BackgroundColor: tpl.BackgroundColor,
		Texts:           make([]ResolvedText, 0, len(tpl.Texts)),
		Rectangles:      append([]state.Rectangle(nil), tpl.Rectangles...),
		Bitmaps:         append([]state.BitmapPlacement(nil), tpl.Bitmaps...),
		Lines:           append([]state.Line(nil), tpl.Lines...),
	}

	for _, item := range tpl.Texts {
		resolved.Texts = append(resolved.Texts, ResolvedText{
			X:               item.X,
			Y:               item.Y,
			Color:           item.Color,
			Font:            item.Font,
			BackgroundColor: item.BackgroundColor,
			Value:           resolveValue(item.Value, vars),
		})
	}

	return resolved
}

// resolveValue flattens a text value: variable references read the mapping,
// literals pass through unchanged.
func resolveValue(v state.TextValue, vars map[string]string) string {
	if v.Type == state.TextValueVariable {
		return vars[v.Variable] // missing variable -> ""
	}
	return v.Text
}
