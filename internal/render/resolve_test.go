package render

import (
	"reflect"
	"testing"

	"github.com/openepaper/epaper-mock/internal/state"
)

func sampleTemplate() state.Template {
	return state.Template{
		Name:            "sample",
		Width:           296,
		Height:          128,
		BackgroundColor: "white",
		Texts: []state.TextItem{
			{
				X: 10, Y: 30, Color: "black", Font: "sans-24",
				Value: state.TextValue{Type: state.TextValueVariable, Variable: "time"},
			},
			{
				X: 10, Y: 70, Color: "black",
				Value: state.TextValue{Type: state.TextValueLiteral, Text: "Room 12"},
			},
			{
				X: 10, Y: 110,
				Value: state.TextValue{Type: state.TextValueVariable, Variable: "missing"},
			},
		},
		Rectangles: []state.Rectangle{
			{X: 0, Y: 0, Width: 296, Height: 20, Color: "black", Filled: true},
		},
		Lines: []state.Line{
			{X1: 0, Y1: 64, X2: 296, Y2: 64, Color: "black"},
		},
		Bitmaps: []state.BitmapPlacement{
			{X: 250, Y: 5, Filename: "icon.bin"},
		},
	}
}

func TestResolve_SubstitutesVariables(t *testing.T) {
	vars := map[string]string{"time": "09:30:45"}

	resolved := Resolve(sampleTemplate(), vars)

	if resolved.Texts[0].Value != "09:30:45" {
		t.Errorf("Texts[0].Value = %q, want %q", resolved.Texts[0].Value, "09:30:45")
	}
}

func TestResolve_LiteralPassThrough(t *testing.T) {
	resolved := Resolve(sampleTemplate(), map[string]string{})

	if resolved.Texts[1].Value != "Room 12" {
		t.Errorf("Texts[1].Value = %q, want literal %q", resolved.Texts[1].Value, "Room 12")
	}
}

func TestResolve_MissingVariableIsEmptyString(t *testing.T) {
	resolved := Resolve(sampleTemplate(), map[string]string{"time": "09:30:45"})

	if resolved.Texts[2].Value != "" {
		t.Errorf("Texts[2].Value = %q, want empty string for missing variable", resolved.Texts[2].Value)
	}
}

func TestResolve_NilMapping(t *testing.T) {
	resolved := Resolve(sampleTemplate(), nil)

	if resolved.Texts[0].Value != "" {
		t.Errorf("variable reference against nil mapping = %q, want empty string", resolved.Texts[0].Value)
	}
}

func TestResolve_PreservesOrderingAndAttributes(t *testing.T) {
	tpl := sampleTemplate()
	resolved := Resolve(tpl, map[string]string{"time": "x"})

	if len(resolved.Texts) != len(tpl.Texts) {
		t.Fatalf("len(Texts) = %d, want %d", len(resolved.Texts), len(tpl.Texts))
	}
	for i := range tpl.Texts {
		if resolved.Texts[i].X != tpl.Texts[i].X || resolved.Texts[i].Y != tpl.Texts[i].Y {
			t.Errorf("Texts[%d] position changed", i)
		}
		if resolved.Texts[i].Font != tpl.Texts[i].Font {
			t.Errorf("Texts[%d] font changed", i)
		}
	}
	if !reflect.DeepEqual(resolved.Rectangles, tpl.Rectangles) {
		t.Error("rectangles must pass through unchanged")
	}
	if !reflect.DeepEqual(resolved.Lines, tpl.Lines) {
		t.Error("lines must pass through unchanged")
	}
	if !reflect.DeepEqual(resolved.Bitmaps, tpl.Bitmaps) {
		t.Error("bitmap placements must pass through unchanged")
	}
}

func TestResolve_Pure(t *testing.T) {
	tpl := sampleTemplate()
	vars := map[string]string{"time": "09:30:45"}

	first := Resolve(tpl, vars)
	second := Resolve(tpl, vars)

	if !reflect.DeepEqual(first, second) {
		t.Error("resolving the same inputs twice must yield identical output")
	}

	// Inputs are never mutated.
	if tpl.Texts[0].Value.Variable != "time" {
		t.Error("template mutated by Resolve")
	}
	if len(vars) != 1 || vars["time"] != "09:30:45" {
		t.Error("variable mapping mutated by Resolve")
	}
}

func TestResolve_DifferentSnapshots(t *testing.T) {
	tpl := sampleTemplate()

	morning := Resolve(tpl, map[string]string{"time": "08:00:00"})
	evening := Resolve(tpl, map[string]string{"time": "20:00:00"})

	if morning.Texts[0].Value != "08:00:00" || evening.Texts[0].Value != "20:00:00" {
		t.Error("the same template must resolve independently against different mappings")
	}
}
