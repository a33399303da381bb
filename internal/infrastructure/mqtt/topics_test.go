package mqtt

import "testing"

func TestTopics_Variable(t *testing.T) {
	got := Topics{}.Variable("temperature")
	want := "epaper/variables/temperature"
	if got != want {
		t.Errorf("Variable() = %q, want %q", got, want)
	}
}

func TestTopics_AllVariables(t *testing.T) {
	got := Topics{}.AllVariables()
	want := "epaper/variables/+"
	if got != want {
		t.Errorf("AllVariables() = %q, want %q", got, want)
	}
}

func TestTopics_VariableName(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{name: "plain variable", topic: "epaper/variables/humidity", want: "humidity"},
		{name: "status topic", topic: "epaper/status", want: ""},
		{name: "empty name", topic: "epaper/variables/", want: ""},
		{name: "nested segments", topic: "epaper/variables/a/b", want: ""},
		{name: "unrelated topic", topic: "other/variables/x", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Topics{}).VariableName(tt.topic); got != tt.want {
				t.Errorf("VariableName(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
