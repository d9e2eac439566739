package cmd

import "testing"

func TestIsYAML(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want bool
	}{
		{"yaml extension", "doc.yaml", "", true},
		{"yml extension", "doc.yml", "", true},
		{"uppercase extension", "doc.YAML", "", true},
		{"json extension", "doc.json", "headline: x", false},
		{"stdin json object", "-", `  {"@type": "Thing"}`, false},
		{"stdin json array", "-", `[{"@type": "Thing"}]`, false},
		{"stdin yaml", "-", `"@type": Thing`, true},
		{"stdin empty", "-", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isYAML(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("isYAML(%q, %q) = %v, want %v", tt.path, tt.data, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("-"); got != "stdin" {
		t.Errorf("displayName(-) = %q", got)
	}
	if got := displayName("a.json"); got != "a.json" {
		t.Errorf("displayName(a.json) = %q", got)
	}
}
