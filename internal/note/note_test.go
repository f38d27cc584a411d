package note

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	n := New()

	if n.ID == "" {
		t.Error("New note should have an ID")
	}
	if n.Created == 0 {
		t.Error("New note should have a created timestamp")
	}
	if n.Modified != n.Created {
		t.Errorf("Modified = %d, want %d (same as Created)", n.Modified, n.Created)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 26 {
			t.Fatalf("ULID length = %d, want 26", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    bool
	}{
		{"both empty", "", "", true},
		{"whitespace only", "   ", "\n\t  ", true},
		{"title only", "Groceries", "", false},
		{"content only", "", "<p>milk</p>", false},
		{"both set", "Groceries", "<p>milk</p>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Note{Title: tt.title, Content: tt.content}
			if got := n.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", UntitledTitle},
		{"whitespace", "   \t", UntitledTitle},
		{"trimmed", "  Groceries  ", "Groceries"},
		{"unchanged", "Groceries", "Groceries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClone(t *testing.T) {
	n := &Note{
		ID:      "abc",
		Title:   "Groceries",
		Content: "<p>milk</p>",
		Tags:    []string{"captured"},
	}

	c := n.Clone()
	c.Title = "Changed"
	c.Tags[0] = "changed"

	if n.Title != "Groceries" {
		t.Errorf("original title mutated: %q", n.Title)
	}
	if n.Tags[0] != "captured" {
		t.Errorf("original tags mutated: %q", n.Tags[0])
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		keeps   []string
		removes []string
	}{
		{
			name:  "formatting survives",
			input: "<p>Hello <strong>world</strong> and <em>more</em></p>",
			keeps: []string{"<strong>world</strong>", "<em>more</em>"},
		},
		{
			name:    "scripts removed",
			input:   `<p>ok</p><script>alert("x")</script>`,
			keeps:   []string{"<p>ok</p>"},
			removes: []string{"<script>", "alert"},
		},
		{
			name:    "event handlers removed",
			input:   `<p onclick="steal()">text</p>`,
			keeps:   []string{"text"},
			removes: []string{"onclick"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			for _, want := range tt.keeps {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize(%q) = %q, should contain %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.removes {
				if strings.Contains(got, bad) {
					t.Errorf("Sanitize(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}

func TestSettings_ApplyDefaults(t *testing.T) {
	def := DefaultSettings()

	// Empty record falls back entirely
	got := Settings{}.ApplyDefaults()
	if got.Theme != def.Theme || got.FontSize != def.FontSize || got.ExportFormat != def.ExportFormat {
		t.Errorf("ApplyDefaults on zero Settings = %+v, want defaults %+v", got, def)
	}

	// Explicit values survive
	got = Settings{Theme: "dark", FontSize: 18}.ApplyDefaults()
	if got.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", got.Theme)
	}
	if got.FontSize != 18 {
		t.Errorf("FontSize = %d, want 18", got.FontSize)
	}
	if got.FontFamily != def.FontFamily {
		t.Errorf("FontFamily = %q, want default %q", got.FontFamily, def.FontFamily)
	}
}
