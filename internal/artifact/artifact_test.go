package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"consult/internal/thread"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "mermaid fence",
			content: "```mermaid\ngraph TD\n  A --> B\n```",
			want:    "graph TD\n  A --> B",
		},
		{
			name:    "html fence uppercase",
			content: "```HTML\n<div>hi</div>\n```",
			want:    "<div>hi</div>",
		},
		{
			name:    "no fences",
			content: "  plain text  ",
			want:    "plain text",
		},
		{
			name:    "bare closing fence",
			content: "```mermaid\ngraph LR\n```  ",
			want:    "graph LR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.content); got != tt.want {
				t.Fatalf("StripFences = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Infrastructure Topology", "infrastructure-topology"},
		{"Landing Page: Hero!", "landing-page-hero"},
		{"***", "artifact"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Fatalf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	arts := []thread.Artifact{
		{ID: "aaaaaaaa-1111", Type: thread.ArtifactMermaid, Title: "Org Chart", Content: "```mermaid\ngraph TD\n```"},
		{ID: "bbbbbbbb-2222", Type: thread.ArtifactHTML, Title: "Hero", Content: "```html\n<div/>\n```"},
	}

	if err := ExportAll(dir, arts); err != nil {
		t.Fatalf("ExportAll: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("exported files = %d, want 2", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, "org-chart-aaaaaaaa.mmd"))
	if err != nil {
		t.Fatalf("read exported mermaid: %v", err)
	}
	if strings.Contains(string(data), "```") {
		t.Fatalf("export still fenced: %q", data)
	}
	if string(data) != "graph TD" {
		t.Fatalf("export content = %q", data)
	}
}

func TestExportAllEmptyIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	if err := ExportAll(dir, nil); err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("export dir created for zero artifacts")
	}
}
