package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{" 2d , 3d ,", []string{"2d", "3d"}},
	}

	for _, tt := range tests {
		if got := parseList(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("parseList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "cell.hoc", "cell"},
		{"", "data/cell.ves", "data/cell"},
		{"out.svg", "cell.hoc", "out"},
		{"out.pdf", "cell.hoc", "out"},
		{"out.txt", "cell.hoc", "out.txt"},
		{"out", "cell.hoc", "out"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cell.hoc")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json"},
		input:     input,
		suffix:    "_3d",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "cell_3d.svg"), filepath.Join(dir, "cell_3d.json")}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, _ := os.ReadFile(want[0])
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestWriteArtifactsRefusesInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "cell.json")
	_, err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"json": []byte("{}")},
		formats:   []string{"json"},
		input:     input,
	})
	if err == nil {
		t.Error("writing over the input should fail")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:          "1",
		0.5:        "0.5",
		1.23456789: "1.2346",
		-2.00001:   "-2",
	}
	for in, want := range tests {
		if got := formatFloat(in); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}
