package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/vestools/pkg/errors"
)

const cellHoc = "../../pkg/hoc/testdata/cell.hoc"

// execute runs the root command with args and returns its stdout.
// Caching is disabled and config lookup is isolated from the user's home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"components", "nodes", "layers", "render", "explore", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "no-cache", "cache-url"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestComponentsCommand(t *testing.T) {
	out, err := execute(t, "components", cellHoc, "--no-cache")
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	for _, want := range []string{"Polylines", "2 components", "9 samples"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestComponentsCommandJSON(t *testing.T) {
	out, err := execute(t, "components", cellHoc, "--no-cache", "--json")
	if err != nil {
		t.Fatalf("components --json: %v", err)
	}
	var doc struct {
		Components map[string][][][4]float64 `json:"components"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(doc.Components["0"]) != 3 || len(doc.Components["1"]) != 1 {
		t.Errorf("components = %v", doc.Components)
	}
}

func TestNodesCommand(t *testing.T) {
	out, err := execute(t, "nodes", cellHoc, "--no-cache", "-c", "0", "--kind", "bifurcations")
	if err != nil {
		t.Fatalf("nodes: %v", err)
	}
	if !strings.Contains(out, "1 of 4 nodes") {
		t.Errorf("expected one bifurcation:\n%s", out)
	}

	_, err = execute(t, "nodes", cellHoc, "--no-cache", "--kind", "leaves")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad --kind: err = %v", err)
	}
}

func TestNodesCommandUnknownComponent(t *testing.T) {
	_, err := execute(t, "nodes", cellHoc, "--no-cache", "-c", "9")
	if !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Errorf("err = %v, want COMPONENT_NOT_FOUND", err)
	}
}

func TestLayersCommand(t *testing.T) {
	out, err := execute(t, "layers", cellHoc, "--no-cache", "-c", "0", "-r", "0")
	if err != nil {
		t.Fatalf("layers: %v", err)
	}
	if !strings.Contains(out, "4 of 4 nodes reached") {
		t.Errorf("output:\n%s", out)
	}

	out, err = execute(t, "layers", cellHoc, "--no-cache", "-c", "0", "-r", "0", "--depth", "2")
	if err != nil {
		t.Fatalf("layers --depth: %v", err)
	}
	for _, want := range []string{"(1, 1, 0)", "(2, 0, 0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("depth 2 missing %s:\n%s", want, out)
		}
	}
}

func TestLayersCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"depth past end", []string{"--depth", "5"}, errors.ErrCodeDepthNotFound},
		{"bad root", []string{"-r", "x"}, errors.ErrCodeInvalidRoot},
		{"root out of range", []string{"-r", "40"}, errors.ErrCodeInvalidRoot},
		{"missing file", nil, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := cellHoc
			if tt.args == nil {
				input = "missing.hoc"
			}
			args := append([]string{"layers", input, "--no-cache"}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayersCommandJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layers.json")
	if _, err := execute(t, "layers", cellHoc, "--no-cache", "-r", "1,0,0", "--json", "-o", path); err != nil {
		t.Fatalf("layers --json: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Root   [3]float64 `json:"root"`
		Layers []struct {
			Depth int `json:"depth"`
		} `json:"layers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Root != [3]float64{1, 0, 0} || len(doc.Layers) != 2 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "render", cellHoc, "--no-cache", "-r", "0", "-t", "2d,3d", "-f", "svg,json", "-o", filepath.Join(dir, "cell"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"cell_2d.svg", "cell_2d.json", "cell_3d.svg", "cell_3d.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if !strings.Contains(out, "Rendered component 0 (3d)") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.svg")
	if _, err := execute(t, "render", cellHoc, "--no-cache", "-c", "1", "-o", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not an SVG")
	}
}

func TestRenderCommandInvalidView(t *testing.T) {
	_, err := execute(t, "render", cellHoc, "--no-cache", "-t", "tower")
	if !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("err = %v, want INVALID_VIEW", err)
	}
}

func TestRenderCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "vestools.toml")
	if err := os.WriteFile(cfg, []byte("[render]\nview = \"3d\"\nformats = [\"json\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfg, "render", cellHoc, "--no-cache", "-o", filepath.Join(dir, "cfg.json"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "(3d)") {
		t.Errorf("config view not applied:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "cfg.json")); err != nil {
		t.Errorf("config formats not applied: %v", err)
	}

	// Flags win over the file.
	if _, err := execute(t, "--config", cfg, "render", cellHoc, "--no-cache", "-f", "svg", "-o", filepath.Join(dir, "flag.svg")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "flag.svg")); err != nil {
		t.Errorf("flag format not applied: %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "vestools") {
		t.Error("bash completion should mention the program name")
	}
}
