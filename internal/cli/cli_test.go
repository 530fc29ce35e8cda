package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/mte/internal/model"
	"github.com/ivlev/mte/internal/project"
	"github.com/ivlev/mte/internal/renderer"
)

// run executes the root command with cfgPath as --config and returns what
// it wrote to stdout and stderr.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func setup(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("MTE_AUTOSAVE_DIR", filepath.Join(dir, "autosave"))
	t.Setenv("MTE_SPEED", "")
	return dir, filepath.Join(dir, "none.yaml")
}

func newProject(t *testing.T, cfgPath, path string) {
	t.Helper()
	if _, err := run(t, cfgPath, "new", path); err != nil {
		t.Fatalf("new: %v", err)
	}
}

func TestNewInfoEval(t *testing.T) {
	dir, cfg := setup(t)
	path := filepath.Join(dir, "p.json")
	newProject(t, cfg, path)

	out, err := run(t, cfg, "info", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"slides: 2", "s1", "s2", "bgm"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, cfg, "eval", path, "--slide", "1", "--time", "2")
	if err != nil {
		t.Fatal(err)
	}
	var f renderer.Frame
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("eval output is not a frame: %v\n%s", err, out)
	}
	if f.SlideID != "s1" || f.Time != 2 || len(f.Clips) == 0 {
		t.Errorf("unexpected frame %+v", f)
	}

	if _, err := run(t, cfg, "eval", path, "--slide", "5"); err == nil {
		t.Errorf("Expected error for missing slide")
	}
}

func TestQR(t *testing.T) {
	dir, cfg := setup(t)
	path := filepath.Join(dir, "p.json")
	newProject(t, cfg, path)

	if _, err := run(t, cfg, "qr", path, "--url", "https://example.com", "--start", "2", "--duration", "3"); err != nil {
		t.Fatal(err)
	}
	p, err := project.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	clips := p.Slides[0].Clips
	qr := clips[len(clips)-1]
	if qr.Type != model.EntityImage || qr.Layer != 101 || qr.Start != 2 || qr.Duration != 3 {
		t.Errorf("unexpected QR clip %+v", qr)
	}

	if _, err := run(t, cfg, "qr", path); err == nil {
		t.Errorf("Expected error without --url")
	}
}

func TestImportExport(t *testing.T) {
	dir, cfg := setup(t)
	path := filepath.Join(dir, "p.json")
	newProject(t, cfg, path)

	p, err := project.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	p.Slides = p.Slides[1:]
	if err := project.WriteFile(p, path); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, cfg, "import", path); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, cfg, "export")
	if err != nil {
		t.Fatal(err)
	}
	got, err := project.Import([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Slides) != 1 || got.Slides[0].ID != "s2" {
		t.Errorf("export did not return the imported project: %+v", got.Slides)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, cfg, "import", bad); err == nil {
		t.Errorf("Expected error for a document without slides")
	}
	out, err = run(t, cfg, "export")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := project.Import([]byte(out)); len(got.Slides) != 1 {
		t.Errorf("rejected import changed the autosave")
	}
}

func TestConvert(t *testing.T) {
	dir, cfg := setup(t)
	in := filepath.Join(dir, "lesson.json")
	lesson := `[{"id": 7, "title": "Intro", "transition": "push", "bg": "#102030",
		"timeline": [{"element_key": 1, "element_type": "text", "element_content": "<b>Hello</b>",
			"start": "00:01", "end": "00:05", "animation": "flyin", "position": [10, 20]}]}]`
	if err := os.WriteFile(in, []byte(lesson), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.json")
	if _, err := run(t, cfg, "convert", in, "-o", out, "--yaml"); err != nil {
		t.Fatal(err)
	}
	p, err := project.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Slides) != 1 || p.Slides[0].ID != "7" || p.Slides[0].Name != "Intro" {
		t.Errorf("unexpected slides %+v", p.Slides)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.yaml")); err != nil {
		t.Errorf("yaml dump missing: %v", err)
	}
}

func TestDeck(t *testing.T) {
	dir, _ := setup(t)
	cfg := filepath.Join(dir, "mte.yaml")
	if err := os.WriteFile(cfg, []byte("width: 320\nheight: 180\nworkers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages := filepath.Join(dir, "pages")
	if err := os.MkdirAll(pages, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"01.png", "02.png"} {
		img := image.NewRGBA(image.Rect(0, 0, 160, 90))
		img.Set(10, 10, color.White)
		f, err := os.Create(filepath.Join(pages, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	out := filepath.Join(dir, "deck.json")
	stdout, err := run(t, cfg, "deck", pages, "-o", out, "--page-duration", "4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "DECK IMPORT") {
		t.Errorf("missing header:\n%s", stdout)
	}
	p, err := project.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 320 || p.Height != 180 || len(p.Slides) != 2 {
		t.Fatalf("unexpected deck %dx%d with %d slides", p.Width, p.Height, len(p.Slides))
	}
	for _, s := range p.Slides {
		if s.Duration != 4 || len(s.Clips) != 1 {
			t.Errorf("slide %s: duration %v, clips %d", s.ID, s.Duration, len(s.Clips))
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "deck_pages", "page_001.png")); err != nil {
		t.Errorf("rendered page missing: %v", err)
	}
}

func TestPlay(t *testing.T) {
	dir, cfg := setup(t)
	path := filepath.Join(dir, "p.json")
	newProject(t, cfg, path)

	out, err := run(t, cfg, "play", path, "--slide", "2", "--from", "5.5", "--no-continue", "--speed", "3", "--timeout", "5s")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Слайд 2/2") || !strings.Contains(out, "Остановлено") {
		t.Errorf("unexpected play output:\n%s", out)
	}

	if _, err := run(t, cfg, "play", path, "--slide", "3"); err == nil {
		t.Errorf("Expected error for slide out of range")
	}
}

func TestBadConfig(t *testing.T) {
	dir, _ := setup(t)
	cfg := filepath.Join(dir, "mte.yaml")
	if err := os.WriteFile(cfg, []byte("speed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, cfg, "new", filepath.Join(dir, "p.json")); err == nil {
		t.Errorf("Expected validation error")
	}
}
