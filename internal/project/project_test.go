package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ivlev/mte/internal/model"
)

func TestImportRejectsMissingSlides(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"not json", `slides: []`},
		{"slides null", `{"slides": null}`},
		{"slides object", `{"slides": {"a": 1}}`},
		{"array root", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.data))
			if !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("Expected ErrMalformedDocument, got %v", err)
			}
		})
	}
}

func TestImportAcceptsEmptySlides(t *testing.T) {
	p, err := Import([]byte(`{"fps":30,"width":1920,"height":1080,"slides":[]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Slides) != 0 || p.FPS != 30 {
		t.Errorf("unexpected project %+v", p)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	p := model.DefaultProject()
	data, err := Export(p)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(p, back) {
		t.Errorf("round trip changed the project")
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "p.json")

	p := model.DefaultProject()
	if err := WriteFile(p, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind")
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(p, back) {
		t.Errorf("file round trip changed the project")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := WriteYAML(model.DefaultProject(), path); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	data, _ := os.ReadFile(path)
	for _, want := range []string{"slides:", "inAnim: fadeIn", "content: Mini Timeline Editor"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("yaml dump lacks %q", want)
		}
	}
}

func TestFindLatestProject(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.json", "b.json", "c.json"}
	base := time.Now().Add(-time.Hour)
	for i, f := range files {
		path := filepath.Join(dir, f)
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if f == "b.json" {
			mt = base.Add(30 * time.Minute)
		}
		os.Chtimes(path, mt, mt)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)

	latest, err := FindLatestProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(latest) != "b.json" {
		t.Errorf("Expected b.json, got %s", latest)
	}

	if _, err := FindLatestProject(t.TempDir()); err == nil {
		t.Errorf("Expected error for empty directory")
	}
}

func TestProjectPath(t *testing.T) {
	path := ProjectPath("")
	if !strings.HasPrefix(path, DefaultDir+string(filepath.Separator)+"project_") || !strings.HasSuffix(path, ".json") {
		t.Errorf("unexpected path %s", path)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "00:00"},
		{-3, "00:00"},
		{5.9, "00:05"},
		{65, "01:05"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725.4, "01:02:05"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.sec); got != tt.want {
			t.Errorf("FormatClock(%v) = %s, want %s", tt.sec, got, tt.want)
		}
	}
}
