package engine

import (
	"testing"

	"github.com/ivlev/mte/internal/model"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func clipIDs(c []model.Clip) []string {
	return ids(c, func(c model.Clip) string { return c.ID })
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReorderClips(t *testing.T) {
	clips := []model.Clip{{ID: "a", Layer: 1}, {ID: "b", Layer: 7}, {ID: "c", Layer: 3}, {ID: "d", Layer: 3}}

	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down", 0, 2, []string{"b", "c", "a", "d"}},
		{"up", 3, 1, []string{"a", "d", "b", "c"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
		{"clamped", 0, 99, []string{"b", "c", "d", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ReorderClips(clips, tt.from, tt.to)
			if got := clipIDs(out); !sameIDs(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
			for i := range out {
				if out[i].Layer != LayerBase-i {
					t.Errorf("clip %s layer = %d, want %d", out[i].ID, out[i].Layer, LayerBase-i)
				}
				if i > 0 && out[i].Layer >= out[i-1].Layer {
					t.Errorf("layers must strictly decrease")
				}
			}
		})
	}

	if clips[0].ID != "a" || clips[0].Layer != 1 {
		t.Errorf("input slice must not be modified")
	}
}

func TestReorderSlidesKeepsFields(t *testing.T) {
	slides := []model.Slide{{ID: "a", Duration: 1}, {ID: "b", Duration: 2}, {ID: "c", Duration: 3}}
	out := ReorderSlides(slides, 2, 0)
	got := ids(out, func(s model.Slide) string { return s.ID })
	if !sameIDs(got, []string{"c", "a", "b"}) {
		t.Errorf("order = %v", got)
	}
	if out[0].Duration != 3 {
		t.Errorf("slide fields must travel with the slide")
	}
}
