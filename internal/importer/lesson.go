package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Lesson slide as exported by the lesson authoring tool. Field values are
// loosely typed upstream: times may be numbers or clock strings, ids may be
// numbers, style may be an object or a JSON-encoded string.
type Slide struct {
	ID         Text   `json:"id"`
	Title      string `json:"title"`
	Transition string `json:"transition"`
	BG         string `json:"bg"`
	BGImage    string `json:"bg_image"`
	Timeline   []Item `json:"timeline"`
}

// Item is one timeline element of a lesson slide.
type Item struct {
	ElementKey        Text            `json:"element_key"`
	ElementType       string          `json:"element_type"`
	ElementContent    string          `json:"element_content"`
	FileRecord        string          `json:"file_record"`
	Start             Clock           `json:"start"`
	End               Clock           `json:"end"`
	Animation         string          `json:"animation"`
	DurationAnimation Clock           `json:"duration_animation"`
	Position          json.RawMessage `json:"position"`
	Style             json.RawMessage `json:"style"`
}

// Parse accepts either a bare slide array or an object with a "slides"
// array.
func Parse(data []byte) ([]Slide, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Slides []Slide `json:"slides"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parse lesson: %w", err)
		}
		return wrapped.Slides, nil
	}
	var slides []Slide
	if err := json.Unmarshal(data, &slides); err != nil {
		return nil, fmt.Errorf("parse lesson: %w", err)
	}
	return slides, nil
}

// Text is a string that may arrive as a JSON number.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("unexpected id %s", b)
	}
	return nil
}

// Clock is a time in seconds that may arrive as a number or a clock string.
type Clock float64

func (c *Clock) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*c = Clock(x)
	case string:
		*c = Clock(ParseClock(x))
	default:
		*c = 0
	}
	return nil
}

// ParseClock reads "hh:mm:ss(.ms)", "mm:ss(.ms)" or plain seconds. Empty,
// "none" and unparseable input give 0.
func ParseClock(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	return total
}

var (
	numberRe = regexp.MustCompile(`-?\d+(\.\d+)?`)
	leadNum  = regexp.MustCompile(`^\s*[-+]?(\d+(\.\d*)?|\.\d+)`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	hexRe    = regexp.MustCompile(`#([0-9a-fA-F]{3,8})`)
)

// parsePos reads a fractional [x, y] position, as an array or a string
// holding one, and returns it in percent.
func parsePos(raw json.RawMessage) (x, y float64, ok bool) {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return 0, 0, false
	}
	if s, isStr := v.(string); isStr {
		if s == "" || s == "none" {
			return 0, 0, false
		}
		if json.Unmarshal([]byte(s), &v) != nil {
			m := numberRe.FindAllString(s, 2)
			if len(m) < 2 {
				return 0, 0, false
			}
			fx, _ := strconv.ParseFloat(m[0], 64)
			fy, _ := strconv.ParseFloat(m[1], 64)
			return fx * 100, fy * 100, true
		}
	}
	arr, isArr := v.([]any)
	if !isArr || len(arr) < 2 {
		return 0, 0, false
	}
	fx, okx := arr[0].(float64)
	fy, oky := arr[1].(float64)
	if !okx || !oky {
		return 0, 0, false
	}
	return fx * 100, fy * 100, true
}

// style is the element's inline CSS-like properties.
type style map[string]any

func parseStyle(raw json.RawMessage) style {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return style{}
	}
	if s, ok := v.(string); ok {
		if json.Unmarshal([]byte(s), &v) != nil {
			return style{}
		}
	}
	if m, ok := v.(map[string]any); ok {
		return style(m)
	}
	return style{}
}

func (s style) str(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// num reads a number or a numeric string with a unit suffix ("48px").
func (s style) num(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case string:
		m := leadNum.FindString(v)
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
		return f, err == nil
	}
	return 0, false
}

func (s style) isCircle() bool {
	switch v := s["borderRadius"].(type) {
	case string:
		return strings.Contains(v, "100") || v == "50%"
	case float64:
		return v == 999
	}
	return false
}

func cleanHTML(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// bgColor pulls a hex color out of values like "bg-[#02BDC7]".
func bgColor(s string) string {
	if m := hexRe.FindStringSubmatch(s); m != nil {
		return "#" + m[1]
	}
	return "#000000"
}
