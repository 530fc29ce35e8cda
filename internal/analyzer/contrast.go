package analyzer

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ContrastDetector implements edge-based region detection using Sobel operator
type ContrastDetector struct {
	MinBlockArea  int     // Minimum area in pixels²
	MaxBlockRatio float64 // Blocks covering more of the image than this are page frames
	EdgeThreshold float64 // Gradient magnitude threshold
	DilateRadius  int
	DilatePasses  int
}

// NewContrastDetector creates a new contrast-based detector with default settings
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500,  // ~22x22 pixels minimum
		MaxBlockRatio: 0.6,
		EdgeThreshold: 30.0, // Moderate sensitivity
		DilateRadius:  2,
		DilatePasses:  2,
	}
}

// Detect finds regions of interest using edge detection and morphology.
// Rectangles are in the coordinate space of img.
func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, nil
	}

	gray := toGrayscale(img)
	edges := sobel(gray, d.EdgeThreshold)
	grown := edges
	for i := 0; i < d.DilatePasses; i++ {
		grown = grown.dilate(d.DilateRadius)
	}

	total := float64(bounds.Dx() * bounds.Dy())
	var blocks []Block
	for _, r := range grown.components() {
		area := r.Dx() * r.Dy()
		if area < d.MinBlockArea {
			continue
		}
		if d.MaxBlockRatio > 0 && float64(area) > d.MaxBlockRatio*total {
			continue
		}
		blocks = append(blocks, Block{
			Rect:       r.Add(bounds.Min),
			Type:       classify(r),
			Confidence: edges.density(r),
		})
	}
	return blocks, nil
}

// classify: wide, short regions are usually lines of text.
func classify(r image.Rectangle) string {
	if r.Dy() > 0 && float64(r.Dx())/float64(r.Dy()) >= 3 {
		return "text"
	}
	return "image"
}

func toGrayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// mask is a binary image with its origin at (0, 0).
type mask struct {
	w, h int
	bits []bool
}

func newMask(w, h int) *mask {
	return &mask{w: w, h: h, bits: make([]bool, w*h)}
}

func (m *mask) at(x, y int) bool {
	return m.bits[y*m.w+x]
}

func (m *mask) set(x, y int) {
	m.bits[y*m.w+x] = true
}

// density returns the share of set pixels inside r.
func (m *mask) density(r image.Rectangle) float64 {
	r = r.Intersect(image.Rect(0, 0, m.w, m.h))
	if r.Empty() {
		return 0
	}
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if m.at(x, y) {
				n++
			}
		}
	}
	return float64(n) / float64(r.Dx()*r.Dy())
}

var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobel(gray *image.Gray, threshold float64) *mask {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	out := newMask(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sx, sy int
			for ky := -1; ky <= 1; ky++ {
				row := (y+ky)*gray.Stride + x
				for kx := -1; kx <= 1; kx++ {
					p := int(gray.Pix[row+kx])
					sx += p * sobelX[ky+1][kx+1]
					sy += p * sobelY[ky+1][kx+1]
				}
			}
			if math.Hypot(float64(sx), float64(sy)) > threshold {
				out.set(x, y)
			}
		}
	}
	return out
}

// dilate grows set pixels by radius in a square neighbourhood. The two
// passes (rows, then columns) give the same result as a full square kernel.
func (m *mask) dilate(radius int) *mask {
	if radius <= 0 {
		return m
	}
	rows := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) {
				continue
			}
			for dx := max(0, x-radius); dx <= min(m.w-1, x+radius); dx++ {
				rows.set(dx, y)
			}
		}
	}
	out := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !rows.at(x, y) {
				continue
			}
			for dy := max(0, y-radius); dy <= min(m.h-1, y+radius); dy++ {
				out.set(x, dy)
			}
		}
	}
	return out
}

// components returns bounding rectangles of 4-connected set regions.
func (m *mask) components() []image.Rectangle {
	visited := make([]bool, len(m.bits))
	var rects []image.Rectangle
	var stack []image.Point

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			i := y*m.w + x
			if !m.bits[i] || visited[i] {
				continue
			}
			minX, minY, maxX, maxY := x, y, x, y
			visited[i] = true
			stack = append(stack[:0], image.Point{X: x, Y: y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				minX, maxX = min(minX, p.X), max(maxX, p.X)
				minY, maxY = min(minY, p.Y), max(maxY, p.Y)

				for _, n := range [4]image.Point{{X: p.X + 1, Y: p.Y}, {X: p.X - 1, Y: p.Y}, {X: p.X, Y: p.Y + 1}, {X: p.X, Y: p.Y - 1}} {
					if n.X < 0 || n.X >= m.w || n.Y < 0 || n.Y >= m.h {
						continue
					}
					j := n.Y*m.w + n.X
					if m.bits[j] && !visited[j] {
						visited[j] = true
						stack = append(stack, n)
					}
				}
			}
			rects = append(rects, image.Rect(minX, minY, maxX+1, maxY+1))
		}
	}
	return rects
}
