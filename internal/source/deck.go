package source

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/mte/internal/analyzer"
	"github.com/ivlev/mte/internal/director"
	"github.com/ivlev/mte/internal/model"
	"github.com/ivlev/mte/internal/system"
)

const (
	DefaultPageDuration = 8.0
	MinPageDuration     = 1.0
	pageLayer           = 1
	focusLayer          = 10
)

// DeckOptions controls how a paged source becomes a project.
type DeckOptions struct {
	OutDir  string // page PNGs are written here
	BaseDir string // image clip src is made relative to this dir when set
	Width   int
	Height  int
	FPS     int
	DPI     int
	Workers int

	// MatchAspect keeps Height and derives Width from the first page.
	MatchAspect bool

	PageDuration  float64
	TotalDuration float64 // when > 0, spread across pages
	Seed          int64

	Detector analyzer.Detector // nil disables the focus walkthrough
	Director *director.Director
}

func (o *DeckOptions) withDefaults() {
	if o.Width <= 0 {
		o.Width = 1920
	}
	if o.Height <= 0 {
		o.Height = 1080
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.DPI <= 0 {
		o.DPI = 150
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.PageDuration <= 0 {
		o.PageDuration = DefaultPageDuration
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.Detector != nil && o.Director == nil {
		o.Director = director.NewDirector()
	}
}

type page struct {
	path   string
	blocks []analyzer.Block
}

// BuildDeck renders every page of src onto the canvas, writes it as PNG and
// returns a project with one slide per page. Pages are processed by a pool of
// opts.Workers goroutines; the first failure cancels the rest.
func BuildDeck(ctx context.Context, src Source, opts DeckOptions) (model.Project, error) {
	opts.withDefaults()

	n := src.PageCount()
	if n == 0 {
		return model.Project{}, fmt.Errorf("источник не содержит страниц/кадров")
	}
	if opts.MatchAspect {
		if w, h, err := src.GetPageDimensions(0); err == nil && h > 0 {
			opts.Width = int(float64(opts.Height) * (w / h))
			if opts.Width%2 != 0 {
				opts.Width++
			}
		}
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return model.Project{}, err
	}

	durations := make([]float64, n)
	if opts.TotalDuration > 0 {
		durations = DistributeDurations(opts.TotalDuration, n, rand.New(rand.NewSource(opts.Seed)))
	} else {
		for i := range durations {
			durations[i] = opts.PageDuration
		}
	}

	canvas := image.Rect(0, 0, opts.Width, opts.Height)
	pages := make([]page, n)
	var ready atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := src.RenderPage(i, opts.DPI)
			if err != nil {
				return fmt.Errorf("render page %d: %w", i+1, err)
			}
			path := filepath.Join(opts.OutDir, fmt.Sprintf("page_%03d.png", i+1))
			blocks, err := writePage(path, img, canvas, opts.Detector)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			pages[i] = page{path: path, blocks: blocks}
			fmt.Printf("[>] Ready: %d/%d\n", ready.Add(1), n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Project{}, err
	}

	p := model.Project{FPS: opts.FPS, Width: opts.Width, Height: opts.Height}
	for i, pg := range pages {
		slide := model.NewSlide(i + 1)
		slide.Name = fmt.Sprintf("Page %d", i+1)
		slide.Duration = durations[i]
		slide.Clips = append(slide.Clips, pageClip(i, opts.srcFor(pg.path), durations[i]))
		if opts.Detector != nil {
			slide.Clips = append(slide.Clips, opts.Director.Walkthrough(pg.blocks, canvas, durations[i], focusLayer)...)
		}
		p.Slides = append(p.Slides, slide)
	}
	return p, nil
}

func (o DeckOptions) srcFor(path string) string {
	if o.BaseDir != "" {
		if rel, err := filepath.Rel(o.BaseDir, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

func pageClip(i int, src string, duration float64) model.Clip {
	c := model.NewClip(model.EntityImage, 0, pageLayer)
	c.Name = fmt.Sprintf("Page %d", i+1)
	c.Duration = duration
	c.W, c.H = model.Ptr(100.0), model.Ptr(100.0)
	c.InAnim, c.OutAnim = model.AnimNone, model.AnimNone
	c.InDur, c.OutDur = model.Ptr(0.0), model.Ptr(0.0)
	c.Payload = &model.ImagePayload{Src: src, ObjectFit: model.FitContain}
	return c
}

// writePage letterboxes img onto a pooled canvas frame, runs the detector on
// the result and writes it as PNG.
func writePage(path string, img image.Image, canvas image.Rectangle, det analyzer.Detector) ([]analyzer.Block, error) {
	dst := system.GetImage(canvas)
	defer system.PutImage(dst)

	draw.Draw(dst, canvas, image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, FitRect(img.Bounds(), canvas), img, img.Bounds(), draw.Over, nil)

	var blocks []analyzer.Block
	if det != nil {
		var err error
		if blocks, err = det.Detect(dst); err != nil {
			return nil, fmt.Errorf("detect: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return nil, err
	}
	return blocks, f.Close()
}

// FitRect returns the largest rectangle with src's aspect ratio centered in
// dst.
func FitRect(src, dst image.Rectangle) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	if sw == 0 || sh == 0 {
		return dst
	}
	scale := math.Min(float64(dst.Dx())/sw, float64(dst.Dy())/sh)
	w := int(math.Round(sw * scale))
	h := int(math.Round(sh * scale))
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// DistributeDurations splits total seconds over n pages. The first page
// deviates from the even share by at most ±15%, every next page by at most
// ±15% from its predecessor; the result is rescaled to sum to total.
func DistributeDurations(total float64, n int, r *rand.Rand) []float64 {
	if n <= 0 {
		return nil
	}
	base := total / float64(n)
	durations := make([]float64, n)

	variation := r.Float64()*0.3 - 0.15 // [-0.15, 0.15]
	durations[0] = base * (1 + variation)
	for i := 1; i < n; i++ {
		variation := r.Float64()*0.3 - 0.15
		durations[i] = math.Max(MinPageDuration, durations[i-1]*(1+variation))
	}

	// Масштабируем, чтобы сумма была в точности total
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	scale := total / sum
	for i := range durations {
		durations[i] *= scale
	}
	return durations
}
