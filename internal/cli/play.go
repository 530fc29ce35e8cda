package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/mte/internal/engine"
	"github.com/ivlev/mte/internal/media"
	"github.com/ivlev/mte/internal/project"
	"github.com/ivlev/mte/internal/store"
	"github.com/ivlev/mte/internal/system"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Play a project headlessly in real time (the autosave when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("speed") {
				cfg.Speed, _ = cmd.Flags().GetFloat64("speed")
			}
			if noCont, _ := cmd.Flags().GetBool("no-continue"); noCont {
				cfg.PlayAcrossSlides = false
			}
			startSlide, _ := cmd.Flags().GetInt("slide")
			from, _ := cmd.Flags().GetFloat64("from")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			stats, _ := cmd.Flags().GetBool("stats")

			opts := engine.Options{
				Media:            &media.Factory{},
				Speed:            cfg.Speed,
				PlayAcrossSlides: cfg.PlayAcrossSlides,
				DriftTolerance:   cfg.DriftTolerance,
				PxPerSec:         cfg.PxPerSec,
				RowHeight:        cfg.RowHeight,
			}
			var e *engine.Editor
			if len(args) == 1 {
				p, err := project.ReadFile(args[0])
				if err != nil {
					return err
				}
				e = engine.NewWithProject(p, opts)
			} else {
				opts.Store = store.NewFileStore(cfg.AutosaveDir, cfg.AutosaveKey)
				e = engine.New(opts)
			}

			p := e.Project()
			if len(p.Slides) == 0 {
				return engine.ErrNoSlide
			}
			if startSlide < 1 || startSlide > len(p.Slides) {
				return fmt.Errorf("slide %d out of range [1, %d]", startSlide, len(p.Slides))
			}
			if err := e.SetActiveSlide(p.Slides[startSlide-1].ID); err != nil {
				return err
			}
			e.Seek(from)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return play(ctx, cmd, e, cfg.FrameRate, stats)
		},
	}
	cmd.Flags().Float64("speed", 1, "Playback speed, 0.25-3")
	cmd.Flags().Bool("no-continue", false, "Stop at the end of the slide instead of moving on")
	cmd.Flags().Int("slide", 1, "Slide to start on, 1-based")
	cmd.Flags().Float64("from", 0, "Start time within the slide")
	cmd.Flags().Duration("timeout", 0, "Stop after this wall time (0: no limit)")
	cmd.Flags().Bool("stats", false, "Print a resource report at the end")
	return cmd
}

// play runs the frame loop and reports slide switches until playback ends.
func play(ctx context.Context, cmd *cobra.Command, e *engine.Editor, frameRate int, stats bool) error {
	out := cmd.OutOrStdout()
	started := time.Now()
	slides := e.Project().Slides
	announce := func(i int) {
		s := slides[i]
		fmt.Fprintf(out, "[>] Слайд %d/%d: %s (%s)\n", i+1, len(slides), s.Name, project.FormatClock(s.Duration))
	}

	current := e.ActiveIndex()
	announce(current)
	done := e.Start(ctx, frameRate)

	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()

	var runErr error
loop:
	for {
		select {
		case runErr = <-done:
			break loop
		case <-poll.C:
			if i := e.ActiveIndex(); i != current && i >= 0 {
				current = i
				announce(i)
			}
		}
	}
	if i := e.ActiveIndex(); i != current && i >= 0 {
		announce(i)
	}

	e.Pause()
	fmt.Fprintf(out, "[+++] Остановлено на %s (слайд %d), за %.2fs\n",
		project.FormatClock(e.Time()), e.ActiveIndex()+1, time.Since(started).Seconds())

	if stats {
		r, err := system.ResourceReport()
		if err != nil {
			fmt.Fprintf(out, "[!] %v\n", err)
		}
		fmt.Fprint(out, r)
	}

	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		return nil
	}
	return runErr
}
