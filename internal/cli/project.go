package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/mte/internal/config"
	"github.com/ivlev/mte/internal/engine"
	"github.com/ivlev/mte/internal/model"
	"github.com/ivlev/mte/internal/project"
	"github.com/ivlev/mte/internal/source"
	"github.com/ivlev/mte/internal/store"
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Write the default project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := project.ProjectPath(project.DefaultDir)
			if len(args) == 1 {
				path = args[0]
			}

			p := model.DefaultProject()
			p.FPS, p.Width, p.Height = cfg.FPS, cfg.Width, cfg.Height
			if err := writeProject(cmd, p, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] Проект создан: %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("yaml", false, "Also write a YAML dump next to the project")
	return cmd
}

func writeProject(cmd *cobra.Command, p model.Project, path string) error {
	if err := project.WriteFile(p, path); err != nil {
		return err
	}
	if dump, _ := cmd.Flags().GetBool("yaml"); dump {
		return project.WriteYAML(p, strings.TrimSuffix(path, filepath.Ext(path))+".yaml")
	}
	return nil
}

// resolveProject returns args[0], or the latest project in the default dir.
func resolveProject(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	latest, err := project.FindLatestProject(project.DefaultDir)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[*] Выбран файл: %s\n", latest)
	return latest, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "List slides and clips of a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveProject(cmd, args)
			if err != nil {
				return err
			}
			p, err := project.ReadFile(path)
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), path, p)
			return nil
		},
	}
}

func printProject(w io.Writer, path string, p model.Project) {
	total := 0.0
	for _, s := range p.Slides {
		total += s.Duration
	}
	fmt.Fprintf(w, "[*] %s | %dx%d @ %d FPS | slides: %d | %s\n",
		filepath.Base(path), p.Width, p.Height, p.FPS, len(p.Slides), project.FormatClock(total))
	for i, s := range p.Slides {
		state := ""
		if !s.IsEnabled() {
			state = " (disabled)"
		}
		fmt.Fprintf(w, "[%d] %s %q %s %s/%s%s\n", i+1, s.ID, s.Name,
			project.FormatClock(s.Duration), s.Transition.In, s.Transition.Out, state)
		for _, c := range s.Clips {
			fmt.Fprintf(w, "    %-12s %-6s %6.2f-%-6.2f L%-5d %s", c.ID, c.Type, c.Start, c.End(), c.Layer, c.Name)
			if n := len(c.Actions); n > 0 {
				fmt.Fprintf(w, " (actions: %d)", n)
			}
			fmt.Fprintln(w)
		}
	}
}

// openSlide loads path into a headless editor positioned on slide n (1-based).
func openSlide(path string, n int) (*engine.Editor, model.Slide, error) {
	p, err := project.ReadFile(path)
	if err != nil {
		return nil, model.Slide{}, err
	}
	if n < 1 || n > len(p.Slides) {
		return nil, model.Slide{}, fmt.Errorf("slide %d out of range [1, %d]", n, len(p.Slides))
	}
	e := engine.NewWithProject(p, engine.Options{Logger: log.New(os.Stderr, "", log.LstdFlags)})
	s := p.Slides[n-1]
	if err := e.SetActiveSlide(s.ID); err != nil {
		return nil, model.Slide{}, err
	}
	return e, s, nil
}

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Print the visible clips and their render state at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("slide")
			t, _ := cmd.Flags().GetFloat64("time")

			e, _, err := openSlide(args[0], n)
			if err != nil {
				return err
			}
			e.Seek(t)
			frame, err := e.Frame()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(frame, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().Int("slide", 1, "Slide number, 1-based")
	cmd.Flags().Float64("time", 0, "Slide-relative time in seconds")
	return cmd
}

func newQRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr <file>",
		Short: "Append a QR code image clip to a slide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("slide")
			url, _ := cmd.Flags().GetString("url")
			start, _ := cmd.Flags().GetFloat64("start")
			dur, _ := cmd.Flags().GetFloat64("duration")
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = args[0]
			}

			e, s, err := openSlide(args[0], n)
			if err != nil {
				return err
			}
			start = math.Max(0, math.Min(start, s.Duration-engine.MinClipDuration))
			if dur <= 0 || start+dur > s.Duration {
				dur = s.Duration - start
			}
			layer := 0
			for _, c := range s.Clips {
				layer = max(layer, c.Layer)
			}

			clip, err := source.QRClip(url, start, dur, layer+1)
			if err != nil {
				return err
			}
			if err := e.InsertClip(clip); err != nil {
				return err
			}
			if err := writeProject(cmd, e.Project(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] QR %s добавлен на слайд %d: %s\n", clip.ID, n, out)
			return nil
		},
	}
	cmd.Flags().Int("slide", 1, "Slide number, 1-based")
	cmd.Flags().String("url", "", "Encoded URL")
	cmd.Flags().Float64("start", 0, "Clip start in seconds")
	cmd.Flags().Float64("duration", 0, "Clip duration in seconds (0: until slide end)")
	cmd.Flags().StringP("out", "o", "", "Output file (default: overwrite input)")
	cmd.Flags().Bool("yaml", false, "Also write a YAML dump next to the project")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

// autosaveEditor opens the editor over the autosave slot.
func autosaveEditor(cfg config.Config) (*engine.Editor, *store.FileStore) {
	st := store.NewFileStore(cfg.AutosaveDir, cfg.AutosaveKey)
	return engine.New(engine.Options{
		Store:            st,
		Speed:            cfg.Speed,
		PlayAcrossSlides: cfg.PlayAcrossSlides,
		DriftTolerance:   cfg.DriftTolerance,
		PxPerSec:         cfg.PxPerSec,
		RowHeight:        cfg.RowHeight,
	}), st
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the autosaved project with a project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			e, st := autosaveEditor(cfg)
			if err := e.Import(data); err != nil {
				return fmt.Errorf("import %s: %w", filepath.Base(args[0]), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] Импортировано в %s\n", st.Path())
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the autosaved project (or the default one) to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			e, _ := autosaveEditor(cfg)
			data, err := e.Export()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] Экспортировано: %s\n", args[0])
			return nil
		},
	}
}
