package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/mte/internal/analyzer"
	"github.com/ivlev/mte/internal/importer"
	"github.com/ivlev/mte/internal/project"
	"github.com/ivlev/mte/internal/source"
	"github.com/ivlev/mte/internal/system"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <lesson.json>",
		Short: "Convert a lesson export into a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = project.ProjectPath(project.DefaultDir)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := importer.ConvertJSON(data, importer.Options{
				FPS:       cfg.FPS,
				Width:     cfg.Width,
				Height:    cfg.Height,
				RefWidth:  cfg.ReferenceWidth,
				RefHeight: cfg.ReferenceHeight,
				Logger:    log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
			})
			if err != nil {
				return err
			}
			if err := writeProject(cmd, p, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] Успех! Слайдов: %d, проект: %s\n", len(p.Slides), out)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "Output project (default: timestamped file in projects/)")
	cmd.Flags().Bool("yaml", false, "Also write a YAML dump next to the project")
	return cmd
}

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck [pdf|dir]",
		Short: "Build a project from a PDF or an image folder, one slide per page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			stdout := cmd.OutOrStdout()

			// Увеличиваем лимиты системы (для macOS/Linux)
			system.InitResourceLimits()

			inputPath := ""
			if len(args) == 1 {
				inputPath = args[0]
			} else {
				latest, err := system.FindLatestPDF("input/pdf")
				if err != nil {
					return fmt.Errorf("%w. Положите PDF в input/pdf/", err)
				}
				inputPath = latest
				fmt.Fprintf(stdout, "[*] Выбран файл: %s\n", inputPath)
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				nameSource := inputPath
				if fi, err := os.Stat(inputPath); err == nil && fi.IsDir() {
					if latestImg, err := system.FindLatestImage(inputPath); err == nil {
						nameSource = latestImg
					}
				}
				base := strings.TrimSuffix(filepath.Base(nameSource), filepath.Ext(nameSource))
				timestamp := time.Now().Format("2006-01-02_15-04-05")
				out = filepath.Join(project.DefaultDir, fmt.Sprintf("%s_%s.json", strings.ReplaceAll(base, " ", "_"), timestamp))
			}

			focus := cfg.Focus
			if cmd.Flags().Changed("focus") {
				focus, _ = cmd.Flags().GetString("focus")
			}
			det, err := analyzer.NewDetector(focus)
			if err != nil {
				return err
			}

			opts := source.DeckOptions{
				OutDir:   strings.TrimSuffix(out, filepath.Ext(out)) + "_pages",
				BaseDir:  filepath.Dir(out),
				Width:    cfg.Width,
				Height:   cfg.Height,
				FPS:      cfg.FPS,
				DPI:      cfg.DPI,
				Workers:  cfg.Workers,
				Seed:     time.Now().UnixNano(),
				Detector: det,
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flags().Changed("dpi") {
				opts.DPI, _ = cmd.Flags().GetInt("dpi")
			}
			opts.MatchAspect, _ = cmd.Flags().GetBool("match-aspect")
			opts.PageDuration, _ = cmd.Flags().GetFloat64("page-duration")

			audioPath, _ := cmd.Flags().GetString("audio")
			if audioPath == "auto" {
				audioPath = ""
				if latest, err := system.FindLatestAudio("input/audio"); err == nil {
					audioPath = latest
					fmt.Fprintf(stdout, "[*] Выбрано аудио: %s\n", audioPath)
				}
			}
			if audioPath != "" {
				audioDur, err := system.GetAudioDuration(audioPath)
				if err == nil {
					opts.TotalDuration = audioDur
					fmt.Fprintf(stdout, "[*] Длительность установлена по аудио: %.2fs\n", audioDur)
				} else {
					log.Printf("[!] Не удалось получить длительность аудио: %v", err)
				}
			}

			src, err := source.Open(inputPath)
			if err != nil {
				return fmt.Errorf("ошибка инициализации источника: %w", err)
			}
			defer src.Close()

			fmt.Fprintln(stdout, "--- [DECK IMPORT] ---")
			fmt.Fprintf(stdout, "[*] Источник: %s | Страниц: %d\n", inputPath, src.PageCount())
			fmt.Fprintf(stdout, "[*] Холст: %dx%d | DPI: %d | Потоки: %d | Фокус: %s\n", opts.Width, opts.Height, opts.DPI, opts.Workers, focus)
			fmt.Fprintln(stdout, "---------------------")

			p, err := source.BuildDeck(cmd.Context(), src, opts)
			if err != nil {
				return err
			}
			if err := writeProject(cmd, p, out); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "[+++] Успех! Проект сохранен: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "Output project (default: projects/<name>_<timestamp>.json)")
	cmd.Flags().String("audio", "", "Soundtrack whose length is spread across the pages (auto: latest in input/audio)")
	cmd.Flags().Float64("page-duration", source.DefaultPageDuration, "Seconds per page without a soundtrack")
	cmd.Flags().String("focus", "none", "Focus walkthrough detector: contrast, none")
	cmd.Flags().Int("workers", runtime.NumCPU(), "Потоки")
	cmd.Flags().Int("dpi", 150, "DPI")
	cmd.Flags().Bool("match-aspect", false, "Derive the canvas width from the first page")
	cmd.Flags().Bool("yaml", false, "Also write a YAML dump next to the project")
	return cmd
}
