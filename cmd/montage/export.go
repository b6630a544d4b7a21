package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivlev/montage/internal/config"
	"github.com/ivlev/montage/internal/export"
	"github.com/ivlev/montage/internal/project"
	"github.com/ivlev/montage/internal/render"
)

func newExportCmd() *cobra.Command {
	var (
		output     string
		configPath string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Render a project snapshot to a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			tl := p.Timeline()

			settings := export.Settings{
				Format:       cfg.Export.Format,
				Quality:      cfg.Export.Quality,
				FPS:          cfg.Export.FPS,
				Bitrate:      cfg.Export.Bitrate,
				IncludeAudio: true,
			}
			if workers <= 0 {
				workers = cfg.Export.Workers
			}

			tmpDir, err := os.MkdirTemp("", "montage-export-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmpDir)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("[*] Exporting %q (%.2fs) -> %s\n", p.Name, tl.Duration(), output)

			enc := &ffmpegEncoder{tmpDir: tmpDir, output: output}
			job := export.NewJob(tl, settings, enc,
				export.WithWorkers(workers),
				export.WithProgress(func(pr export.Progress) {
					if pr.ETASeconds >= 0 {
						fmt.Printf("[*] %-10s %5.1f%%  ETA %.0fs\n", pr.Phase, pr.Percent, pr.ETASeconds)
					} else {
						fmt.Printf("[*] %-10s %5.1f%%\n", pr.Phase, pr.Percent)
					}
				}),
			)

			res := job.Run(ctx)
			switch res.State {
			case export.StateCompleted:
				fmt.Printf("[*] Done: %s\n", res.URL)
				return nil
			case export.StateCancelled:
				return fmt.Errorf("export cancelled")
			default:
				return fmt.Errorf("export failed: %s", res.Reason)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "output.mp4", "output file path")
	cmd.Flags().StringVar(&configPath, "config", "montage.yaml", "config file path")
	cmd.Flags().IntVar(&workers, "workers", 0, "encode workers (0 = auto)")
	return cmd
}

// ffmpegEncoder shells each segment out to ffmpeg and concatenates the
// parts into the deliverable.
type ffmpegEncoder struct {
	tmpDir string
	output string
}

func (e *ffmpegEncoder) EncodeSegment(ctx context.Context, seg export.Segment, settings export.Settings) (string, error) {
	part := filepath.Join(e.tmpDir, fmt.Sprintf("part_%04d.%s", seg.Index, settings.Format))

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%f", seg.Clip.TrimStart),
		"-t", fmt.Sprintf("%f", seg.Clip.Duration),
		"-i", seg.Clip.Source,
		"-vf", render.EqFilter(seg.Uniforms),
		"-r", fmt.Sprintf("%d", settings.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-crf", fmt.Sprintf("%d", (100-settings.Quality)/2),
		"-preset", "medium",
	}
	if !settings.IncludeAudio {
		args = append(args, "-an")
	}
	args = append(args, part)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg error: %v, output: %s", err, string(out))
	}
	return part, nil
}

func (e *ffmpegEncoder) Finalize(ctx context.Context, parts []string, settings export.Settings) (string, error) {
	listPath := filepath.Join(e.tmpDir, "inputs.txt")
	f, err := os.Create(listPath)
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		absPath, _ := filepath.Abs(p)
		fmt.Fprintf(f, "file '%s'\n", absPath)
	}
	f.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat", "-safe", "0", "-i", listPath,
		"-c", "copy", e.output,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
	}
	return e.output, nil
}
