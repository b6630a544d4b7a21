package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/montage/internal/project"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <project.json>",
		Short: "Print a summary of a project snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return err
			}
			tl := p.Timeline()

			fmt.Printf("[*] Project: %s (schema %s)\n", p.Name, p.Version)
			fmt.Printf("[*] Canvas: %dx%d @ %d FPS | Duration: %.2fs\n",
				p.Settings.Width, p.Settings.Height, p.Settings.FPS, tl.Duration())

			for _, track := range tl.Tracks {
				fmt.Printf("[*] Track %q (%s): %d clips\n", track.Name, track.Type, len(track.Clips))
				for _, clip := range track.Clips {
					fmt.Printf("    %-24s %8.2fs - %8.2fs  %s\n",
						clip.Name, clip.StartTime, clip.End(), clip.Source)
				}
			}

			if len(tl.Transitions) > 0 {
				fmt.Printf("[*] Transitions: %d\n", len(tl.Transitions))
				for _, tr := range tl.Transitions {
					status := "ok"
					if _, _, ok := tl.ResolveTransition(tr); !ok {
						status = "dangling"
					}
					fmt.Printf("    %-14s %.2fs  %s -> %s  [%s]\n",
						tr.Type, tr.Duration, tr.FromClipID, tr.ToClipID, status)
				}
			}

			f := tl.Filters
			if f.Brightness != 0 || f.Contrast != 0 || f.Saturation != 0 {
				fmt.Printf("[*] Filters: brightness=%.0f contrast=%.0f saturation=%.0f\n",
					f.Brightness, f.Contrast, f.Saturation)
			}
			return nil
		},
	}
}
