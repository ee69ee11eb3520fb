// Command wldcli is a thin front end over the wld decoder: header
// inspection, kill-count reporting, and tile search. It owns none of
// the decoding logic itself — every subcommand just calls into the
// wld package and formats the result.
package main

import (
	"fmt"
	"image/png"
	"os"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/kaedenn/wld"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wldcli:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "wldcli",
		Short: "Inspect Terraria world files",
	}
	root.AddCommand(newHeadersCmd(), newKillsCmd(), newFindCmd(), newImageCmd())
	return root
}

func loadWorld(path string) (*wld.WorldModel, *wld.Diagnostics, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = " decoding " + path
	sp.Start()
	defer sp.Stop()

	diag := &wld.Diagnostics{}
	model, err := wld.Decode(buf, wld.WithDiagnostics(diag))
	if err != nil {
		return nil, diag, err
	}
	return model, diag, nil
}

func reportDiagnostics(diag *wld.Diagnostics) {
	for _, w := range diag.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
}

func newHeadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "headers <path>",
		Short: "Print the world's header and flag summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, diag, err := loadWorld(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Title:    %s\n", model.Flags.Title)
			fmt.Printf("Version:  %d\n", model.Header.Version)
			fmt.Printf("Size:     %d x %d\n", model.Width, model.Height)
			fmt.Printf("HardMode: %v\n", model.Flags.HardMode)
			fmt.Printf("Expert:   %v\n", model.Flags.ExpertMode)
			reportDiagnostics(diag)
			if diag.HasWarnings() {
				os.Exit(1)
			}
			return nil
		},
	}
}

func newKillsCmd() *cobra.Command {
	var sortByCount bool
	cmd := &cobra.Command{
		Use:   "kills <path>",
		Short: "Print per-banner kill counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, diag, err := loadWorld(args[0])
			if err != nil {
				return err
			}
			counts := model.KillCounts()
			if sortByCount {
				sort.Slice(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
			}
			for _, kc := range counts {
				if kc.Count == 0 {
					continue
				}
				fmt.Printf("%5d  banner %d\n", kc.Count, kc.BannerID)
			}
			reportDiagnostics(diag)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sortByCount, "sort-kills", false, "sort output by descending kill count")
	return cmd
}

func newImageCmd() *cobra.Command {
	var noTiles, noWalls, noLiquid, noBG bool
	cmd := &cobra.Command{
		Use:   "image <path> <out.png>",
		Short: "Render the world's tile grid to a PNG, one pixel per tile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, diag, err := loadWorld(args[0])
			if err != nil {
				return err
			}
			mapper := wld.NewColorMapper()
			img := mapper.RenderImage(model, wld.LookupOptions{
				NoTiles: noTiles, NoWalls: noWalls, NoLiquid: noLiquid, NoBG: noBG,
			})
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}
			reportDiagnostics(diag)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noTiles, "no-tiles", false, "omit active tiles")
	cmd.Flags().BoolVar(&noWalls, "no-walls", false, "omit walls")
	cmd.Flags().BoolVar(&noLiquid, "no-liquid", false, "omit liquids")
	cmd.Flags().BoolVar(&noBG, "no-bg", false, "omit the sky/dirt/rock background bands")
	return cmd
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <path> <expr>",
		Short: "Print coordinates of tiles matching a match expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, diag, err := loadWorld(args[0])
			if err != nil {
				return err
			}
			matcher, err := wld.ParseMatch(args[1])
			if err != nil {
				return err
			}
			for pt, t := range model.Tiles() {
				if matcher.MatchTile(t, pt.Y) {
					fmt.Printf("(%d, %d)\n", pt.X, pt.Y)
				}
			}
			reportDiagnostics(diag)
			return nil
		},
	}
}
