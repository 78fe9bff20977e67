package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
	"github.com/GreatValueCreamSoda/gossimu2/internal/comparator"
	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
	"github.com/GreatValueCreamSoda/gossimu2/internal/history"
	"github.com/GreatValueCreamSoda/gossimu2/internal/metrics"
	"github.com/GreatValueCreamSoda/gossimu2/internal/report"
)

func newVideoCommand(ctx *commandContext) *cobra.Command {
	var (
		frameThreads int
		graph        bool
		verbose      bool
		increment    int
		startFrame   int
		frames       int
		csvPath      string
		backend      string
		noHistory    bool
	)
	srcOverrides := colorspace.NewOverrides()
	dstOverrides := colorspace.NewOverrides()

	cmd := &cobra.Command{
		Use:   "video [flags] <source> <distorted>",
		Short: "Score every sampled frame pair of two videos",
		Long: "Decodes both inputs in lock step and scores the sampled " +
			"frame pairs with SSIMULACRA2. Either input may be a video " +
			"file, a .y4m stream, a .vpy script, or - for a YUV4MPEG2 " +
			"pipe on standard input.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.setup()
			if err != nil {
				return err
			}

			sourcePath, distortedPath := args[0], args[1]
			if sourcePath == "-" && distortedPath == "-" {
				return fmt.Errorf(
					"%w: only one input may read from standard input",
					comparator.ErrConfiguration)
			}
			if frameThreads < 1 {
				frameThreads = cfg.Video.FrameThreads
			}

			source, err := decode.Open(sourcePath, backend)
			if err != nil {
				return err
			}
			distorted, err := decode.Open(distortedPath, backend)
			if err != nil {
				source.Close()
				return err
			}

			srcColor := colorspace.Resolve(source.Details().Stream(), srcOverrides)
			dstColor := colorspace.Resolve(distorted.Details().Stream(), dstOverrides)
			log.Debug().
				Stringer("matrix", srcColor.Matrix).
				Stringer("transfer", srcColor.Transfer).
				Stringer("primaries", srcColor.Primaries).
				Msg("resolved source colorimetry")
			log.Debug().
				Stringer("matrix", dstColor.Matrix).
				Stringer("transfer", dstColor.Transfer).
				Stringer("primaries", dstColor.Primaries).
				Msg("resolved distorted colorimetry")

			scorer, err := metrics.NewSSIMU2(frameThreads, srcColor, dstColor)
			if err != nil {
				source.Close()
				distorted.Close()
				return err
			}
			defer scorer.Close()

			engine, err := comparator.New(source, distorted, scorer,
				comparator.Config{
					Workers:    frameThreads,
					StartFrame: startFrame,
					Increment:  increment,
					Frames:     frames,
				}, log)
			if err != nil {
				source.Close()
				distorted.Close()
				return err
			}
			defer engine.Close()

			out := cmd.OutOrStdout()
			progress := report.NewProgress(engine.Expected())
			engine.OnScore = func(rec comparator.ScoreRecord, avg float64) {
				progress.Observe(avg)
				if verbose {
					fmt.Fprintf(out, "Frame %d: %.8f\n", rec.Frame, rec.Score)
				}
			}

			result, err := engine.Run(cmd.Context())
			progress.Finish()
			if err != nil {
				return err
			}
			if len(result.Records) == 0 {
				return errors.New("no frames were compared")
			}

			report.WriteSummary(out, result.Summary)

			if csvPath != "" {
				if err := report.WriteCSVFile(csvPath, result.Records); err != nil {
					log.Error().Err(err).Str("path", csvPath).
						Msg("csv export failed")
				}
			}
			if graph {
				path := report.ChartPath()
				err := report.WriteChart(path, result.Records,
					cfg.Chart.Width, cfg.Chart.Height)
				if err != nil {
					log.Error().Err(err).Msg("graph export failed")
				} else {
					fmt.Fprintf(out, "\nGraph written to %s\n", path)
				}
			}
			if cfg.History.Enabled && !noHistory {
				if cfg.History.Path == "" {
					log.Debug().Msg("no history path resolved, skipping record")
				} else if err := recordRun(cmd, cfg.History.Path, sourcePath,
					distortedPath, result.Summary); err != nil {
					log.Error().Err(err).Msg("history record failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&frameThreads, "frame-threads", "f", 0,
		"scoring workers (defaults to the configured value)")
	cmd.Flags().BoolVarP(&graph, "graph", "g", false,
		"write a score-over-frame PNG in the current directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"print every frame score as it completes")
	cmd.Flags().IntVar(&increment, "increment", 1,
		"score every Nth frame pair")
	cmd.Flags().IntVar(&startFrame, "start-frame", 0,
		"first frame index to score")
	cmd.Flags().IntVar(&frames, "frames", 0,
		"number of frame pairs to score (0 = all)")
	cmd.Flags().StringVar(&csvPath, "csv", "",
		"write per-frame scores to a CSV file")
	cmd.Flags().StringVar(&backend, "decoder", "auto",
		"decoder backend: auto, ffms2, ffmpeg, y4m, vspipe")
	cmd.Flags().BoolVar(&noHistory, "no-history", false,
		"skip recording this run in the history database")
	registerOverrideFlags(cmd, "src", &srcOverrides)
	registerOverrideFlags(cmd, "dst", &dstOverrides)

	return cmd
}

// recordRun persists one finished comparison in the history database.
func recordRun(cmd *cobra.Command, path, source, distorted string,
	s comparator.Summary) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Insert(cmd.Context(), history.NewRun(source, distorted, s))
}
