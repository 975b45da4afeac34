package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/hdrplay/config"
	"github.com/GreatValueCreamSoda/hdrplay/media"
	"github.com/GreatValueCreamSoda/hdrplay/playback"
	"github.com/GreatValueCreamSoda/hdrplay/sources"
)

const (
	decodeGroup   = "Decode Options"
	playbackGroup = "Playback Options"
)

var playFlags struct {
	threads    int
	seekMode   string
	queueDepth int
	realtime   bool
	dropLate   bool
	maxFrames  int
	noProgress bool
}

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Decode a file through the playback pipeline",
	Long: `play decodes every frame of the first video track, assigns
presentation timestamps and hands frames to a hashing sink, optionally paced
at the stream's frame rate.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

// applyPlayFlags overrides configuration values with flags the user set.
func applyPlayFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("threads") {
		c.Decode.Threads = playFlags.threads
	}
	if flags.Changed("seek-mode") {
		c.Decode.SeekMode = playFlags.seekMode
	}
	if flags.Changed("queue-depth") {
		c.Decode.QueueDepth = playFlags.queueDepth
	}
	if flags.Changed("realtime") {
		c.Playback.Realtime = playFlags.realtime
	}
	if flags.Changed("drop-late") {
		c.Playback.DropLate = playFlags.dropLate
	}
	if flags.Changed("frames") {
		c.Playback.MaxFrames = playFlags.maxFrames
	}
	return c.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := applyPlayFlags(cmd, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	srcOpts := cfg.SourceOptions()
	bar := newIndexBar()
	if !playFlags.noProgress {
		srcOpts.Progress = bar.update
	}
	src, err := sources.Open(ctx, args[0], srcOpts)
	bar.finish()
	if err != nil {
		return err
	}
	defer src.Close()

	log.Print(streamSummary(src.StreamInfo()))

	stats, digest, intervals, err := play(ctx, src, cfg.PlaybackOptions(),
		!playFlags.noProgress)
	printStats(os.Stderr, stats, digest)
	printSummary(os.Stderr, "Presentation interval (ms)", summarize(intervals))
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func streamSummary(info *media.StreamInfo) string {
	codec, width, height := "unknown", 0, 0
	if par := info.Codec; par != nil {
		codec, width, height = par.CodecName, par.Width, par.Height
	}
	return fmt.Sprintf("%s: %dx%d %s, %d frames at %s fps", info.Path, width,
		height, codec, info.NumFrames, info.FrameRate)
}

func play(ctx context.Context, src media.Source, opts playback.Options,
	showProgress bool) (playback.Stats, uint64, []float64, error) {
	var bar *progressbar.ProgressBar
	if showProgress {
		opts.Progress = func(done, total int) {
			if bar == nil {
				// A negative max draws a spinner for unknown lengths.
				if total <= 0 {
					total = -1
				}
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Playing"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
				)
			}
			bar.Add(1)
		}
	}

	sink := playback.NewNullSink()
	var recorder intervalRecorder
	present := playback.SinkFunc(func(ctx context.Context,
		frame *media.Frame) error {
		recorder.mark(time.Now())
		return sink.Present(ctx, frame)
	})

	player, err := playback.NewPlayer(src, present, opts)
	if err != nil {
		return playback.Stats{}, 0, nil, err
	}
	stats, err := player.Run(ctx)
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	return stats, sink.Sum64(), recorder.intervals, err
}

func init() {
	flags := playCmd.Flags()

	flags.IntVarP(&playFlags.threads, "threads", "t", 0,
		"Decoder threads, 0 picks half the CPUs")
	flags.StringVar(&playFlags.seekMode, "seek-mode", "normal",
		"ffms2 seek mode [linear_no_rw, linear, normal, unsafe, aggressive]")
	flags.IntVar(&playFlags.queueDepth, "queue-depth", 4,
		"Frames buffered between pipeline stages")
	for _, name := range []string{"threads", "seek-mode", "queue-depth"} {
		addFlagToHelpGroup(flags, name, decodeGroup)
	}

	flags.BoolVar(&playFlags.realtime, "realtime", false,
		"Pace presentation at the stream frame rate")
	flags.BoolVar(&playFlags.dropLate, "drop-late", false,
		"Drop frames whose timestamp does not move forward")
	flags.IntVarP(&playFlags.maxFrames, "frames", "n", 0,
		"Stop after this many frames, 0 plays everything")
	flags.BoolVar(&playFlags.noProgress, "no-progress", false,
		"Hide the progress bars")
	for _, name := range []string{"realtime", "drop-late", "frames",
		"no-progress"} {
		addFlagToHelpGroup(flags, name, playbackGroup)
	}

	RootCmd.AddCommand(playCmd)
}
