package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/hdrplay/api"
	"github.com/GreatValueCreamSoda/hdrplay/sources"
)

var probeJSON bool

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Index a file and print its stream and HDR metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := cfg.SourceOptions()
	bar := newIndexBar()
	opts.Progress = bar.update

	src, err := sources.Open(ctx, args[0], opts)
	bar.finish()
	if err != nil {
		return err
	}
	defer src.Close()

	result, err := api.Describe(src)
	if err != nil {
		return err
	}

	if probeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printProbe(cmd.OutOrStdout(), result)
	return nil
}

func printProbe(w io.Writer, r *api.ProbeResult) {
	row := func(name string, value any) {
		fmt.Fprintf(w, "%s %v\n", colorText(cyan, fmt.Sprintf("%-16s", name)),
			value)
	}
	row("path", r.Path)
	row("container", r.Format)
	row("codec", r.Codec)
	row("resolution", fmt.Sprintf("%dx%d", r.Width, r.Height))
	row("frame rate", r.FrameRate)
	row("time base", r.TimeBase)
	row("frames", r.NumFrames)
	row("duration", fmt.Sprintf("%.3fs", r.Duration))
	row("hdr", r.HDR.String())
	row("peak luminance", fmt.Sprintf("%.0f nits", r.PeakLuminance))
	for _, sd := range r.SideData {
		row("side data", fmt.Sprintf("%s (%d bytes)", sd.Name, sd.Size))
	}
}

// indexBar draws indexing progress in bytes. The total is only known once
// ffms2 reports it, so the bar is created on the first update.
type indexBar struct {
	bar *progressbar.ProgressBar
}

func newIndexBar() *indexBar { return &indexBar{} }

func (b *indexBar) update(current, total int64) {
	if b.bar == nil {
		b.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetDescription("Indexing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
	}
	b.bar.Set64(current)
}

func (b *indexBar) finish() {
	if b.bar != nil {
		b.bar.Finish()
	}
}

func init() {
	probeCmd.Flags().BoolVar(&probeJSON, "json", false,
		"Print the probe result as JSON")
	addFlagToHelpGroup(probeCmd.Flags(), "json", "Output Options")
	RootCmd.AddCommand(probeCmd)
}
