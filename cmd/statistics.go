package cmd

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/GreatValueCreamSoda/hdrplay/playback"
)

type summary struct {
	n                             int
	min, max, avg, median, stddev float64
}

func summarize(values []float64) summary {
	n := len(values)
	if n == 0 {
		return summary{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var variance float64
	for _, v := range values {
		d := v - avg
		variance += d * d
	}
	variance /= float64(n)

	return summary{n: n, min: sorted[0], max: sorted[n-1], avg: avg,
		median: median, stddev: math.Sqrt(variance)}
}

func printSummary(w io.Writer, name string, s summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, name)
	fmt.Fprintln(w, strings.Repeat("-", len(name)))
	if s.n == 0 {
		fmt.Fprintln(w, "  no samples")
		return
	}
	fmt.Fprintf(w, "  min     : %.3f\n", s.min)
	fmt.Fprintf(w, "  max     : %.3f\n", s.max)
	fmt.Fprintf(w, "  average : %.3f\n", s.avg)
	fmt.Fprintf(w, "  median  : %.3f\n", s.median)
	fmt.Fprintf(w, "  stddev  : %.3f\n", s.stddev)
}

func printStats(w io.Writer, stats playback.Stats, digest uint64) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Playback summary")
	fmt.Fprintln(w, "================")
	fmt.Fprintf(w, "  decoded         : %d\n", stats.Decoded)
	fmt.Fprintf(w, "  presented       : %d\n", stats.Presented)
	fmt.Fprintf(w, "  dropped         : %d\n", stats.Dropped)
	fmt.Fprintf(w, "  retries         : %d\n", stats.Retries)
	fmt.Fprintf(w, "  synthesized pts : %d\n", stats.SynthesizedPTS)
	fmt.Fprintf(w, "  pts range       : %d .. %d\n", stats.FirstPTS,
		stats.LastPTS)
	fmt.Fprintf(w, "  elapsed         : %s\n", stats.Elapsed.Round(time.Millisecond))
	if secs := stats.Elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, "  throughput      : %.2f fps\n",
			float64(stats.Presented)/secs)
	}
	fmt.Fprintf(w, "  digest          : %016x\n", digest)
}

// intervalRecorder measures the wall clock gap between consecutive
// presentations in milliseconds.
type intervalRecorder struct {
	last      time.Time
	intervals []float64
}

func (r *intervalRecorder) mark(now time.Time) {
	if !r.last.IsZero() {
		r.intervals = append(r.intervals,
			float64(now.Sub(r.last))/float64(time.Millisecond))
	}
	r.last = now
}
