// Package playback drives a media.Source through a decode, timestamp and
// present pipeline.
package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GreatValueCreamSoda/hdrplay/averror"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
	"github.com/GreatValueCreamSoda/hdrplay/blockingpool"
	"github.com/GreatValueCreamSoda/hdrplay/media"
)

// ProgressCallback is called after each presented frame. total is 0 when the
// frame count is unknown.
type ProgressCallback func(done int, total int)

type Options struct {
	// Frames buffered between each pipeline stage.
	QueueDepth int
	// How many times in a row a EAGAIN from the source is retried before it
	// is treated as a failure.
	MaxRetries int
	// Delay before the first retry, doubled after each one up to
	// maxRetryBackoff.
	RetryBackoff time.Duration
	// Present frames at their timestamps instead of as fast as possible.
	Realtime bool
	// Drop frames whose timestamp does not move forward.
	DropLate bool
	// Stop after this many decoded frames, 0 for the whole stream.
	MaxFrames int

	Progress ProgressCallback
}

const maxRetryBackoff = 100 * time.Millisecond

func DefaultOptions() Options {
	return Options{QueueDepth: 4, MaxRetries: 8,
		RetryBackoff: time.Millisecond}
}

// Stats summarises a finished run.
type Stats struct {
	Decoded        int
	Presented      int
	Retries        int
	SynthesizedPTS int
	Dropped        int
	FirstPTS       int64
	LastPTS        int64
	Elapsed        time.Duration
}

var (
	ErrNilSource     = errors.New("source must be non nil")
	ErrNilSink       = errors.New("sink must be non nil")
	ErrAlreadyRun    = errors.New("player has already been run")
	ErrRetriesFailed = errors.New("source kept returning EAGAIN")
)

// Player owns the pipeline for one source. The zero value is not valid; use
// NewPlayer.
type Player struct {
	src  media.Source
	sink Sink
	opts Options
	info *media.StreamInfo

	framePool blockingpool.BlockingPool[*media.Frame]

	decodedChan chan *media.Frame
	presentChan chan *media.Frame

	stats Stats
	ran   bool
}

// NewPlayer validates its inputs and preallocates the frame buffers sized to
// the source's planes. A zero QueueDepth or RetryBackoff takes its
// DefaultOptions value. A zero MaxRetries disables retries and a zero
// MaxFrames plays the whole stream.
func NewPlayer(src media.Source, sink Sink, opts Options) (*Player, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if sink == nil {
		return nil, ErrNilSink
	}

	def := DefaultOptions()
	if opts.QueueDepth < 1 {
		opts.QueueDepth = def.QueueDepth
	}
	if opts.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be >= 0, got %d",
			opts.MaxRetries)
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = def.RetryBackoff
	}

	p := &Player{src: src, sink: sink, opts: opts, info: src.StreamInfo()}
	if p.info == nil {
		return nil, errors.New("source has no stream info")
	}

	// One buffer per queue slot in each channel, plus the one being decoded
	// and the one being presented.
	buffers := 2*opts.QueueDepth + 2
	p.framePool = blockingpool.NewBlockingPool[*media.Frame](buffers)
	for range buffers {
		p.framePool.Put(p.info.NewFrame())
	}

	p.decodedChan = make(chan *media.Frame, opts.QueueDepth)
	p.presentChan = make(chan *media.Frame, opts.QueueDepth)
	return p, nil
}

// Run plays the source to the end, or until ctx ends or a stage fails. A
// Player can only be run once.
func (p *Player) Run(parentCtx context.Context) (Stats, error) {
	if p.ran {
		return Stats{}, ErrAlreadyRun
	}
	p.ran = true

	p.stats.FirstPTS, p.stats.LastPTS = avtime.NoPTSValue, avtime.NoPTSValue
	start := time.Now()

	group, ctx := errgroup.WithContext(parentCtx)

	group.Go(func() error {
		defer close(p.decodedChan)
		return p.decodeLoop(ctx)
	})

	group.Go(func() error {
		defer close(p.presentChan)
		return p.timestampLoop(ctx)
	})

	group.Go(func() error { return p.presentLoop(ctx) })

	err := group.Wait()
	p.stats.Elapsed = time.Since(start)
	return p.stats, err
}

func (p *Player) totalFrames() int {
	if p.opts.MaxFrames > 0 && (p.info.NumFrames == 0 ||
		p.opts.MaxFrames < p.info.NumFrames) {
		return p.opts.MaxFrames
	}
	return p.info.NumFrames
}

// ----------------------------------------------------------------------------
// Decoder
// ----------------------------------------------------------------------------

// decodeLoop pulls frames from the source until EOF.
func (p *Player) decodeLoop(ctx context.Context) error {
	for p.opts.MaxFrames == 0 || p.stats.Decoded < p.opts.MaxFrames {
		frame, err := p.framePool.GetContext(ctx)
		if err != nil {
			return err
		}

		err = p.readFrame(ctx, frame)
		if averror.IsEOF(err) {
			p.framePool.Put(frame)
			return nil
		}
		if err != nil {
			return err
		}
		p.stats.Decoded++

		select {
		case <-ctx.Done():
			return ctx.Err()
		case p.decodedChan <- frame:
		}
	}
	return nil
}

// readFrame calls ReadFrame, retrying EAGAIN with exponential backoff.
func (p *Player) readFrame(ctx context.Context, frame *media.Frame) error {
	backoff := p.opts.RetryBackoff

	for attempt := 0; ; attempt++ {
		err := p.src.ReadFrame(ctx, frame)
		if !averror.IsAgain(err) {
			return err
		}
		if attempt >= p.opts.MaxRetries {
			return fmt.Errorf("%w after %d retries: %w", ErrRetriesFailed,
				attempt, err)
		}
		p.stats.Retries++

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff = min(backoff*2, maxRetryBackoff)
	}
}

// ----------------------------------------------------------------------------
// Timestamps
// ----------------------------------------------------------------------------

// timestampLoop fills in missing timestamps from the previous frame and, if
// asked to, drops frames that would go back in time.
func (p *Player) timestampLoop(ctx context.Context) error {
	var prevPTS, prevDuration int64
	havePrev := false
	nominal := p.info.FrameDuration()

	for frame := range withContext(ctx, p.decodedChan) {
		if frame.PTS == avtime.NoPTSValue {
			switch {
			case !havePrev:
				frame.PTS = 0
			case prevDuration > 0:
				frame.PTS = prevPTS + prevDuration
			default:
				frame.PTS = prevPTS + max(nominal, 1)
			}
			p.stats.SynthesizedPTS++
		}

		if p.opts.DropLate && havePrev && frame.PTS <= prevPTS {
			p.stats.Dropped++
			p.framePool.Put(frame)
			continue
		}

		prevPTS, prevDuration, havePrev = frame.PTS, frame.Duration, true

		select {
		case <-ctx.Done():
			return ctx.Err()
		case p.presentChan <- frame:
		}
	}
	return ctx.Err()
}

// ----------------------------------------------------------------------------
// Presenter
// ----------------------------------------------------------------------------

// presentLoop hands frames to the sink, pacing them against the wall clock
// when running in real time.
func (p *Player) presentLoop(ctx context.Context) error {
	var clockStart time.Time
	total := p.totalFrames()

	for frame := range withContext(ctx, p.presentChan) {
		if p.stats.FirstPTS == avtime.NoPTSValue {
			p.stats.FirstPTS = frame.PTS
			clockStart = time.Now()
		}

		if p.opts.Realtime {
			if err := p.waitUntil(ctx, clockStart, frame.PTS); err != nil {
				p.framePool.Put(frame)
				return err
			}
		}

		err := p.sink.Present(ctx, frame)
		index := frame.Index
		p.stats.LastPTS = frame.PTS
		p.framePool.Put(frame)
		if err != nil {
			return fmt.Errorf("present frame %d: %w", index, err)
		}

		p.stats.Presented++
		if p.opts.Progress != nil {
			p.opts.Progress(p.stats.Presented, total)
		}
	}
	return ctx.Err()
}

func (p *Player) waitUntil(ctx context.Context, clockStart time.Time,
	pts int64) error {
	offset, ok := avtime.ToDuration(pts-p.stats.FirstPTS, p.info.TimeBase)
	if !ok {
		return nil
	}

	wait := time.Until(clockStart.Add(offset))
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// withContext mirrors ch until it is closed or ctx ends, so a range over the
// result always terminates on cancellation.
func withContext[T any](ctx context.Context, ch <-chan T) <-chan T {
	out := make(chan T, 1)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
