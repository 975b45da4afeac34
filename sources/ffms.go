// Package sources implements media.Source on top of ffms2.
package sources

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"syscall"
	"time"

	ffms "github.com/GreatValueCreamSoda/goffms2"
	"github.com/GreatValueCreamSoda/gopixfmts"
	vship "github.com/GreatValueCreamSoda/govship"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/averror"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
	"github.com/GreatValueCreamSoda/hdrplay/media"
)

// IndexProgress is told how many bytes of the file have been indexed.
type IndexProgress func(current, total int64)

type Options struct {
	// Decoder threads, 0 means half the logical CPUs.
	Threads  int
	SeekMode ffms.SeekMode
	Progress IndexProgress
}

func DefaultOptions() Options {
	return Options{SeekMode: ffms.SeekNormal}
}

// FFmsSource decodes the first video track of a file with ffms2. It is not
// safe for concurrent use.
type FFmsSource struct {
	video      *ffms.VideoSource
	info       media.StreamInfo
	colorspace vship.Colorspace
	next       int
}

var _ media.Source = (*FFmsSource)(nil)

// Open indexes path and prepares its first video track for decoding. ctx
// cancels indexing, which is the slow part for large files.
func Open(ctx context.Context, path string, opts Options) (*FFmsSource, error) {
	indexer, info, err := ffms.CreateIndexer(path)
	if err != nil {
		return nil, newError("FFMS_CreateIndexer", info, err)
	}

	// Names are only available before indexing consumes the indexer.
	format, _ := indexer.GetFormatName()
	var codecNames []string
	if n, err := indexer.GetNumTracks(); err == nil {
		for i := range n {
			name, _ := indexer.GetCodecName(i)
			codecNames = append(codecNames, name)
		}
	}

	index, info, err := doIndexing(ctx, indexer, opts.Progress)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, newError("FFMS_DoIndexing2", info, err)
	}
	defer index.Close()

	track, info, err := index.GetFirstTrackOfType(ffms.TypeVideo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoVideoTrack,
			newError("FFMS_GetFirstTrackOfType", info, err))
	}

	threads := opts.Threads
	if threads <= 0 {
		threads = max(runtime.NumCPU()/2, 1)
	}
	video, info, err := ffms.CreateVideoSource(path, index, track, threads,
		opts.SeekMode)
	if err != nil {
		return nil, newError("FFMS_CreateVideoSource", info, err)
	}

	s := &FFmsSource{video: video}
	if err = s.probe(path, format, codecName(codecNames, track)); err != nil {
		video.Close()
		return nil, err
	}
	return s, nil
}

// indexMu guards goffms2's process wide progress callback registry, which
// is a plain map written on registration and read from the indexing thread.
var indexMu sync.Mutex

// doIndexing consumes indexer. The callback entry is removed again before
// returning, since DoIndexing invalidates the indexer without doing so.
func doIndexing(ctx context.Context, indexer *ffms.Indexer,
	progress IndexProgress) (*ffms.Index, *ffms.ErrorInfo, error) {
	indexMu.Lock()
	defer indexMu.Unlock()
	defer indexer.Close()

	err := indexer.SetProgressCallback(func(current, total int64) int {
		if ctx.Err() != nil {
			return 1
		}
		if progress != nil {
			progress(current, total)
		}
		return 0
	})
	if err != nil {
		return nil, nil, err
	}

	return indexer.DoIndexing(ffms.IEHAbort)
}

func codecName(names []string, track int) string {
	if track < 0 || track >= len(names) {
		return ""
	}
	return names[track]
}

// probe pins the output format to the native one and learns the decoded
// layout and colour description from frame 0.
func (s *FFmsSource) probe(path, format, codec string) error {
	props, err := s.video.GetVideoProperties()
	if err != nil {
		return newError("FFMS_GetVideoProperties", nil, err)
	}

	ff, info, err := s.video.GetFrame(0)
	if err != nil {
		return newError("FFMS_GetFrame", info, err)
	}

	_, info, err = s.video.SetOutputFormatV2([]int{ff.EncodedPixelFormat},
		ff.EncodedWidth, ff.EncodedHeight, ffms.ResizerBicubic)
	if err != nil {
		return newError("FFMS_SetOutputFormatV2", info, err)
	}

	ff, info, err = s.video.GetFrame(0)
	if err != nil {
		return newError("FFMS_GetFrame", info, err)
	}

	if s.colorspace, err = renderColorspace(&ff); err != nil {
		return err
	}

	s.info = media.StreamInfo{
		Path:      path,
		Format:    format,
		Codec:     codecParameters(codec, &props, &ff),
		FrameRate: avtime.Rational{Num: int32(props.FPSNumerator), Den: int32(props.FPSDenominator)},
		TimeBase:  avtime.Rational{Num: int32(props.FPSDenominator), Den: int32(props.FPSNumerator)},
		NumFrames: props.NumFrames,
	}

	if span := props.LastEndTime - props.FirstTime; span > 0 {
		s.info.Duration = time.Duration(span * float64(time.Second))
	} else if d, ok := avtime.ToDuration(int64(props.NumFrames),
		s.info.TimeBase); ok {
		s.info.Duration = d
	}

	for i := range 3 {
		s.info.PlaneSizes[i] = len(ff.Data[i])
		s.info.PlaneStrides[i] = ff.Linesize[i]
	}
	return nil
}

// codecParameters translates ffms2's stream and first frame properties into
// codec parameters, turning the HDR properties back into the side data
// entries libavformat would have exported.
func codecParameters(codec string, props *ffms.VideoProperties,
	ff *ffms.Frame) *avcodec.CodecParameters {
	par := &avcodec.CodecParameters{
		CodecType:      avcodec.MediaTypeVideo,
		CodecName:      codec,
		Width:          ff.EncodedWidth,
		Height:         ff.EncodedHeight,
		PixelFormat:    gopixfmts.PixelFormat(ff.EncodedPixelFormat),
		ColorRange:     gopixfmts.ColorRange(ff.ColorRange),
		ColorSpace:     gopixfmts.ColorSpace(ff.ColorSpace),
		ColorTransfer:  gopixfmts.ColorTransferCharacteristic(ff.TransferCharateristics),
		ColorPrimaries: gopixfmts.ColorPrimaries(ff.ColorPrimaries),
		ChromaLocation: gopixfmts.ChromaLocation(ff.ChromaLocation),
		SampleAspectRatio: avtime.Rational{Num: int32(props.SARNum),
			Den: int32(props.SARDen)},
		FrameRate: avtime.Rational{Num: int32(props.FPSNumerator),
			Den: int32(props.FPSDenominator)},
	}

	if props.HasMasteringDisplayPrimaries != 0 ||
		props.HasMasteringDisplayLuminance != 0 {
		md := masteringDisplay(props)
		par.AddSideData(avcodec.PktDataMasteringDisplayMetadata, md.Marshal())
	}

	if props.HasContentLightLevel != 0 {
		cll := avcodec.ContentLightMetadata{
			MaxCLL:  props.ContentLightLevelMax,
			MaxFALL: props.ContentLightLevelAverage,
		}
		par.AddSideData(avcodec.PktDataContentLightLevel, cll.Marshal())
	}

	// ffms2 reports av_display_rotation_get of the container matrix.
	if props.Rotation != 0 {
		m := avcodec.DisplayRotationSet(-float64(props.Rotation))
		par.AddSideData(avcodec.PktDataDisplayMatrix, m.Marshal())
	}

	// Frame 0 stands in for the stream when it carries HDR10+ metadata.
	if len(ff.HDR10Plus) > 0 {
		par.AddSideData(avcodec.PktDataDynamicHDR10Plus,
			slices.Clone(ff.HDR10Plus))
	}

	// ffms2 hides the configuration record itself, only the RPU tells us the
	// stream is Dolby Vision. Profile and level stay unknown.
	if len(ff.DolbyVisionRPU) > 0 {
		conf := avcodec.DOVIConfig{VersionMajor: 1, RPUPresent: true,
			BLPresent: true}
		par.AddSideData(avcodec.PktDataDOVIConf, conf.Marshal())
	}

	return par
}

func masteringDisplay(props *ffms.VideoProperties) avcodec.MasteringDisplayMetadata {
	chroma := func(v float64) avtime.Rational {
		return avtime.FromFloat(v, avcodec.ChromaDenominator)
	}
	luma := func(v float64) avtime.Rational {
		return avtime.FromFloat(v, avcodec.LuminanceDenominator)
	}

	var md avcodec.MasteringDisplayMetadata
	if props.HasMasteringDisplayPrimaries != 0 {
		md.HasPrimaries = true
		for i := range md.DisplayPrimaries {
			md.DisplayPrimaries[i] = [2]avtime.Rational{
				chroma(props.MasteringDisplayPrimariesX[i]),
				chroma(props.MasteringDisplayPrimariesY[i]),
			}
		}
		md.WhitePoint = [2]avtime.Rational{
			chroma(props.MasteringDisplayWhitePointX),
			chroma(props.MasteringDisplayWhitePointY),
		}
	}
	if props.HasMasteringDisplayLuminance != 0 {
		md.HasLuminance = true
		md.MinLuminance = luma(props.MasteringDisplayMinLuminance)
		md.MaxLuminance = luma(props.MasteringDisplayMaxLuminance)
	}
	return md
}

func (s *FFmsSource) StreamInfo() *media.StreamInfo { return &s.info }

// Colorspace is the render description of the decoded frames.
func (s *FFmsSource) Colorspace() *vship.Colorspace { return &s.colorspace }

// Seek makes the next ReadFrame return frame n.
func (s *FFmsSource) Seek(n int) error {
	if n < 0 || n > s.info.NumFrames {
		return &Error{Op: "seek", Code: averror.FromErrno(syscall.EINVAL),
			Message: fmt.Sprintf("frame %d outside [0, %d]", n,
				s.info.NumFrames)}
	}
	s.next = n
	return nil
}

// ReadFrame decodes the next frame in presentation order. PTS counts frames,
// matching a time base of one frame duration.
func (s *FFmsSource) ReadFrame(ctx context.Context, frame *media.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.next >= s.info.NumFrames {
		return averror.ErrEOF
	}

	ff, info, err := s.video.GetFrame(s.next)
	if err != nil {
		return newError("FFMS_GetFrame", info, err)
	}

	frame.Reset()
	err = frame.Write([3][]byte{ff.Data[0], ff.Data[1], ff.Data[2]},
		[3]int64{int64(ff.Linesize[0]), int64(ff.Linesize[1]),
			int64(ff.Linesize[2])})
	if err != nil {
		return fmt.Errorf("frame %d: %w", s.next, err)
	}

	frame.Index = s.next
	frame.PTS = int64(s.next)
	frame.Duration = 1
	frame.KeyFrame = ff.KeyFrame != 0
	if len(ff.HDR10Plus) > 0 {
		frame.SetSideData(avcodec.PktDataDynamicHDR10Plus, ff.HDR10Plus)
	}
	frame.DolbyVisionRPU = append(frame.DolbyVisionRPU[:0],
		ff.DolbyVisionRPU...)

	s.next++
	return nil
}

func (s *FFmsSource) Close() error {
	if s.video == nil {
		return nil
	}
	err := s.video.Close()
	s.video = nil
	return err
}
