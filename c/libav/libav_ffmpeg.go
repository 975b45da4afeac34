//go:build ffmpeg

package libav

/*
#cgo pkg-config: libavcodec libavutil
#include <errno.h>
#include <string.h>
#include <libavcodec/avcodec.h>
#include <libavcodec/packet.h>
#include <libavutil/error.h>

static int get_averror_eof(void) { return AVERROR_EOF; }
static int averror_from_errno(int e) { return AVERROR(e); }
static int get_averror_eagain(void) { return AVERROR(EAGAIN); }
static int64_t get_av_nopts_value(void) { return AV_NOPTS_VALUE; }
static int get_pkt_data_nb(void) { return AV_PKT_DATA_NB; }

static const AVPacketSideData *get_codec_side_data(
    const AVCodecParameters *par, enum AVPacketSideDataType type) {
    if (!par || par->nb_coded_side_data <= 0)
        return NULL;
    return av_packet_side_data_get(par->coded_side_data,
                                   par->nb_coded_side_data, type);
}

static int add_codec_side_data(AVCodecParameters *par,
    enum AVPacketSideDataType type, const uint8_t *data, size_t size) {
    AVPacketSideData *sd = av_packet_side_data_new(&par->coded_side_data,
        &par->nb_coded_side_data, type, size, 0);
    if (!sd)
        return AVERROR(ENOMEM);
    if (size)
        memcpy(sd->data, data, size);
    return 0;
}
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/GreatValueCreamSoda/gopixfmts"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/averror"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

// NoPTSValueInt is AV_NOPTS_VALUE as compiled into libavutil's headers.
var NoPTSValueInt = int64(C.get_av_nopts_value())

func Available() bool { return true }

func GetAVErrorEOF() int    { return int(C.get_averror_eof()) }
func GetAVErrorEAGAIN() int { return int(C.get_averror_eagain()) }

func AVErrorFromErrno(errno int) int {
	return int(C.averror_from_errno(C.int(errno)))
}

// PacketSideDataTypeCount is AV_PKT_DATA_NB of the linked libavcodec.
func PacketSideDataTypeCount() int { return int(C.get_pkt_data_nb()) }

// PacketSideDataName calls av_packet_side_data_name.
func PacketSideDataName(typ avcodec.PacketSideDataType) string {
	name := C.av_packet_side_data_name(C.enum_AVPacketSideDataType(typ))
	if name == nil {
		return ""
	}
	return C.GoString(name)
}

// Strerror calls av_strerror.
func Strerror(code int) string {
	buf := make([]byte, averror.MaxStringSize)
	C.av_strerror(C.int(code), (*C.char)(unsafe.Pointer(&buf[0])),
		C.size_t(len(buf)))
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

// CodecParameters owns a C allocated AVCodecParameters.
type CodecParameters struct {
	par *C.AVCodecParameters
}

func AllocCodecParameters() (*CodecParameters, error) {
	par := C.avcodec_parameters_alloc()
	if par == nil {
		return nil, ErrAllocFailed
	}
	return &CodecParameters{par}, nil
}

func (p *CodecParameters) checkValidity() error {
	if p == nil || p.par == nil {
		return ErrInvalidHandle
	}
	return nil
}

// Close frees the parameters and their side data. Closing twice is a no-op.
func (p *CodecParameters) Close() error {
	if err := p.checkValidity(); err != nil {
		return nil
	}
	C.avcodec_parameters_free(&p.par)
	return nil
}

// AddSideData copies data into a new coded side data entry, replacing any
// entry of the same type.
func (p *CodecParameters) AddSideData(typ avcodec.PacketSideDataType,
	data []byte) error {
	if err := p.checkValidity(); err != nil {
		return err
	}

	var ptr *C.uint8_t
	if len(data) > 0 {
		ptr = (*C.uint8_t)(unsafe.Pointer(&data[0]))
	}
	ret := C.add_codec_side_data(p.par, C.enum_AVPacketSideDataType(typ), ptr,
		C.size_t(len(data)))
	return averror.Wrap("av_packet_side_data_new", int(ret))
}

// GetCodecSideData returns a copy of the first entry of type typ.
func (p *CodecParameters) GetCodecSideData(
	typ avcodec.PacketSideDataType) ([]byte, bool) {
	if p.checkValidity() != nil {
		return nil, false
	}

	sd := C.get_codec_side_data(p.par, C.enum_AVPacketSideDataType(typ))
	if sd == nil {
		return nil, false
	}
	return C.GoBytes(unsafe.Pointer(sd.data), C.int(sd.size)), true
}

// ToGo copies the parameters into Go memory.
func (p *CodecParameters) ToGo() (*avcodec.CodecParameters, error) {
	if err := p.checkValidity(); err != nil {
		return nil, err
	}
	par := p.par

	out := &avcodec.CodecParameters{
		CodecType:      avcodec.MediaType(par.codec_type),
		CodecName:      C.GoString(C.avcodec_get_name(par.codec_id)),
		Width:          int(par.width),
		Height:         int(par.height),
		PixelFormat:    gopixfmts.PixelFormat(par.format),
		ColorRange:     gopixfmts.ColorRange(par.color_range),
		ColorSpace:     gopixfmts.ColorSpace(par.color_space),
		ColorTransfer:  gopixfmts.ColorTransferCharacteristic(par.color_trc),
		ColorPrimaries: gopixfmts.ColorPrimaries(par.color_primaries),
		ChromaLocation: gopixfmts.ChromaLocation(par.chroma_location),
		SampleAspectRatio: avtime.Rational{
			Num: int32(par.sample_aspect_ratio.num),
			Den: int32(par.sample_aspect_ratio.den),
		},
		FrameRate: avtime.Rational{
			Num: int32(par.framerate.num),
			Den: int32(par.framerate.den),
		},
		BitRate: int64(par.bit_rate),
	}

	if par.nb_coded_side_data > 0 {
		entries := unsafe.Slice(par.coded_side_data, int(par.nb_coded_side_data))
		for _, sd := range entries {
			out.CodedSideData = append(out.CodedSideData, avcodec.PacketSideData{
				Type: avcodec.PacketSideDataType(sd._type),
				Data: C.GoBytes(unsafe.Pointer(sd.data), C.int(sd.size)),
			})
		}
	}
	return out, nil
}
