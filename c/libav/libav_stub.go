//go:build !ffmpeg

package libav

import (
	"syscall"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/averror"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

var NoPTSValueInt int64 = avtime.NoPTSValue

func Available() bool { return false }

func GetAVErrorEOF() int    { return int(averror.EOF()) }
func GetAVErrorEAGAIN() int { return int(averror.EAGAIN()) }

func AVErrorFromErrno(errno int) int {
	return int(averror.FromErrno(syscall.Errno(errno)))
}

func PacketSideDataTypeCount() int { return len(avcodec.PacketSideDataTypes()) }

func PacketSideDataName(typ avcodec.PacketSideDataType) string {
	if !typ.Valid() {
		return ""
	}
	return typ.String()
}

func Strerror(code int) string { return averror.Code(code).Error() }

type CodecParameters struct{}

func AllocCodecParameters() (*CodecParameters, error) {
	return nil, ErrFFmpegNotAvailable
}

func (p *CodecParameters) Close() error { return nil }

func (p *CodecParameters) AddSideData(avcodec.PacketSideDataType, []byte) error {
	return ErrFFmpegNotAvailable
}

func (p *CodecParameters) GetCodecSideData(
	avcodec.PacketSideDataType) ([]byte, bool) {
	return nil, false
}

func (p *CodecParameters) ToGo() (*avcodec.CodecParameters, error) {
	return nil, ErrFFmpegNotAvailable
}
