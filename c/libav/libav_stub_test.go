//go:build !ffmpeg

package libav_test

import (
	"errors"
	"testing"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/averror"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
	"github.com/GreatValueCreamSoda/hdrplay/c/libav"
)

func Test_Stub_ServesNativeValues(t *testing.T) {
	if libav.Available() {
		t.Fatal("stub build should not report Available")
	}
	if libav.GetAVErrorEOF() != -541478725 {
		t.Fatalf("unexpected EOF %d", libav.GetAVErrorEOF())
	}
	if libav.GetAVErrorEAGAIN() != int(averror.EAGAIN()) {
		t.Fatal("EAGAIN differs from averror")
	}
	if libav.NoPTSValueInt != avtime.NoPTSValue {
		t.Fatal("NOPTS differs from avtime")
	}
	if libav.AVErrorFromErrno(2) != -2 {
		t.Fatalf("AVERROR(2) = %d", libav.AVErrorFromErrno(2))
	}
	if libav.Strerror(int(averror.ErrEOF)) != "End of file" {
		t.Fatalf("unexpected message %q", libav.Strerror(int(averror.ErrEOF)))
	}
	if libav.PacketSideDataName(avcodec.PktDataICCProfile) != "ICC Profile" {
		t.Fatal("unexpected side data name")
	}
}

func Test_Stub_HandlesUnavailable(t *testing.T) {
	if _, err := libav.AllocCodecParameters(); !errors.Is(err,
		libav.ErrFFmpegNotAvailable) {
		t.Fatalf("expected ErrFFmpegNotAvailable, got %v", err)
	}
}
