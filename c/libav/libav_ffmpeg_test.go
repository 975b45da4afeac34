//go:build ffmpeg

package libav_test

import (
	"bytes"
	"syscall"
	"testing"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/averror"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
	"github.com/GreatValueCreamSoda/hdrplay/c/libav"
)

func Test_Constants_MatchHeaders(t *testing.T) {
	if !libav.Available() {
		t.Fatal("ffmpeg build should report Available")
	}
	if libav.GetAVErrorEOF() != int(averror.ErrEOF) {
		t.Fatalf("AVERROR_EOF %d != %d", libav.GetAVErrorEOF(), averror.ErrEOF)
	}
	if libav.GetAVErrorEAGAIN() != int(averror.EAGAIN()) {
		t.Fatalf("AVERROR(EAGAIN) %d != %d", libav.GetAVErrorEAGAIN(),
			averror.EAGAIN())
	}
	if libav.NoPTSValueInt != avtime.NoPTSValue {
		t.Fatalf("AV_NOPTS_VALUE %d != %d", libav.NoPTSValueInt,
			avtime.NoPTSValue)
	}
	for errno := 1; errno < 128; errno++ {
		if libav.AVErrorFromErrno(errno) != int(averror.FromErrno(
			syscall.Errno(errno))) {
			t.Fatalf("AVERROR(%d) differs", errno)
		}
	}
}

func Test_Strerror_MatchesTagTable(t *testing.T) {
	for _, code := range averror.All() {
		if got := libav.Strerror(int(code)); got != code.Error() {
			t.Fatalf("%s: av_strerror %q, native %q", code.Name(), got,
				code.Error())
		}
	}
}

func Test_SideDataNames_MatchHeaders(t *testing.T) {
	n := min(libav.PacketSideDataTypeCount(), len(avcodec.PacketSideDataTypes()))
	for i := range n {
		typ := avcodec.PacketSideDataType(i)
		if got := libav.PacketSideDataName(typ); got != typ.String() {
			t.Fatalf("side data %d: libavcodec %q, native %q", i, got,
				typ.String())
		}
	}
}

func Test_CodecParameters_SideData(t *testing.T) {
	par, err := libav.AllocCodecParameters()
	if err != nil {
		t.Fatal(err)
	}
	defer par.Close()

	if _, ok := par.GetCodecSideData(avcodec.PktDataDisplayMatrix); ok {
		t.Fatal("fresh parameters should have no side data")
	}

	matrix := avcodec.DisplayRotationSet(90).Marshal()
	cll := avcodec.ContentLightMetadata{MaxCLL: 1000, MaxFALL: 400}.Marshal()

	if err = par.AddSideData(avcodec.PktDataContentLightLevel, cll); err != nil {
		t.Fatal(err)
	}
	if err = par.AddSideData(avcodec.PktDataDisplayMatrix, matrix); err != nil {
		t.Fatal(err)
	}

	got, ok := par.GetCodecSideData(avcodec.PktDataDisplayMatrix)
	if !ok || !bytes.Equal(got, matrix) {
		t.Fatalf("display matrix lookup returned %v, %v", got, ok)
	}

	goPar, err := par.ToGo()
	if err != nil {
		t.Fatal(err)
	}
	native := avcodec.GetCodecSideData(goPar, avcodec.PktDataContentLightLevel)
	if native == nil || !bytes.Equal(native.Data, cll) {
		t.Fatalf("native lookup after ToGo returned %+v", native)
	}

	par.Close()
	if _, err = par.ToGo(); err == nil {
		t.Fatal("closed handle should fail")
	}
}
