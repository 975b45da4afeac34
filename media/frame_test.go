package media_test

import (
	"errors"
	"testing"
	"time"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
	"github.com/GreatValueCreamSoda/hdrplay/media"
)

func Test_Frame_WriteRead(t *testing.T) {
	f := media.NewFrame([3]int{4, 2, 2}, [3]int{2, 1, 1})
	if f.PTS != avtime.NoPTSValue {
		t.Fatal("new frames should carry no timestamp")
	}

	err := f.Write([3][]byte{{1, 2, 3, 4}, {5, 6}, {7, 8}}, [3]int64{2, 1, 1})
	if err != nil {
		t.Fatal(err)
	}

	data, lines := f.Read()
	if data[0][3] != 4 || data[2][1] != 8 || lines[0] != 2 {
		t.Fatalf("unexpected contents %v %v", data, lines)
	}

	err = f.Write([3][]byte{{1}, {5, 6}, {7, 8}}, [3]int64{})
	if !errors.Is(err, media.ErrPlaneSizeMismatch) {
		t.Fatalf("expected ErrPlaneSizeMismatch, got %v", err)
	}
}

func Test_Frame_SideDataReuse(t *testing.T) {
	f := media.NewFrame([3]int{1, 1, 1}, [3]int{1, 1, 1})

	f.SetSideData(avcodec.PktDataDynamicHDR10Plus, []byte{1, 2})
	f.SetSideData(avcodec.PktDataDynamicHDR10Plus, []byte{3})
	if len(f.SideData) != 1 || f.SideData[0].Data[0] != 3 {
		t.Fatalf("replace failed: %+v", f.SideData)
	}

	f.Reset()
	if f.GetSideData(avcodec.PktDataDynamicHDR10Plus) != nil {
		t.Fatal("Reset should drop side data")
	}

	payload := []byte{9}
	f.SetSideData(avcodec.PktDataA53CC, payload)
	payload[0] = 0
	if sd := f.GetSideData(avcodec.PktDataA53CC); sd == nil || sd.Data[0] != 9 {
		t.Fatalf("side data should be copied, got %+v", sd)
	}
}

func Test_StreamInfo_FrameDuration(t *testing.T) {
	info := media.StreamInfo{
		TimeBase:  avtime.Rational{Num: 1001, Den: 24000},
		FrameRate: avtime.Rational{Num: 24000, Den: 1001},
	}
	if d := info.FrameDuration(); d != 1 {
		t.Fatalf("expected 1 tick per frame, got %d", d)
	}

	info.TimeBase = avtime.Rational{Num: 1, Den: 90000}
	if d := info.FrameDuration(); d != 3754 {
		t.Fatalf("expected 3754 ticks per frame, got %d", d)
	}

	if got, _ := avtime.ToDuration(info.FrameDuration(), info.TimeBase); got.Round(
		time.Millisecond) != 42*time.Millisecond {
		t.Fatalf("unexpected wall duration %v", got)
	}

	if (&media.StreamInfo{}).FrameDuration() != 0 {
		t.Fatal("unset rationals should give 0")
	}
}
