package avtime_test

import (
	"math"
	"testing"
	"time"

	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

func Test_NoPTSValue(t *testing.T) {
	if avtime.NoPTSValue != math.MinInt64 {
		t.Fatalf("NoPTSValue = %d", avtime.NoPTSValue)
	}
	if v := avtime.NoPTSValue; uint64(v) != 0x8000000000000000 {
		t.Fatal("NoPTSValue bit pattern differs from AV_NOPTS_VALUE")
	}
}

func Test_RescaleRnd(t *testing.T) {
	cases := []struct {
		a, b, c int64
		rnd     avtime.Rounding
		want    int64
	}{
		{7, 1, 2, avtime.RoundZero, 3},
		{7, 1, 2, avtime.RoundInf, 4},
		{7, 1, 2, avtime.RoundDown, 3},
		{7, 1, 2, avtime.RoundUp, 4},
		{7, 1, 2, avtime.RoundNearInf, 4},
		{-7, 1, 2, avtime.RoundZero, -3},
		{-7, 1, 2, avtime.RoundInf, -4},
		{-7, 1, 2, avtime.RoundDown, -4},
		{-7, 1, 2, avtime.RoundUp, -3},
		{-7, 1, 2, avtime.RoundNearInf, -4},
		{math.MaxInt64, 2, 2, avtime.RoundNearInf, math.MaxInt64},
		{3, 1, 0, avtime.RoundNearInf, math.MinInt64},
		{3, 1, 1, 4, math.MinInt64},
		{math.MaxInt64, 3, 1, avtime.RoundZero, math.MinInt64},
	}

	for _, tc := range cases {
		got := avtime.RescaleRnd(tc.a, tc.b, tc.c, tc.rnd)
		if got != tc.want {
			t.Fatalf("RescaleRnd(%d, %d, %d, %d) = %d, want %d", tc.a, tc.b,
				tc.c, tc.rnd, got, tc.want)
		}
	}
}

func Test_RescalePassMinMax(t *testing.T) {
	rnd := avtime.RoundNearInf | avtime.RoundPassMinMax
	got := avtime.RescaleQRnd(avtime.NoPTSValue, avtime.Rational{1, 25},
		avtime.TimeBaseQ, rnd)
	if got != avtime.NoPTSValue {
		t.Fatalf("NoPTSValue did not pass through: %d", got)
	}
}

func Test_RescaleQ(t *testing.T) {
	// 90 kHz MPEG-TS ticks to milliseconds.
	got := avtime.RescaleQ(90000, avtime.Rational{1, 90000},
		avtime.Rational{1, 1000})
	if got != 1000 {
		t.Fatalf("RescaleQ = %d, want 1000", got)
	}

	// frame 48 at 24000/1001 fps in AV_TIME_BASE units.
	got = avtime.RescaleQ(48, avtime.Rational{1001, 24000}, avtime.TimeBaseQ)
	if got != 2002000 {
		t.Fatalf("RescaleQ = %d, want 2002000", got)
	}
}

func Test_ToDuration(t *testing.T) {
	d, ok := avtime.ToDuration(50, avtime.Rational{1, 25})
	if !ok || d != 2*time.Second {
		t.Fatalf("ToDuration = %v, %v", d, ok)
	}

	if _, ok := avtime.ToDuration(avtime.NoPTSValue, avtime.Rational{1, 25}); ok {
		t.Fatal("NoPTSValue must not convert")
	}
	if _, ok := avtime.ToDuration(10, avtime.Rational{}); ok {
		t.Fatal("zero time base must not convert")
	}

	if pts := avtime.FromDuration(2*time.Second, avtime.Rational{1, 25}); pts != 50 {
		t.Fatalf("FromDuration = %d, want 50", pts)
	}
}

func Test_ParseRational(t *testing.T) {
	cases := map[string]avtime.Rational{
		"24000/1001": {24000, 1001},
		"16:9":       {16, 9},
		"25":         {25, 1},
	}
	for in, want := range cases {
		got, err := avtime.ParseRational(in)
		if err != nil || got != want {
			t.Fatalf("ParseRational(%q) = %v, %v", in, got, err)
		}
	}

	for _, in := range []string{"", "1/0", "a/b"} {
		if _, err := avtime.ParseRational(in); err == nil {
			t.Fatalf("ParseRational(%q) should fail", in)
		}
	}

	if r := avtime.FromFloat(0.3127, 50000); r != (avtime.Rational{15635, 50000}) {
		t.Fatalf("FromFloat = %v", r)
	}
}
