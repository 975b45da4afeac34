package avcodec_test

import (
	"errors"
	"math"
	"testing"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

func bt2020Mastering() avcodec.MasteringDisplayMetadata {
	chroma := func(v float64) avtime.Rational {
		return avtime.FromFloat(v, avcodec.ChromaDenominator)
	}
	return avcodec.MasteringDisplayMetadata{
		DisplayPrimaries: [3][2]avtime.Rational{
			{chroma(0.708), chroma(0.292)},
			{chroma(0.170), chroma(0.797)},
			{chroma(0.131), chroma(0.046)},
		},
		WhitePoint:   [2]avtime.Rational{chroma(0.3127), chroma(0.3290)},
		MinLuminance: avtime.Rational{Num: 50, Den: avcodec.LuminanceDenominator},
		MaxLuminance: avtime.Rational{Num: 1000 * avcodec.LuminanceDenominator,
			Den: avcodec.LuminanceDenominator},
		HasPrimaries: true,
		HasLuminance: true,
	}
}

func Test_MasteringDisplayMetadata_Layout(t *testing.T) {
	md := bt2020Mastering()

	b := md.Marshal()
	if len(b) != 88 {
		t.Fatalf("AVMasteringDisplayMetadata is 88 bytes, got %d", len(b))
	}

	parsed, err := avcodec.ParseMasteringDisplayMetadata(b)
	if err != nil {
		t.Fatal(err)
	}
	if parsed != md {
		t.Fatalf("decoded %+v, want %+v", parsed, md)
	}
	if parsed.MaxLuminance.Float64() != 1000 {
		t.Fatalf("max luminance %v", parsed.MaxLuminance.Float64())
	}

	_, err = avcodec.ParseMasteringDisplayMetadata(b[:87])
	if !errors.Is(err, avcodec.ErrShortSideData) {
		t.Fatalf("expected ErrShortSideData, got %v", err)
	}
}

func Test_ContentLightMetadata(t *testing.T) {
	cll := avcodec.ContentLightMetadata{MaxCLL: 1000, MaxFALL: 400}

	parsed, err := avcodec.ParseContentLightMetadata(cll.Marshal())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != cll {
		t.Fatalf("decoded %+v, want %+v", parsed, cll)
	}

	if _, err = avcodec.ParseContentLightMetadata([]byte{1, 2, 3}); !errors.Is(
		err, avcodec.ErrShortSideData) {
		t.Fatalf("expected ErrShortSideData, got %v", err)
	}
}

func Test_DOVIConfig(t *testing.T) {
	conf := avcodec.DOVIConfig{VersionMajor: 1, Profile: 8, Level: 6,
		RPUPresent: true, BLPresent: true, BLSignalCompatibilityID: 1}

	b := conf.Marshal()
	parsed, err := avcodec.ParseDOVIConfig(b)
	if err != nil {
		t.Fatal(err)
	}
	if parsed != conf {
		t.Fatalf("decoded %+v, want %+v", parsed, conf)
	}

	// records written by libavutil before dv_md_compression existed
	parsed, err = avcodec.ParseDOVIConfig(b[:8])
	if err != nil || parsed != conf {
		t.Fatalf("short record: %+v, %v", parsed, err)
	}

	if s := conf.String(); s != "dvhe.08.06" {
		t.Fatalf("unexpected codec string %q", s)
	}
	if s := (avcodec.DOVIConfig{Profile: 10, Level: 9}).String(); s != "dav1.10.09" {
		t.Fatalf("unexpected codec string %q", s)
	}

	if _, err = avcodec.ParseDOVIConfig(b[:7]); !errors.Is(err,
		avcodec.ErrShortSideData) {
		t.Fatalf("expected ErrShortSideData, got %v", err)
	}
}

func Test_DisplayMatrix_Rotation(t *testing.T) {
	for _, angle := range []float64{0, 45, 90, -90, 180} {
		m := avcodec.DisplayRotationSet(angle)

		parsed, err := avcodec.ParseDisplayMatrix(m.Marshal())
		if err != nil {
			t.Fatal(err)
		}
		if parsed != m {
			t.Fatalf("matrix did not survive encoding: %v != %v", parsed, m)
		}

		got, ok := parsed.Rotation()
		if !ok {
			t.Fatalf("rotation of %v reported degenerate", angle)
		}
		if math.Abs(got+angle) > 1e-3 {
			t.Fatalf("set(%v) read back as %v", angle, got)
		}
	}

	if _, ok := (avcodec.DisplayMatrix{}).Rotation(); ok {
		t.Fatal("zero matrix should be degenerate")
	}
}
