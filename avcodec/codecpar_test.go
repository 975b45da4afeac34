package avcodec_test

import (
	"testing"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
)

func Test_GetCodecSideData_Nil(t *testing.T) {
	if avcodec.GetCodecSideData(nil, avcodec.PktDataDisplayMatrix) != nil {
		t.Fatal("nil parameters must yield nil")
	}

	var par avcodec.CodecParameters
	if par.SideData(avcodec.PktDataDisplayMatrix) != nil {
		t.Fatal("parameters without side data must yield nil")
	}

	par.AddSideData(avcodec.PktDataICCProfile, []byte{1})
	if par.SideData(avcodec.PktDataDisplayMatrix) != nil {
		t.Fatal("non matching side data must yield nil")
	}
}

func Test_GetCodecSideData_FirstMatch(t *testing.T) {
	par := avcodec.CodecParameters{CodedSideData: []avcodec.PacketSideData{
		{Type: avcodec.PktDataICCProfile, Data: []byte{0}},
		{Type: avcodec.PktDataDisplayMatrix, Data: []byte{1}},
		{Type: avcodec.PktDataDisplayMatrix, Data: []byte{2}},
	}}

	sd := avcodec.GetCodecSideData(&par, avcodec.PktDataDisplayMatrix)
	if sd == nil || sd.Data[0] != 1 {
		t.Fatalf("expected the first display matrix entry, got %+v", sd)
	}

	if sd != &par.CodedSideData[1] {
		t.Fatal("returned entry should alias the parameters' storage")
	}
}

func Test_GetCodecSideData_AnyOrder(t *testing.T) {
	entries := []avcodec.PacketSideData{
		{Type: avcodec.PktDataICCProfile, Data: []byte{0}},
		{Type: avcodec.PktDataDisplayMatrix, Data: []byte{1}},
		{Type: avcodec.PktDataDisplayMatrix, Data: []byte{2}},
	}
	orders := [][3]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}

	for _, order := range orders {
		var par avcodec.CodecParameters
		for _, i := range order {
			par.CodedSideData = append(par.CodedSideData, entries[i])
		}

		want := -1
		for i, sd := range par.CodedSideData {
			if sd.Type == avcodec.PktDataDisplayMatrix {
				want = i
				break
			}
		}

		sd := avcodec.GetCodecSideData(&par, avcodec.PktDataDisplayMatrix)
		if sd != &par.CodedSideData[want] {
			t.Fatalf("order %v: expected entry %d, got %+v", order, want, sd)
		}

		icc := avcodec.GetCodecSideData(&par, avcodec.PktDataICCProfile)
		if icc == nil || icc.Data[0] != 0 {
			t.Fatalf("order %v: ICC profile lookup failed", order)
		}
		if avcodec.GetCodecSideData(&par, avcodec.PktDataPalette) != nil {
			t.Fatalf("order %v: absent type matched", order)
		}
	}
}

func Test_AddSideData_Replaces(t *testing.T) {
	var par avcodec.CodecParameters

	par.AddSideData(avcodec.PktDataContentLightLevel, []byte{1})
	par.AddSideData(avcodec.PktDataDOVIConf, []byte{2})
	par.AddSideData(avcodec.PktDataContentLightLevel, []byte{3})

	if len(par.CodedSideData) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(par.CodedSideData))
	}
	if got := par.SideData(avcodec.PktDataContentLightLevel).Data[0]; got != 3 {
		t.Fatalf("expected replaced payload 3, got %d", got)
	}

	par.RemoveSideData(avcodec.PktDataContentLightLevel)
	if par.SideData(avcodec.PktDataContentLightLevel) != nil {
		t.Fatal("removed entry still present")
	}
	if par.SideData(avcodec.PktDataDOVIConf) == nil {
		t.Fatal("unrelated entry was removed")
	}
}

func Test_Clone_DeepCopiesSideData(t *testing.T) {
	par := &avcodec.CodecParameters{CodecName: "hevc", Width: 3840}
	par.AddSideData(avcodec.PktDataICCProfile, []byte{7})

	clone := par.Clone()
	clone.CodedSideData[0].Data[0] = 9

	if par.CodedSideData[0].Data[0] != 7 {
		t.Fatal("clone shares side data payload with the original")
	}
	if clone.CodecName != "hevc" || clone.Width != 3840 {
		t.Fatalf("clone lost fields: %+v", clone)
	}
}

func Test_PacketSideDataType_Values(t *testing.T) {
	cases := map[avcodec.PacketSideDataType]int{
		avcodec.PktDataPalette:                  0,
		avcodec.PktDataDisplayMatrix:            5,
		avcodec.PktDataMasteringDisplayMetadata: 20,
		avcodec.PktDataContentLightLevel:        22,
		avcodec.PktDataICCProfile:               28,
		avcodec.PktDataDOVIConf:                 29,
		avcodec.PktDataDynamicHDR10Plus:         31,
		avcodec.PktDataLCEVC:                    37,
	}
	for typ, want := range cases {
		if int(typ) != want {
			t.Fatalf("%s = %d, want %d", typ, int(typ), want)
		}
	}

	if len(avcodec.PacketSideDataTypes()) != 38 {
		t.Fatalf("expected 38 known types, got %d",
			len(avcodec.PacketSideDataTypes()))
	}
}

func Test_PacketSideDataType_String(t *testing.T) {
	if s := avcodec.PktDataDOVIConf.String(); s != "DOVI configuration record" {
		t.Fatalf("unexpected name %q", s)
	}
	if s := avcodec.PacketSideDataType(99).String(); s != "PacketSideDataType(99)" {
		t.Fatalf("unexpected name for unknown type %q", s)
	}
	for _, typ := range avcodec.PacketSideDataTypes() {
		if typ.String() == "" {
			t.Fatalf("type %d has no name", int(typ))
		}
	}
}
