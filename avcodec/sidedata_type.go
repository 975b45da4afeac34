package avcodec

import "fmt"

// PacketSideDataType mirrors enum AVPacketSideDataType. The numeric values
// are part of the libav ABI and must not be reordered.
type PacketSideDataType int

const (
	PktDataPalette PacketSideDataType = iota
	PktDataNewExtradata
	PktDataParamChange
	PktDataH263MBInfo
	PktDataReplayGain
	PktDataDisplayMatrix
	PktDataStereo3D
	PktDataAudioServiceType
	PktDataQualityStats
	PktDataFallbackTrack
	PktDataCPBProperties
	PktDataSkipSamples
	PktDataJPDualMono
	PktDataStringsMetadata
	PktDataSubtitlePosition
	PktDataMatroskaBlockAdditional
	PktDataWebVTTIdentifier
	PktDataWebVTTSettings
	PktDataMetadataUpdate
	PktDataMPEGTSStreamID
	PktDataMasteringDisplayMetadata
	PktDataSpherical
	PktDataContentLightLevel
	PktDataA53CC
	PktDataEncryptionInitInfo
	PktDataEncryptionInfo
	PktDataAFD
	PktDataPRFT
	PktDataICCProfile
	PktDataDOVIConf
	PktDataS12MTimecode
	PktDataDynamicHDR10Plus
	PktDataIAMFMixGainParam
	PktDataIAMFDemixingInfoParam
	PktDataIAMFReconGainInfoParam
	PktDataAmbientViewingEnvironment
	PktDataFrameCropping
	PktDataLCEVC

	// number of known side data types, AV_PKT_DATA_NB for the FFmpeg
	// release this package tracks
	pktDataNB
)

var sideDataNames = [pktDataNB]string{
	PktDataPalette:                   "Palette",
	PktDataNewExtradata:              "New Extradata",
	PktDataParamChange:               "Param Change",
	PktDataH263MBInfo:                "H263 MB Info",
	PktDataReplayGain:                "Replay Gain",
	PktDataDisplayMatrix:             "Display Matrix",
	PktDataStereo3D:                  "Stereo 3D",
	PktDataAudioServiceType:          "Audio Service Type",
	PktDataQualityStats:              "Quality stats",
	PktDataFallbackTrack:             "Fallback track",
	PktDataCPBProperties:             "CPB properties",
	PktDataSkipSamples:               "Skip Samples",
	PktDataJPDualMono:                "JP Dual Mono",
	PktDataStringsMetadata:           "Strings Metadata",
	PktDataSubtitlePosition:          "Subtitle Position",
	PktDataMatroskaBlockAdditional:   "Matroska BlockAdditional",
	PktDataWebVTTIdentifier:          "WebVTT ID",
	PktDataWebVTTSettings:            "WebVTT Settings",
	PktDataMetadataUpdate:            "Metadata Update",
	PktDataMPEGTSStreamID:            "MPEGTS Stream ID",
	PktDataMasteringDisplayMetadata:  "Mastering display metadata",
	PktDataSpherical:                 "Spherical Mapping",
	PktDataContentLightLevel:         "Content light level metadata",
	PktDataA53CC:                     "A53 Closed Captions",
	PktDataEncryptionInitInfo:        "Encryption initialization data",
	PktDataEncryptionInfo:            "Encryption info",
	PktDataAFD:                       "Active Format Description data",
	PktDataPRFT:                      "Producer Reference Time",
	PktDataICCProfile:                "ICC Profile",
	PktDataDOVIConf:                  "DOVI configuration record",
	PktDataS12MTimecode:              "SMPTE ST 12-1:2014 timecode",
	PktDataDynamicHDR10Plus:          "HDR10+ Dynamic Metadata (SMPTE 2094-40)",
	PktDataIAMFMixGainParam:          "IAMF Mix Gain Parameter Data",
	PktDataIAMFDemixingInfoParam:     "IAMF Demixing Info Parameter Data",
	PktDataIAMFReconGainInfoParam:    "IAMF Recon Gain Info Parameter Data",
	PktDataAmbientViewingEnvironment: "Ambient viewing environment",
	PktDataFrameCropping:             "Frame Cropping",
	PktDataLCEVC:                     "LCEVC NAL data",
}

// Valid reports whether t is a side data type known to this package.
func (t PacketSideDataType) Valid() bool { return t >= 0 && t < pktDataNB }

// String returns the name av_packet_side_data_name gives t.
func (t PacketSideDataType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PacketSideDataType(%d)", int(t))
	}
	return sideDataNames[t]
}

// PacketSideDataTypes returns every known type in ABI order.
func PacketSideDataTypes() []PacketSideDataType {
	types := make([]PacketSideDataType, pktDataNB)
	for i := range types {
		types[i] = PacketSideDataType(i)
	}
	return types
}
