package media

import (
	"errors"
	"fmt"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

var ErrPlaneSizeMismatch = errors.New("frame plane sizes do not match")

// Frame is a reusable decoded picture. Its three plane buffers are allocated
// once by NewFrame and are only ever copied into, so a pool of frames can be
// cycled through a pipeline without further allocation.
type Frame struct {
	data     [3][]byte // Pixel data for each of the three planes.
	lineSize [3]int64  // Line size (stride) for each plane, in bytes.

	// Decode order position, starting at 0.
	Index int
	// Presentation timestamp in the stream time base, or avtime.NoPTSValue.
	PTS int64
	// Duration in the stream time base, 0 when unknown.
	Duration int64
	KeyFrame bool

	// Per frame side data such as HDR10+ dynamic metadata.
	SideData []avcodec.PacketSideData
	// Raw Dolby Vision RPU NAL payload, empty when absent.
	DolbyVisionRPU []byte
}

// NewFrame allocates a frame with the given plane sizes in bytes.
func NewFrame(planeSizes [3]int, lineSizes [3]int) *Frame {
	f := &Frame{PTS: avtime.NoPTSValue}
	for i := range f.data {
		f.data[i] = make([]byte, planeSizes[i])
		f.lineSize[i] = int64(lineSizes[i])
	}
	return f
}

// Write copies the planes into the frame. Every plane must have exactly the
// size the frame was allocated with.
func (f *Frame) Write(data [3][]byte, lineSize [3]int64) error {
	for i := range f.data {
		if len(f.data[i]) != len(data[i]) {
			return fmt.Errorf("%w: plane %d is %d bytes, frame holds %d",
				ErrPlaneSizeMismatch, i, len(data[i]), len(f.data[i]))
		}
	}

	for p := range f.data {
		copy(f.data[p], data[p])
		f.lineSize[p] = lineSize[p]
	}
	return nil
}

// Read returns the frame's own plane buffers. They are overwritten by the
// next Write.
func (f *Frame) Read() ([3][]byte, [3]int64) { return f.data, f.lineSize }

// PlaneSizes reports the allocated size of each plane.
func (f *Frame) PlaneSizes() [3]int {
	return [3]int{len(f.data[0]), len(f.data[1]), len(f.data[2])}
}

// Reset clears everything but the pixel data, keeping buffer capacity.
func (f *Frame) Reset() {
	f.Index = 0
	f.PTS = avtime.NoPTSValue
	f.Duration = 0
	f.KeyFrame = false
	f.SideData = f.SideData[:0]
	f.DolbyVisionRPU = f.DolbyVisionRPU[:0]
}

// SetSideData copies data into the frame under typ, replacing any existing
// entry of that type.
func (f *Frame) SetSideData(typ avcodec.PacketSideDataType, data []byte) {
	for i := range f.SideData {
		if f.SideData[i].Type == typ {
			f.SideData[i].Data = append(f.SideData[i].Data[:0], data...)
			return
		}
	}

	// Reuse a payload buffer left behind by Reset when there is one.
	if n := len(f.SideData); n < cap(f.SideData) {
		f.SideData = f.SideData[:n+1]
		f.SideData[n].Type = typ
		f.SideData[n].Data = append(f.SideData[n].Data[:0], data...)
		return
	}
	f.SideData = append(f.SideData, avcodec.PacketSideData{
		Type: typ, Data: append([]byte(nil), data...)})
}

// GetSideData returns the frame's entry of type typ or nil.
func (f *Frame) GetSideData(typ avcodec.PacketSideDataType) *avcodec.PacketSideData {
	for i := range f.SideData {
		if f.SideData[i].Type == typ {
			return &f.SideData[i]
		}
	}
	return nil
}
