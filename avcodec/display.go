package avcodec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DisplayMatrix is the 3x3 transformation matrix carried by DISPLAYMATRIX side
// data. The first two columns are 16.16 fixed point, the last is 2.30.
type DisplayMatrix [9]int32

const displayMatrixSize = 9 * 4

func convFP(x int32) float64 { return float64(x) / (1 << 16) }
func convDB(x float64) int32 { return int32(x * (1 << 16)) }

// DisplayRotationSet returns a pure counterclockwise rotation of angle
// degrees.
func DisplayRotationSet(angle float64) DisplayMatrix {
	radians := -angle * math.Pi / 180
	c, s := math.Cos(radians), math.Sin(radians)

	var m DisplayMatrix
	m[0] = convDB(c)
	m[1] = convDB(-s)
	m[3] = convDB(s)
	m[4] = convDB(c)
	m[8] = 1 << 30
	return m
}

// Rotation extracts the rotation angle in degrees in the range [-180, 180].
// The angle is clockwise, the opposite sense of DisplayRotationSet. ok is
// false for a degenerate matrix.
func (m DisplayMatrix) Rotation() (float64, bool) {
	scale0 := math.Hypot(convFP(m[0]), convFP(m[3]))
	scale1 := math.Hypot(convFP(m[1]), convFP(m[4]))
	if scale0 == 0 || scale1 == 0 {
		return math.NaN(), false
	}

	rotation := math.Atan2(convFP(m[1])/scale1, convFP(m[0])/scale0) *
		180 / math.Pi
	return -rotation, true
}

func (m DisplayMatrix) Marshal() []byte {
	b := make([]byte, 0, displayMatrixSize)
	for _, v := range m {
		b = binary.NativeEndian.AppendUint32(b, uint32(v))
	}
	return b
}

// ParseDisplayMatrix decodes a DISPLAYMATRIX payload.
func ParseDisplayMatrix(b []byte) (DisplayMatrix, error) {
	var m DisplayMatrix
	if len(b) < displayMatrixSize {
		return m, fmt.Errorf("%w: display matrix is %d bytes, want %d",
			ErrShortSideData, len(b), displayMatrixSize)
	}
	for i := range m {
		m[i] = int32(binary.NativeEndian.Uint32(b[i*4:]))
	}
	return m, nil
}
