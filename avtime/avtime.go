// Package avtime holds libav's timestamp sentinel and the rational time base
// arithmetic used to move timestamps between stream, container and wall-clock
// units.
package avtime

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// NoPTSValue is AV_NOPTS_VALUE: the timestamp is undefined.
const NoPTSValue int64 = math.MinInt64

// TimeBase is AV_TIME_BASE, the internal libav time base in units per second.
const TimeBase = 1000000

// TimeBaseQ is AV_TIME_BASE_Q.
var TimeBaseQ = Rational{1, TimeBase}

var nanosecondQ = Rational{1, int32(time.Second)}

var ErrInvalidRational = errors.New("invalid rational")

// Rational is an AVRational: Num/Den.
type Rational struct {
	Num int32
	Den int32
}

// NewRational does not reduce num/den.
func NewRational(num, den int32) Rational { return Rational{num, den} }

// FromFloat approximates f as a rational with the given fixed denominator,
// rounding to the nearest numerator.
func FromFloat(f float64, den int32) Rational {
	return Rational{int32(math.Round(f * float64(den))), den}
}

func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return math.NaN()
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) Invert() Rational { return Rational{r.Den, r.Num} }

// IsZero reports a zero or unset rational.
func (r Rational) IsZero() bool { return r.Num == 0 || r.Den == 0 }

func (r Rational) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// ParseRational accepts "num/den", "num:den" or a plain integer.
func ParseRational(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "/:")
	if sep < 0 {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Rational{}, fmt.Errorf("%w: %q", ErrInvalidRational, s)
		}
		return Rational{int32(n), 1}, nil
	}

	num, errNum := strconv.ParseInt(s[:sep], 10, 32)
	den, errDen := strconv.ParseInt(s[sep+1:], 10, 32)
	if errNum != nil || errDen != nil || den == 0 {
		return Rational{}, fmt.Errorf("%w: %q", ErrInvalidRational, s)
	}
	return Rational{int32(num), int32(den)}, nil
}

// Rounding selects how RescaleRnd rounds, matching enum AVRounding.
type Rounding int

const (
	RoundZero    Rounding = 0 // Round toward zero.
	RoundInf     Rounding = 1 // Round away from zero.
	RoundDown    Rounding = 2 // Round toward -infinity.
	RoundUp      Rounding = 3 // Round toward +infinity.
	RoundNearInf Rounding = 5 // Round to nearest and halfway cases away from zero.

	// RoundPassMinMax is a flag: INT64_MIN and INT64_MAX pass through
	// unchanged, which keeps NoPTSValue intact.
	RoundPassMinMax Rounding = 8192
)

// RescaleRnd computes a*b/c with the requested rounding without
// intermediate overflow. Invalid arguments and results that do not fit in
// int64 yield math.MinInt64, as av_rescale_rnd does.
func RescaleRnd(a, b, c int64, rnd Rounding) int64 {
	mode := rnd &^ RoundPassMinMax
	if c <= 0 || b < 0 || mode < 0 || mode > RoundNearInf || mode == 4 {
		return math.MinInt64
	}

	if rnd&RoundPassMinMax != 0 {
		if a == math.MinInt64 || a == math.MaxInt64 {
			return a
		}
	}

	if a < 0 {
		if a == math.MinInt64 {
			a = -math.MaxInt64
		}
		// Mirror the rounding direction for the negated operand.
		neg := rescalePositive(-a, b, c, mode^((mode>>1)&1))
		if neg == math.MinInt64 {
			return neg
		}
		return -neg
	}

	return rescalePositive(a, b, c, mode)
}

func rescalePositive(a, b, c int64, mode Rounding) int64 {
	var r big.Int
	switch {
	case mode == RoundNearInf:
		r.SetInt64(c / 2)
	case mode&1 != 0:
		r.SetInt64(c - 1)
	}

	var n big.Int
	n.Mul(big.NewInt(a), big.NewInt(b))
	n.Add(&n, &r)
	n.Quo(&n, big.NewInt(c))

	if !n.IsInt64() {
		return math.MinInt64
	}
	return n.Int64()
}

// Rescale is RescaleRnd rounding to nearest.
func Rescale(a, b, c int64) int64 { return RescaleRnd(a, b, c, RoundNearInf) }

// RescaleQRnd converts a from time base bq to time base cq.
func RescaleQRnd(a int64, bq, cq Rational, rnd Rounding) int64 {
	b := int64(bq.Num) * int64(cq.Den)
	c := int64(cq.Num) * int64(bq.Den)
	return RescaleRnd(a, b, c, rnd)
}

// RescaleQ converts a from time base bq to time base cq, rounding to nearest.
func RescaleQ(a int64, bq, cq Rational) int64 {
	return RescaleQRnd(a, bq, cq, RoundNearInf)
}

// ToDuration converts a timestamp in time base tb to a time.Duration. ok is
// false when pts is NoPTSValue or tb is unusable.
func ToDuration(pts int64, tb Rational) (time.Duration, bool) {
	if pts == NoPTSValue || tb.IsZero() {
		return 0, false
	}
	ns := RescaleQ(pts, tb, nanosecondQ)
	if ns == math.MinInt64 {
		return 0, false
	}
	return time.Duration(ns), true
}

// FromDuration converts d to a timestamp in time base tb.
func FromDuration(d time.Duration, tb Rational) int64 {
	if tb.IsZero() {
		return NoPTSValue
	}
	return RescaleQ(int64(d), nanosecondQ, tb)
}
