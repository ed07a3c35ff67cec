package encoding

import "math"

const (
	ibmSignMask     = 0x80000000
	ibmExponentMask = 0x7f000000
	ibmFractionMask = 0x00ffffff
	ibmBias         = 64
	ibmMaxExponent  = 127
	ibmMaxFraction  = 0x00ffffff
)

// IBMToFloat32 converts a 32-bit IBM System/360 floating point word to float32.
//
// The IBM layout is 1 sign bit, a 7-bit base-16 exponent biased by 64 and a
// 24-bit fraction: value = ±0.fraction × 16^(exponent-64). Values outside the
// float32 range saturate to ±Inf; values below it flush to zero.
func IBMToFloat32(ibm uint32) float32 {
	frac := ibm & ibmFractionMask
	if frac == 0 {
		return 0
	}

	exp := int((ibm&ibmExponentMask)>>24) - ibmBias
	v := math.Ldexp(float64(frac), 4*exp-24)
	if ibm&ibmSignMask != 0 {
		v = -v
	}

	return float32(v)
}

// Float32ToIBM converts a float32 to a 32-bit IBM floating point word.
//
// The fraction is rounded to nearest. NaN encodes as zero, magnitudes above
// the IBM range saturate to the largest IBM value and magnitudes below it
// flush to zero.
func Float32ToIBM(f float32) uint32 {
	if f == 0 || math.IsNaN(float64(f)) {
		return 0
	}

	var sign uint32
	if math.Signbit(float64(f)) {
		sign = ibmSignMask
	}

	v := math.Abs(float64(f))
	if math.IsInf(v, 0) {
		return sign | ibmExponentMask | ibmMaxFraction
	}

	// v = frac2 × 2^exp2 with frac2 in [0.5, 1); pick the base-16 exponent k
	// so that v / 16^k lands in [1/16, 1).
	frac2, exp2 := math.Frexp(v)
	k := exp2 / 4
	if exp2 > 0 && exp2%4 != 0 {
		k++
	}
	shift := 4*k - exp2

	mant := uint32(math.Round(math.Ldexp(frac2, 24-shift)))
	if mant > ibmMaxFraction {
		mant >>= 4
		k++
	}

	exp := k + ibmBias
	switch {
	case exp > ibmMaxExponent:
		return sign | ibmExponentMask | ibmMaxFraction
	case exp < 0:
		return 0
	}

	return sign | uint32(exp)<<24 | mant
}
