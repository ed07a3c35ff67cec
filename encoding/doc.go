// Package encoding converts SEG-Y trace samples between their on-disk
// encodings and native float32 values.
//
// Supported sample formats are IBM floating point, IEEE floating point and
// 32-bit and 16-bit two's complement integers (see format.SampleFormat).
//
// Conversion always works on big-endian words. Sample regions read from a
// file with a different byte order are first normalized in place with
// endian.Swap16/endian.Swap32, which is what SampleCodec does:
//
//	codec, _ := encoding.NewSampleCodec(format.SampleIBM, endian.GetBigEndianEngine())
//	err := codec.Decode(samples, raw)  // raw may be swapped in place
//
// The standalone IBMToFloat32 and Float32ToIBM functions operate on the
// 32-bit IBM words directly.
package encoding
