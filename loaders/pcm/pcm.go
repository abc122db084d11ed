// Package pcm converts decoded audio into the mixer layout:
// interleaved stereo float32 at the context sample rate.
package pcm

import "fmt"

// Stereo returns interleaved stereo data. Mono input is duplicated into both
// channels; stereo input is returned as is.
func Stereo(samples []float32, channels int) ([]float32, error) {
	switch channels {
	case 2:
		return samples, nil
	case 1:
		out := make([]float32, 2*len(samples))
		for i, v := range samples {
			out[2*i] = v
			out[2*i+1] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("pcm: number of channels must be 1 or 2 but was %d", channels)
	}
}

// Resample converts interleaved stereo data from one rate to another with
// linear interpolation.
func Resample(stereo []float32, from, to int) []float32 {
	if from == to || from <= 0 || to <= 0 || len(stereo) < 2 {
		return stereo
	}
	inFrames := len(stereo) / 2
	outFrames := int(int64(inFrames) * int64(to) / int64(from))
	out := make([]float32, 2*outFrames)
	ratio := float64(from) / float64(to)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		j := int(pos)
		frac := float32(pos - float64(j))
		k := min(j+1, inFrames-1)
		out[2*i] = stereo[2*j] + (stereo[2*k]-stereo[2*j])*frac
		out[2*i+1] = stereo[2*j+1] + (stereo[2*k+1]-stereo[2*j+1])*frac
	}
	return out
}

// Convert applies Stereo and Resample.
func Convert(samples []float32, channels, from, to int) ([]float32, error) {
	stereo, err := Stereo(samples, channels)
	if err != nil {
		return nil, err
	}
	return Resample(stereo, from, to), nil
}

// Int16ToFloat32 converts little-endian signed 16-bit samples.
func Int16ToFloat32(i16Buf []byte) []float32 {
	f32 := make([]float32, len(i16Buf)/2)
	for i := 0; i+1 < len(i16Buf); i += 2 {
		vi16l := i16Buf[i]
		vi16h := i16Buf[i+1]
		f32[i/2] = float32(int16(vi16l)|int16(vi16h)<<8) / (1 << 15)
	}
	return f32
}

// Uint8ToFloat32 converts unsigned 8-bit samples centred on 128.
func Uint8ToFloat32(u8Buf []byte) []float32 {
	f32 := make([]float32, len(u8Buf))
	for i, v := range u8Buf {
		f32[i] = float32(int(v)-128) / 128
	}
	return f32
}
