// Copyright 2016 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wav provides WAV (RIFF) decoder.
package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/image/riff"

	"github.com/Lundis/go-winsound/loaders/pcm"
)

var (
	waveMagic    = riff.FourCC{'W', 'A', 'V', 'E'}
	wavChunkFmt  = riff.FourCC{'f', 'm', 't', ' '}
	wavChunkData = riff.FourCC{'d', 'a', 't', 'a'}

	ErrFormat    = errors.New("wav: bad or unsupported format")
	ErrCorrupted = errors.New("wav: corrupted data")
)

// Format describes the PCM layout found in the fmt chunk.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// LoadWavFile reads and decodes a WAV file.
func LoadWavFile(path string, wantedSampleRate int) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	samples, err := Load(data, wantedSampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Load decodes linear PCM WAV data into interleaved stereo float32 samples at
// wantedSampleRate. Mono and stereo, 8 and 16 bits per sample are accepted.
func Load(data []byte, wantedSampleRate int) ([]float32, error) {
	format, raw, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var samples []float32
	switch format.BitsPerSample {
	case 8:
		samples = pcm.Uint8ToFloat32(raw)
	case 16:
		samples = pcm.Int16ToFloat32(raw)
	}
	return pcm.Convert(samples, format.Channels, format.SampleRate, wantedSampleRate)
}

// Decode walks the RIFF chunks and returns the format and the raw data chunk.
func Decode(r io.Reader) (Format, []byte, error) {
	var format Format
	formType, rr, err := riff.NewReader(r)
	if err != nil {
		return format, nil, fmt.Errorf("wav: invalid header: %w", err)
	}
	if formType != waveMagic {
		return format, nil, fmt.Errorf("wav: invalid header: 'WAVE' not found")
	}

	var fmtLoaded bool
	for {
		chunkID, chunkLen, chunkData, err := rr.Next()
		if err == io.EOF {
			return format, nil, ErrCorrupted
		}
		if err != nil {
			return format, nil, err
		}
		switch chunkID {
		case wavChunkFmt:
			// Size of 'fmt' header is usually 16, but can be more than 16.
			if chunkLen < 16 {
				return format, nil, fmt.Errorf("wav: invalid header: maybe non-PCM file?")
			}
			buf, err := io.ReadAll(chunkData)
			if err != nil {
				return format, nil, err
			}
			if u16(buf[0:]) != 1 {
				return format, nil, fmt.Errorf("wav: format must be linear PCM: %w", ErrFormat)
			}
			format.Channels = int(u16(buf[2:]))
			format.SampleRate = int(u32(buf[4:]))
			format.BitsPerSample = int(u16(buf[14:]))
			if format.Channels != 1 && format.Channels != 2 {
				return format, nil, fmt.Errorf("wav: number of channels must be 1 or 2 but was %d: %w", format.Channels, ErrFormat)
			}
			if format.BitsPerSample != 8 && format.BitsPerSample != 16 {
				return format, nil, fmt.Errorf("wav: bits per sample must be 8 or 16 but was %d: %w", format.BitsPerSample, ErrFormat)
			}
			if format.SampleRate <= 0 {
				return format, nil, fmt.Errorf("wav: sample rate %d: %w", format.SampleRate, ErrFormat)
			}
			fmtLoaded = true
		case wavChunkData:
			if !fmtLoaded {
				// data before fmt, ill form
				return format, nil, ErrCorrupted
			}
			raw, err := io.ReadAll(chunkData)
			if err != nil {
				return format, nil, ErrCorrupted
			}
			return format, raw, nil
		}
	}
}

func u32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func u16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
