// Package voc provides a Creative Voice File (VOC) decoder.
package voc

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Lundis/go-winsound/loaders/pcm"
)

const magic = "Creative Voice File\x1a"

const (
	blockTerminator   = 0
	blockSoundData    = 1
	blockContinuation = 2
	blockSilence      = 3
	blockExtended     = 8
	blockNewSoundData = 9
)

const (
	codecUnsigned8 = 0
	codecSigned16  = 4
)

var (
	ErrFormat    = errors.New("voc: bad or unsupported format")
	ErrCorrupted = errors.New("voc: corrupted data")
)

// Format describes the PCM layout shared by all sound blocks of a file.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// LoadFile reads and decodes a VOC file.
func LoadFile(path string, wantedSampleRate int) ([]float32, error) {
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

// Load decodes VOC data into interleaved stereo float32 samples at wantedSampleRate.
func Load(data []byte, wantedSampleRate int) ([]float32, error) {
	format, raw, err := Decode(data)
	if err != nil {
		return nil, err
	}
	var samples []float32
	if format.BitsPerSample == 8 {
		samples = pcm.Uint8ToFloat32(raw)
	} else {
		samples = pcm.Int16ToFloat32(raw)
	}
	return pcm.Convert(samples, format.Channels, format.SampleRate, wantedSampleRate)
}

// Decode validates the header and concatenates the sample data of every block.
// Silence blocks are expanded into zero samples.
func Decode(data []byte) (Format, []byte, error) {
	var format Format
	if len(data) < 26 || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return format, nil, fmt.Errorf("voc: invalid header: %w", ErrFormat)
	}
	headerSize := int(u16(data[0x14:]))
	version := u16(data[0x16:])
	checksum := u16(data[0x18:])
	if version != 0x010a && version != 0x0114 {
		return format, nil, fmt.Errorf("voc: version %#04x: %w", version, ErrFormat)
	}
	if checksum != ^version+0x1234 {
		return format, nil, fmt.Errorf("voc: header checksum mismatch: %w", ErrCorrupted)
	}
	if headerSize < 26 || headerSize > len(data) {
		return format, nil, ErrCorrupted
	}

	var (
		raw       bytes.Buffer
		extended  *Format
		haveSound bool
	)
	// setFormat locks the format on the first sound block.
	setFormat := func(f Format) error {
		if f.SampleRate <= 0 {
			return fmt.Errorf("voc: sample rate %d: %w", f.SampleRate, ErrFormat)
		}
		if !haveSound {
			format = f
			haveSound = true
			return nil
		}
		if f != format {
			return fmt.Errorf("voc: sound blocks change format from %+v to %+v: %w", format, f, ErrFormat)
		}
		return nil
	}

	pos := headerSize
	for pos < len(data) {
		blockType := data[pos]
		pos++
		if blockType == blockTerminator {
			break
		}
		if pos+3 > len(data) {
			return format, nil, ErrCorrupted
		}
		size := int(data[pos]) | int(data[pos+1])<<8 | int(data[pos+2])<<16
		pos += 3
		if pos+size > len(data) {
			return format, nil, ErrCorrupted
		}
		block := data[pos : pos+size]
		pos += size

		switch blockType {
		case blockSoundData:
			if len(block) < 2 {
				return format, nil, ErrCorrupted
			}
			if block[1] != codecUnsigned8 {
				return format, nil, fmt.Errorf("voc: codec %d: %w", block[1], ErrFormat)
			}
			f := Format{Channels: 1, SampleRate: 1000000 / (256 - int(block[0])), BitsPerSample: 8}
			if extended != nil {
				f = *extended
				extended = nil
			}
			if err := setFormat(f); err != nil {
				return format, nil, err
			}
			raw.Write(block[2:])
		case blockContinuation:
			if !haveSound {
				return format, nil, ErrCorrupted
			}
			raw.Write(block)
		case blockSilence:
			if len(block) < 3 {
				return format, nil, ErrCorrupted
			}
			if !haveSound {
				if err := setFormat(Format{Channels: 1, SampleRate: 1000000 / (256 - int(block[2])), BitsPerSample: 8}); err != nil {
					return format, nil, err
				}
			}
			frames := int(u16(block)) + 1
			silence := bytes.Repeat(silentFrame(format), frames)
			raw.Write(silence)
		case blockExtended:
			if len(block) < 4 {
				return format, nil, ErrCorrupted
			}
			if block[2] != codecUnsigned8 {
				return format, nil, fmt.Errorf("voc: extended codec %d: %w", block[2], ErrFormat)
			}
			channels := int(block[3]) + 1
			timeConstant := int(u16(block))
			extended = &Format{
				Channels:      channels,
				SampleRate:    256000000 / (channels * (65536 - timeConstant)),
				BitsPerSample: 8,
			}
		case blockNewSoundData:
			if len(block) < 12 {
				return format, nil, ErrCorrupted
			}
			f := Format{
				SampleRate:    int(u32(block)),
				BitsPerSample: int(block[4]),
				Channels:      int(block[5]),
			}
			codec := u16(block[6:])
			switch {
			case codec == codecUnsigned8 && f.BitsPerSample == 8:
			case codec == codecSigned16 && f.BitsPerSample == 16:
			default:
				return format, nil, fmt.Errorf("voc: codec %d with %d bits: %w", codec, f.BitsPerSample, ErrFormat)
			}
			if f.Channels != 1 && f.Channels != 2 {
				return format, nil, fmt.Errorf("voc: %d channels: %w", f.Channels, ErrFormat)
			}
			if err := setFormat(f); err != nil {
				return format, nil, err
			}
			raw.Write(block[12:])
		}
	}
	if !haveSound {
		return format, nil, fmt.Errorf("voc: no sound data: %w", ErrCorrupted)
	}
	return format, raw.Bytes(), nil
}

func silentFrame(f Format) []byte {
	if f.BitsPerSample == 8 {
		return bytes.Repeat([]byte{0x80}, f.Channels)
	}
	return make([]byte, 2*f.Channels)
}

func u32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func u16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
