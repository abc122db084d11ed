// Package oggvorbis decodes Ogg Vorbis streams into mixer-ready samples.
package oggvorbis

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/jfreymuth/oggvorbis"

	"github.com/Lundis/go-winsound/loaders/pcm"
)

var ErrFormat = errors.New("oggvorbis: not an Ogg stream")

// Format describes a decoded stream.
type Format struct {
	Channels   int
	SampleRate int
}

func LoadFile(path string, sampleRate int) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("oggvorbis: %w", err)
	}
	data, err := Load(raw, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Load decodes a whole stream, upmixing mono and resampling to sampleRate.
func Load(data []byte, sampleRate int) ([]float32, error) {
	f, samples, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return pcm.Convert(samples, f.Channels, f.SampleRate, sampleRate)
}

// Decode returns the interleaved samples of a stream at its own rate.
func Decode(data []byte) (Format, []float32, error) {
	if !bytes.HasPrefix(data, []byte("OggS")) {
		return Format{}, nil, ErrFormat
	}
	samples, f, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return Format{}, nil, fmt.Errorf("oggvorbis: %w", err)
	}
	if f.Channels < 1 || f.Channels > 2 {
		return Format{}, nil, fmt.Errorf("oggvorbis: %d channels not supported", f.Channels)
	}
	return Format{Channels: f.Channels, SampleRate: f.SampleRate}, samples, nil
}
