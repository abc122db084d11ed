package winsound

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lundis/go-winsound/audio"
	"github.com/Lundis/go-winsound/loaders/oggvorbis"
	"github.com/Lundis/go-winsound/loaders/voc"
	"github.com/Lundis/go-winsound/loaders/wav"
)

var ErrUnknownSampleType = errors.New("winsound: unknown sample file type")

// Sample is a decoded sound ready to be played by PlaySample.
type Sample struct {
	path  string
	sound *audio.Sound
}

func (s *Sample) Path() string {
	return s.path
}

func (s *Sample) Duration() time.Duration {
	if s.sound == nil {
		return 0
	}
	return s.sound.Duration()
}

// Voices counts the voices of s still playing.
func (s *Sample) Voices() int {
	if s.sound == nil {
		return 0
	}
	return s.sound.Voices()
}

func (s *Sample) Destroyed() bool {
	return s.sound == nil || s.sound.Destroyed()
}

type sampleDecoder func(data []byte, sampleRate int) ([]float32, error)

var sampleDecoders = map[string]sampleDecoder{
	".wav": wav.Load,
	".voc": voc.Load,
	".ogg": oggvorbis.Load,
}

// LoadSample reads and decodes a sample. The decoder is chosen by file
// extension. Sound must be installed.
func (l *Library) LoadSample(path string) (*Sample, error) {
	decode, ok := sampleDecoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownSampleType)
	}
	rate := audio.SampleRate()
	if rate == 0 {
		return nil, fmt.Errorf("%s: %w", path, audio.ErrNotInstalled)
	}
	raw, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	data, err := decode(raw, rate)
	if err != nil {
		log.Printf("winsound: %s not loaded: %v", path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sound := audio.NewSound(data, 1, audio.ChannelIdSample)
	if sound == nil {
		return nil, fmt.Errorf("%s: %w", path, audio.ErrNotInstalled)
	}
	// Every PlaySample starts a voice, however close together.
	sound.SetThrottlingMs(0)
	s := &Sample{path: path, sound: sound}
	log.Printf("winsound: loaded %s (%.2fs)", path, s.Duration().Seconds())
	return s, nil
}

// PlaySample starts a new voice of s. vol and pan range from 0 to 255 with
// pan 128 centred, freq is the pitch in thousandths of the recorded speed.
// A nil sample is ignored.
func (l *Library) PlaySample(s *Sample, vol, pan, freq int, loop bool) {
	if s == nil || s.sound == nil {
		return
	}
	s.sound.PlayVoice(vol, pan, freq, loop)
}

// DestroySample stops s and releases its data. Destroying nil is a no-op.
func (l *Library) DestroySample(s *Sample) {
	if s == nil || s.sound == nil {
		return
	}
	s.sound.Destroy()
}
