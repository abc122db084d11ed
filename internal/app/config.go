package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/tools/godoc/vfs"
)

// ConfigFile is looked up next to the executable.
const ConfigFile = "dibsound.json"

// Filter is one entry of the open-file dialog filter list.
type Filter struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

type Config struct {
	Title      string   `json:"title"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	BitmapPath string   `json:"bitmap"`
	Filters    []Filter `json:"filters"`

	// Playback parameters of the Play command.
	Volume    int `json:"volume"`
	Pan       int `json:"pan"`
	Frequency int `json:"frequency"`

	SampleRate   int `json:"sampleRate"`
	BufferSizeMs int `json:"bufferSizeMs"`

	// LogFile redirects the log when set.
	LogFile string `json:"logFile"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "Sound Player",
		Width:      320,
		Height:     240,
		BitmapPath: "../../examples/allegro.pcx",
		Filters: []Filter{
			{Name: "Sounds (*.wav;*.voc)", Pattern: "*.wav;*.voc"},
			{Name: "Ogg Vorbis (*.ogg)", Pattern: "*.ogg"},
		},
		Volume:     128,
		Pan:        128,
		Frequency:  1000,
		SampleRate: 44100,
	}
}

// LoadConfig reads name from fs on top of the defaults. A missing file is
// not an error. On any other error the defaults are returned with it.
func LoadConfig(fs vfs.Opener, name string) (Config, error) {
	cfg := DefaultConfig()
	data, err := vfs.ReadFile(fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to open %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d is not positive", c.Width, c.Height)
	case c.Volume < 0 || c.Volume > 255:
		return fmt.Errorf("volume %d out of range 0-255", c.Volume)
	case c.Pan < 0 || c.Pan > 255:
		return fmt.Errorf("pan %d out of range 0-255", c.Pan)
	case c.Frequency <= 0:
		return fmt.Errorf("frequency %d is not positive", c.Frequency)
	case c.BitmapPath == "":
		return errors.New("bitmap path is empty")
	case len(c.Filters) == 0:
		return errors.New("no file filters")
	}
	return nil
}
