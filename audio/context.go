// Copyright 2021 The Oto Authors
// Copyright 2025 Lundis
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

package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	contextCreationMutex sync.Mutex

	mux *Mux
	dev *device
)

const ChannelCount = 2

// DefaultSampleRate is used when NewContextOptions.SampleRate is zero.
const DefaultSampleRate = 44100

var (
	ErrNotInstalled    = errors.New("audio: no context installed")
	ErrMidiUnsupported = errors.New("audio: MIDI output is not supported")
)

// DigiDriver selects the digital sound output.
type DigiDriver int

const (
	// DigiAutodetect opens the system audio device and falls back to
	// silent output when none can be opened.
	DigiAutodetect DigiDriver = iota
	// DigiNone mixes sounds in real time but discards the output.
	DigiNone
)

func (d DigiDriver) String() string {
	switch d {
	case DigiAutodetect:
		return "autodetect"
	case DigiNone:
		return "none"
	default:
		return fmt.Sprintf("digi driver %d", int(d))
	}
}

// MidiDriver selects the MIDI output. Only MidiNone is implemented.
type MidiDriver int

const (
	MidiNone MidiDriver = iota
	MidiAutodetect
)

// NewContextOptions represents options for InitContext.
type NewContextOptions struct {
	// SampleRate specifies the number of samples that should be played during one second.
	// Usual numbers are 44100 or 48000. One context has only one sample rate; loaders
	// resample everything to it.
	SampleRate int

	// BufferSize specifies a buffer size in the underlying device.
	//
	// If 0 is specified, the driver's default buffer size is used.
	// Too big buffer size can increase the latency time.
	// On the other hand, too small buffer size can cause glitch noises due to buffer shortage.
	BufferSize time.Duration

	Driver DigiDriver
	Midi   MidiDriver
}

// InitContext creates the mixer and opens the output driver.
// It returns a channel that is closed when the driver is ready.
//
// Only one context can exist at a time; call Remove before creating another one.
func InitContext(options *NewContextOptions) (chan struct{}, error) {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()

	if mux != nil {
		return nil, fmt.Errorf("audio: context was already created")
	}
	if options.Midi != MidiNone {
		return nil, ErrMidiUnsupported
	}
	sampleRate := options.SampleRate
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	m := newMux(sampleRate, ChannelCount)
	d := newDevice(m, options.Driver, options.BufferSize)
	mux = m
	dev = d
	return d.ready, nil
}

// Remove stops the output driver and silences every sound.
// Sounds created before Remove stay valid Go values but never play again.
// Calling Remove without a context is a no-op.
func Remove() {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()

	if mux == nil {
		return
	}
	dev.close()
	for _, s := range mux.close() {
		s.Reset()
	}
	resetChannelSettings()
	mux = nil
	dev = nil
}

// Installed reports whether a context exists.
func Installed() bool {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()
	return mux != nil
}

// SampleRate returns the context sample rate, or 0 when no context is installed.
func SampleRate() int {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()
	if mux == nil {
		return 0
	}
	return mux.sampleRate
}

// DriverName names the driver selected by the last InitContext.
// It blocks until the driver is ready.
func DriverName() string {
	contextCreationMutex.Lock()
	d := dev
	contextCreationMutex.Unlock()
	if d == nil {
		return ""
	}
	<-d.ready
	return d.driverName()
}

// Err returns the error that made autodetection fall back to silent output, if any.
func Err() error {
	contextCreationMutex.Lock()
	d := dev
	contextCreationMutex.Unlock()
	if d == nil {
		return ErrNotInstalled
	}
	return d.err.Get()
}

func currentMux() *Mux {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()
	return mux
}
