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
	"math"
	"sync"
	"unsafe"
)

// Mux is a low-level multiplexer of sounds.
// Drivers pull mixed stereo frames from it with ReadFloat32s.
type Mux struct {
	sampleRate   int
	channelCount int

	sounds map[*Sound]struct{}
	closed bool
	m      sync.Mutex
}

func newMux(sampleRate int, channelCount int) *Mux {
	return &Mux{
		sampleRate:   sampleRate,
		channelCount: channelCount,
		sounds:       map[*Sound]struct{}{},
	}
}

func (m *Mux) addSound(s *Sound) {
	m.m.Lock()
	if !m.closed {
		m.sounds[s] = struct{}{}
	}
	m.m.Unlock()
}

func (m *Mux) removeSound(s *Sound) {
	m.m.Lock()
	delete(m.sounds, s)
	m.m.Unlock()
}

// active reports how many sounds currently feed the mix.
func (m *Mux) active() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.sounds)
}

// close detaches every sound, returns them and refuses new ones.
func (m *Mux) close() []*Sound {
	m.m.Lock()
	defer m.m.Unlock()
	m.closed = true
	sounds := make([]*Sound, 0, len(m.sounds))
	for s := range m.sounds {
		sounds = append(sounds, s)
	}
	m.sounds = map[*Sound]struct{}{}
	return sounds
}

// ReadFloat32s fills buf with the multiplexed data of the sounds as float32 values.
func (m *Mux) ReadFloat32s(buf []float32) {
	m.m.Lock()
	sounds := make([]*Sound, 0, len(m.sounds))
	for s := range m.sounds {
		sounds = append(sounds, s)
	}
	m.m.Unlock()

	for i := range buf {
		buf[i] = 0
	}
	for _, s := range sounds {
		s.readBufferAndAdd(buf)
	}
	for i, v := range buf {
		if v > 1 {
			buf[i] = 1
		} else if v < -1 {
			buf[i] = -1
		}
	}
}

// mixReader exposes a Mux as a little-endian float32 byte stream.
type mixReader struct {
	mux       *Mux
	sampleBuf []float32
}

func (r *mixReader) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	if numSamples == 0 {
		return 0, nil
	}
	if len(r.sampleBuf) < numSamples {
		r.sampleBuf = make([]float32, numSamples)
	}
	samples := r.sampleBuf[:numSamples]
	r.mux.ReadFloat32s(samples)

	if nativeLittleEndian {
		copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), numSamples*4))
	} else {
		for i, v := range samples {
			b := math.Float32bits(v)
			p[4*i] = byte(b)
			p[4*i+1] = byte(b >> 8)
			p[4*i+2] = byte(b >> 16)
			p[4*i+3] = byte(b >> 24)
		}
	}
	return numSamples * 4, nil
}

var nativeLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()
