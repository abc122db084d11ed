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
	"time"
)

const (
	// MaxVolume is the loudest voice volume accepted by PlayVoice.
	MaxVolume = 255
	// PanCenter plays a voice at full gain on both sides.
	PanCenter = 128
	// NormalPitch plays a voice at its recorded speed.
	NormalPitch = 1000
)

// NewSound creates a new, ready-to-use Sound belonging to the installed context.
// It returns nil when no context is installed.
//
//	[data]      = [frame 1] [frame 2] [frame 3] ...
//	[frame *]   = [left] [right]
//	[channel *] = [float32]
//
// All the functions of a Sound returned by NewSound are concurrent-safe.
func NewSound(data []float32, volume float32, channel ChannelId) *Sound {
	m := currentMux()
	if m == nil {
		return nil
	}
	return &Sound{
		mux:          m,
		data:         data,
		volume:       volume,
		channelId:    channel,
		throttlingMs: 50,
	}
}

type Sound struct {
	mux          *Mux
	data         []float32
	voices       []*voice
	channelId    ChannelId
	volume       float32
	m            sync.Mutex
	throttlingMs int
	destroyed    bool
}

type voice struct {
	pos     float64 // source frame
	step    float64 // source frames per output frame
	elapsed int     // output frames produced
	left    float32
	right   float32
	loop    bool
}

func (v *voice) playing(frames int) bool {
	return frames > 0 && (v.loop || v.pos < float64(frames))
}

// Play starts a new voice at full volume, centred, at normal pitch.
func (p *Sound) Play() {
	p.PlayVoice(MaxVolume, PanCenter, NormalPitch, false)
}

// PlayVoice starts a voice of this sound.
// vol ranges from 0 to 255, pan from 0 (left) to 255 (right) and freq is the
// playback speed in thousandths of the recorded one. A looping voice restarts
// from the first frame when it reaches the end.
func (p *Sound) PlayVoice(vol, pan, freq int, loop bool) {
	if freq <= 0 {
		return
	}
	p.m.Lock()
	if p.playImpl(clamp(vol, 0, MaxVolume), clamp(pan, 0, 255), freq, loop) {
		p.mux.addSound(p)
	}
	p.m.Unlock()
}

func (p *Sound) playImpl(vol, pan, freq int, loop bool) bool {
	frames := p.frames()
	if p.destroyed || frames == 0 {
		return false
	}
	throttleFrames := p.mux.sampleRate * p.throttlingMs / 1000

	// re-use a finished voice if possible
	var free *voice
	for _, v := range p.voices {
		if !v.playing(frames) {
			if free == nil {
				free = v
			}
			continue
		}
		if !loop && !v.loop && v.elapsed < throttleFrames {
			// don't start playing again until throttlingMs has passed
			return false
		}
	}
	if free == nil {
		free = &voice{}
		p.voices = append(p.voices, free)
	}
	left, right := panGains(vol, pan)
	*free = voice{
		step:  float64(freq) / NormalPitch,
		left:  left,
		right: right,
		loop:  loop,
	}
	return true
}

// panGains keeps both sides at full gain in the centre and fades the
// opposite side linearly towards the edges.
func panGains(vol, pan int) (left, right float32) {
	g := float32(vol) / MaxVolume
	left = g * min(1, float32(255-pan)/127)
	right = g * min(1, float32(pan)/PanCenter)
	return
}

func (p *Sound) Stop() {
	p.m.Lock()
	p.voices = p.voices[:0]
	p.m.Unlock()
}

func (p *Sound) Reset() {
	p.Stop()
}

// Destroy stops the sound, detaches it from the mixer and drops its data.
// Playing a destroyed sound does nothing. Destroy is idempotent.
func (p *Sound) Destroy() {
	p.m.Lock()
	p.destroyed = true
	p.voices = nil
	p.data = nil
	p.m.Unlock()
	p.mux.removeSound(p)
}

func (p *Sound) Destroyed() bool {
	p.m.Lock()
	defer p.m.Unlock()
	return p.destroyed
}

func (p *Sound) SetThrottlingMs(ms int) {
	p.m.Lock()
	p.throttlingMs = ms
	p.m.Unlock()
}

func (p *Sound) IsPlaying() bool {
	p.m.Lock()
	defer p.m.Unlock()

	frames := p.frames()
	for _, v := range p.voices {
		if v.playing(frames) {
			return true
		}
	}
	return false
}

// Voices counts the voices that have not finished.
func (p *Sound) Voices() int {
	p.m.Lock()
	defer p.m.Unlock()

	n := 0
	frames := p.frames()
	for _, v := range p.voices {
		if v.playing(frames) {
			n++
		}
	}
	return n
}

// Duration reports the length of the sound at normal pitch.
func (p *Sound) Duration() time.Duration {
	p.m.Lock()
	defer p.m.Unlock()
	return time.Duration(p.frames()) * time.Second / time.Duration(p.mux.sampleRate)
}

func (p *Sound) frames() int {
	return len(p.data) / ChannelCount
}

func (p *Sound) readBufferAndAdd(buf []float32) {
	channelSettings := getChannelSettings(p.channelId)
	if channelSettings.paused {
		return
	}

	p.m.Lock()

	volumeMultiplier := p.volume * channelSettings.volume
	frames := p.frames()
	end := float64(frames)
	finishedPlaying := true
	for _, v := range p.voices {
		if !v.playing(frames) {
			continue
		}
		for i := 0; i+1 < len(buf); i += ChannelCount {
			if v.pos >= end {
				if !v.loop {
					break
				}
				v.pos = math.Mod(v.pos, end)
			}
			di := int(v.pos) * ChannelCount
			buf[i] += p.data[di] * v.left * volumeMultiplier
			buf[i+1] += p.data[di+1] * v.right * volumeMultiplier
			v.pos += v.step
			v.elapsed++
		}
		if v.playing(frames) {
			finishedPlaying = false
		}
	}

	if finishedPlaying {
		p.mux.removeSound(p)
	}

	p.m.Unlock()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
