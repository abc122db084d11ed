// Copyright 2022 The Oto Authors
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
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process, so it outlives Remove and is
// reused by the next InitContext with the same sample rate.
var otoDevice struct {
	once       sync.Once
	ctx        *oto.Context
	sampleRate int
	err        error
}

type otoDriver struct {
	player *oto.Player
}

// openHardware opens the system device through oto, which tries WASAPI
// first and WinMM second.
func openHardware(m *Mux, bufferSize time.Duration) (driver, error) {
	otoDevice.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   m.sampleRate,
			ChannelCount: m.channelCount,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		})
		if err != nil {
			otoDevice.err = fmt.Errorf("audio: oto: %w", err)
			return
		}
		<-ready
		if err := ctx.Err(); err != nil {
			otoDevice.err = fmt.Errorf("audio: oto: %w", err)
			return
		}
		otoDevice.ctx = ctx
		otoDevice.sampleRate = m.sampleRate
	})
	if otoDevice.err != nil {
		return nil, otoDevice.err
	}
	if otoDevice.sampleRate != m.sampleRate {
		return nil, fmt.Errorf("audio: oto device already runs at %d Hz, cannot reopen at %d Hz",
			otoDevice.sampleRate, m.sampleRate)
	}

	p := otoDevice.ctx.NewPlayer(&mixReader{mux: m})
	p.Play()
	return &otoDriver{player: p}, nil
}

func (d *otoDriver) Name() string {
	return "oto"
}

func (d *otoDriver) Close() error {
	return d.player.Close()
}
