package audio

import (
	"errors"
	"log"
	"sync"
	"time"
)

var errDeviceNotFound = errors.New("audio: device not found")

// driver pulls frames from a Mux and hands them to an output.
type driver interface {
	Name() string
	Close() error
}

// device owns the driver chosen for one context.
type device struct {
	ready chan struct{}
	err   errorLatch

	m   sync.Mutex
	drv driver
}

func newDevice(m *Mux, digi DigiDriver, bufferSize time.Duration) *device {
	d := &device{ready: make(chan struct{})}

	if digi == DigiNone {
		d.set(newNullDriver(m))
		close(d.ready)
		return d
	}

	// Opening a hardware device might take some time. Do this asynchronously.
	go func() {
		defer close(d.ready)

		hw, err := openHardware(m, bufferSize)
		if err == nil {
			log.Printf("audio: using %s output at %d Hz", hw.Name(), m.sampleRate)
			d.set(hw)
			return
		}
		if !errors.Is(err, errDeviceNotFound) {
			d.err.Set(err)
		}
		log.Printf("audio: %s: no usable device (%v), output is discarded", digi, err)
		d.set(newNullDriver(m))
	}()
	return d
}

func (d *device) set(drv driver) {
	d.m.Lock()
	d.drv = drv
	d.m.Unlock()
}

func (d *device) driverName() string {
	d.m.Lock()
	defer d.m.Unlock()
	if d.drv == nil {
		return ""
	}
	return d.drv.Name()
}

func (d *device) close() {
	<-d.ready
	d.m.Lock()
	defer d.m.Unlock()
	if d.drv == nil {
		return
	}
	if err := d.drv.Close(); err != nil {
		log.Printf("audio: closing %s output: %v", d.drv.Name(), err)
	}
	d.drv = nil
}

// nullDriver consumes the mix at real-time speed and throws it away,
// so sounds still advance and finish when there is no device.
type nullDriver struct {
	mux  *Mux
	done chan struct{}
	wg   sync.WaitGroup
}

func newNullDriver(m *Mux) *nullDriver {
	c := &nullDriver{
		mux:  m,
		done: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.loop()
	return c
}

func (c *nullDriver) Name() string {
	return "null"
}

func (c *nullDriver) loop() {
	defer c.wg.Done()

	var buf32 [4096]float32
	sleep := time.Duration(float64(time.Second) * float64(len(buf32)) / float64(c.mux.channelCount) / float64(c.mux.sampleRate))
	ticker := time.NewTicker(sleep)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mux.ReadFloat32s(buf32[:])
		}
	}
}

func (c *nullDriver) Close() error {
	close(c.done)
	c.wg.Wait()
	return nil
}
