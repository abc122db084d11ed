package winsound_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/godoc/vfs/mapfs"

	winsound "github.com/Lundis/go-winsound"
	"github.com/Lundis/go-winsound/audio"
	"github.com/Lundis/go-winsound/gfx"
	"github.com/Lundis/go-winsound/loaders/wav"
)

func wavFile(frames int) string {
	data := make([]byte, 4*frames)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(data[4*i:], 0x2000)
		binary.LittleEndian.PutUint16(data[4*i+2:], 0x2000)
	}
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(4+8+16+8+len(data)))
	b.WriteString("WAVEfmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint32(44100))
	binary.Write(&b, binary.LittleEndian, uint32(44100*4))
	binary.Write(&b, binary.LittleEndian, uint16(4))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(len(data)))
	b.Write(data)
	return b.String()
}

func vocFile() string {
	var b bytes.Buffer
	b.WriteString("Creative Voice File\x1a")
	binary.Write(&b, binary.LittleEndian, uint16(26))
	version := uint16(0x010a)
	binary.Write(&b, binary.LittleEndian, version)
	binary.Write(&b, binary.LittleEndian, ^version+0x1234)
	b.Write([]byte{1, 6, 0, 0, 156, 0, 128, 160, 192, 224})
	b.WriteByte(0)
	return b.String()
}

func pcxFile() string {
	hdr := make([]byte, 128)
	hdr[0], hdr[1], hdr[2], hdr[3] = 0x0a, 5, 1, 8
	binary.LittleEndian.PutUint16(hdr[8:], 1)
	binary.LittleEndian.PutUint16(hdr[10:], 0)
	hdr[65] = 1
	binary.LittleEndian.PutUint16(hdr[66:], 2)
	b := bytes.NewBuffer(hdr)
	b.Write([]byte{1, 2, 0x0c})
	b.Write(make([]byte, 768))
	return b.String()
}

func newLibrary(t *testing.T, files map[string]string) *winsound.Library {
	t.Helper()
	lib := winsound.New(winsound.Options{FS: mapfs.New(files)})
	lib.SetWindow(0x1234)
	if err := lib.Init(); err != nil {
		t.Fatal(err)
	}
	if err := lib.InstallSound(audio.DigiNone, audio.MidiNone); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(lib.RemoveSound)
	return lib
}

func TestInstallSoundRequiresInit(t *testing.T) {
	lib := winsound.New(winsound.Options{})
	if err := lib.InstallSound(audio.DigiNone, audio.MidiNone); !errors.Is(err, winsound.ErrNotInitialized) {
		t.Fatalf("got %v, want ErrNotInitialized", err)
	}
	if audio.Installed() {
		t.Fatalf("no context should have been created")
	}
}

func TestInstallSoundRejectsMidi(t *testing.T) {
	lib := winsound.New(winsound.Options{})
	lib.Init()
	if err := lib.InstallSound(audio.DigiNone, audio.MidiAutodetect); !errors.Is(err, audio.ErrMidiUnsupported) {
		t.Fatalf("got %v, want ErrMidiUnsupported", err)
	}
}

func TestWindowBinding(t *testing.T) {
	lib := winsound.New(winsound.Options{})
	lib.SetWindow(42)
	if lib.Window() != 42 {
		t.Fatalf("window %#x", lib.Window())
	}
}

func TestLoadAndPlaySample(t *testing.T) {
	lib := newLibrary(t, map[string]string{
		"sounds/a.wav": wavFile(4410),
		"sounds/b.VOC": vocFile(),
	})

	a, err := lib.LoadSample("sounds/a.wav")
	if err != nil {
		t.Fatal(err)
	}
	if a.Duration().Milliseconds() != 100 {
		t.Fatalf("duration %v, want 100ms", a.Duration())
	}
	lib.PlaySample(a, 128, 128, 1000, false)

	b, err := lib.LoadSample("sounds/b.VOC")
	if err != nil {
		t.Fatalf("voc sample should load: %v", err)
	}
	if b.Path() != "sounds/b.VOC" {
		t.Fatalf("path %q", b.Path())
	}

	lib.DestroySample(a)
	if !a.Destroyed() {
		t.Fatalf("sample should be destroyed")
	}
	lib.PlaySample(a, 128, 128, 1000, false)
	lib.DestroySample(a)
	lib.DestroySample(nil)
	lib.PlaySample(nil, 128, 128, 1000, false)
}

func TestPlaySampleStartsVoiceEveryTime(t *testing.T) {
	lib := newLibrary(t, map[string]string{"long.wav": wavFile(44100)})
	s, err := lib.LoadSample("long.wav")
	if err != nil {
		t.Fatal(err)
	}
	defer lib.DestroySample(s)

	lib.PlaySample(s, 128, 128, 1000, false)
	lib.PlaySample(s, 128, 128, 1000, false)
	if got := s.Voices(); got != 2 {
		t.Fatalf("got %d voices after two plays, want 2", got)
	}
}

func TestLoadSampleRejectsNonSound(t *testing.T) {
	lib := newLibrary(t, map[string]string{
		"bad.wav": "this is not a standard sound file",
		"a.txt":   wavFile(10),
	})

	if _, err := lib.LoadSample("bad.wav"); err == nil {
		t.Fatalf("text renamed to .wav should not load")
	}
	if _, err := lib.LoadSample("a.txt"); !errors.Is(err, winsound.ErrUnknownSampleType) {
		t.Fatalf("got %v, want ErrUnknownSampleType", err)
	}
	if _, err := lib.LoadSample("missing.wav"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want a not-exist error", err)
	}
}

func TestLoadSampleWithoutSound(t *testing.T) {
	lib := winsound.New(winsound.Options{FS: mapfs.New(map[string]string{"a.wav": wavFile(10)})})
	if _, err := lib.LoadSample("a.wav"); !errors.Is(err, audio.ErrNotInstalled) {
		t.Fatalf("got %v, want ErrNotInstalled", err)
	}
}

func TestLoadSampleFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	if err := os.WriteFile(path, []byte(wavFile(441)), 0o600); err != nil {
		t.Fatal(err)
	}
	lib := winsound.New(winsound.Options{})
	lib.Init()
	if err := lib.InstallSound(audio.DigiNone, audio.MidiNone); err != nil {
		t.Fatal(err)
	}
	defer lib.RemoveSound()

	s, err := lib.LoadSample(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Duration().Milliseconds() != 10 {
		t.Fatalf("duration %v", s.Duration())
	}
	if _, err := wav.LoadWavFile(path, 44100); err != nil {
		t.Fatalf("the same file should load directly: %v", err)
	}
}

func TestRemoveSoundSilencesSamples(t *testing.T) {
	lib := newLibrary(t, map[string]string{"a.wav": wavFile(44100)})
	s, err := lib.LoadSample("a.wav")
	if err != nil {
		t.Fatal(err)
	}
	lib.PlaySample(s, 255, 128, 1000, true)
	lib.RemoveSound()
	if audio.Installed() {
		t.Fatalf("sound should be removed")
	}
	lib.PlaySample(s, 255, 128, 1000, true)
	lib.DestroySample(s)
}

func TestLoadBitmapHonoursConversion(t *testing.T) {
	lib := winsound.New(winsound.Options{FS: mapfs.New(map[string]string{"examples/allegro.pcx": pcxFile()})})
	lib.Init()

	bmp, pal, err := lib.LoadBitmap("examples/allegro.pcx")
	if err != nil {
		t.Fatal(err)
	}
	if bmp.Depth() != 32 || len(pal) != 256 {
		t.Fatalf("default conversion: depth %d, palette %d", bmp.Depth(), len(pal))
	}

	lib.SetColorConversion(gfx.ConvNone)
	bmp, _, err = lib.LoadBitmap("examples/allegro.pcx")
	if err != nil {
		t.Fatal(err)
	}
	if bmp.Depth() != 8 {
		t.Fatalf("ConvNone: depth %d, want 8", bmp.Depth())
	}

	if _, _, err := lib.LoadBitmap("examples/missing.pcx"); err == nil {
		t.Fatalf("missing bitmap should fail")
	}
}
