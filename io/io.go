// package io does audio in and out: realtime playback, wav files for
// rendered tables, and sample loading for table extraction.
package io

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	stdio "io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/pfcm/wavetable"
	"github.com/pfcm/wavetable/internal/buffer"
)

// Play sends src to the default output device until the context is
// cancelled. Output is mono float32 at the given sample rate. If filename is
// not "", the output is also written there as a 16 bit wav file.
func Play(ctx context.Context, src wavetable.Source, samplerate int, filename string) error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		fmt.Fprint(os.Stderr, msg)
	})
	if err != nil {
		return err
	}
	defer func() {
		mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = 1
	cfg.SampleRate = uint32(samplerate)

	var rec *recorder
	if filename != "" {
		rec, err = newRecorder(filename, samplerate)
		if err != nil {
			return err
		}
	}

	recv := func(out, in []byte, framecount uint32) {
		if framecount == 0 {
			return
		}
		scratch := buffer.Get(int(framecount))
		defer buffer.Put(scratch)
		for i := range scratch {
			scratch[i] = src.Next()
		}
		o := out[:0]
		for _, v := range scratch {
			o = binary.LittleEndian.AppendUint32(o, math.Float32bits(float32(v)))
		}
		if rec != nil {
			rec.write(scratch)
		}
	}

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: recv,
	})
	if err != nil {
		return err
	}
	if err := device.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	device.Uninit()

	if rec != nil {
		return rec.close()
	}
	return nil
}

// recorder streams float64 samples into a mono 16 bit wav file. write is
// called from the audio callback, so it converts into a reused IntBuffer
// rather than allocating.
type recorder struct {
	f   *os.File
	enc *wav.Encoder
	buf *audio.IntBuffer
}

func newRecorder(filename string, samplerate int) (*recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &recorder{
		f:   f,
		enc: wav.NewEncoder(f, samplerate, 16, 1, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: samplerate},
			SourceBitDepth: 16,
		},
	}, nil
}

func (r *recorder) write(samples []float64) {
	if cap(r.buf.Data) < len(samples) {
		r.buf.Data = make([]int, len(samples))
	}
	r.buf.Data = r.buf.Data[:len(samples)]
	for i, v := range samples {
		r.buf.Data[i] = int(clamp(v) * 32767)
	}
	if err := r.enc.Write(r.buf); err != nil {
		panic(err)
	}
}

func (r *recorder) close() error {
	if err := r.enc.Close(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}

// WriteTable writes a single table as a mono 16 bit wav file, for
// inspecting rendered tables in an editor.
func WriteTable(filename string, table *wavetable.Table, samplerate int) error {
	r, err := newRecorder(filename, samplerate)
	if err != nil {
		return err
	}
	r.write(table.Data())
	return r.close()
}

// LoadSample reads an audio file into mono float64 samples in [-1, 1] and
// reports its sample rate. Wav and mp3 files are supported, chosen by file
// extension.
func LoadSample(filename string) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return loadWav(filename)
	case ".mp3":
		return loadMP3(filename)
	default:
		return nil, 0, fmt.Errorf("io: unsupported file type %q", filepath.Ext(filename))
	}
}

func loadWav(filename string) ([]float64, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("io: decoding %s: %w", filename, err)
	}
	if !d.WasPCMAccessed() || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("io: no samples in %s", filename)
	}

	channels := buf.Format.NumChannels
	scale := 1 / float64(int(1)<<(buf.SourceBitDepth-1))
	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum * scale / float64(channels)
	}
	return out, buf.Format.SampleRate, nil
}

func loadMP3(filename string) ([]float64, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("io: decoding %s: %w", filename, err)
	}

	// go-mp3 always emits 16 bit little endian stereo frames.
	raw := make([]byte, 0, int(d.Length()))
	chunk := make([]byte, 8192)
	for {
		n, err := d.Read(chunk)
		raw = append(raw, chunk[:n]...)
		if err != nil {
			if errors.Is(err, stdio.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("io: decoding %s: %w", filename, err)
		}
	}

	out := make([]float64, len(raw)/4)
	for i := range out {
		l := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		r := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		out[i] = (float64(l) + float64(r)) / (2 * 32768)
	}
	return out, d.SampleRate(), nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
