// Command play renders a morphing band-limited wavetable voice to the
// default audio output until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pfcm/wavetable"
	"github.com/pfcm/wavetable/antialias"
	"github.com/pfcm/wavetable/fft"
	"github.com/pfcm/wavetable/filter"
	"github.com/pfcm/wavetable/interp"
	"github.com/pfcm/wavetable/io"
	"github.com/pfcm/wavetable/lfo"
	"github.com/pfcm/wavetable/osc"
	"github.com/pfcm/wavetable/ramp"
)

var (
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
	writeFlag   = flag.Bool("write", false, "if true, writes the output to a wav file in the current directory")
	freqFlag    = flag.Float64("freq", 110, "oscillator frequency in Hz")
	morphFlag   = flag.Float64("morph", 0.2, "morph lfo rate in Hz")
	cutoffFlag  = flag.Float64("cutoff", 2000, "filter cutoff in Hz")
)

const (
	samplerate = 44100
	tableSize  = 2048
)

// tableBounds are the per-octave playback limits the sets are built for.
// Notes above the last bound fall back to the brightest table.
var tableBounds = []float64{40, 80, 160, 320, 640, 1280, 2560, 5120, 10240}

func saw(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 2*float64(i)/float64(n) - 1
	}
	return out
}

func square(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < n/2 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

// voice is the whole signal chain: a morphing oscillator swept between a
// saw and a square by one lfo, through a ladder filter whose cutoff is
// swept by another, into a smoothed gain ramp.
type voice struct {
	osc    *osc.Morph
	morph  *lfo.LFO
	sweep  *lfo.LFO
	filter *filter.Moog[float64]
	gain   *ramp.Value[float64]
	cutoff float64
}

func newVoice(a, b *wavetable.Set, frequency float64) *voice {
	tables := lfo.NewTables(1024)

	morph := lfo.New(tables, samplerate, *morphFlag)
	morph.SetShape(lfo.Triangle)

	sweep := lfo.New(tables, samplerate, 0.1)
	sweep.SetSmoothingTime(0.01)

	m := osc.NewMorph(a, b, samplerate, frequency)

	f := filter.NewMoog[float64](samplerate)
	f.SetResonance(0.4)

	gain := ramp.Linear(0.0, 1)
	gain.SetTime(200, samplerate)
	gain.Set(0.8)

	return &voice{
		osc:    m,
		morph:  morph,
		sweep:  sweep,
		filter: f,
		gain:   gain,
		cutoff: *cutoffFlag,
	}
}

func (v *voice) Next() float64 {
	// Map the morph lfo's -1..1 swing onto 0..1.
	v.osc.SetParam(0.5 + 0.5*v.morph.Next())
	v.filter.SetCutoff(v.cutoff * (1.5 + v.sweep.Next()))
	return v.filter.Process(v.osc.Next()) * v.gain.Next()
}

// meter wraps a source and tracks a smoothed RMS level that the status
// goroutine reads from another goroutine.
type meter struct {
	src wavetable.Source

	mu  sync.Mutex
	acc float64
	n   int
	rms float64
}

func (m *meter) Next() float64 {
	v := m.src.Next()
	m.mu.Lock()
	m.acc += v * v
	m.n++
	if m.n >= 512 {
		m.rms = 0.9*m.rms + 0.1*math.Sqrt(m.acc/float64(m.n))
		m.acc, m.n = 0, 0
	}
	m.mu.Unlock()
	return v
}

func (m *meter) getRMS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rms
}

func buildSets() (*wavetable.Set, *wavetable.Set) {
	b := antialias.NewBuilder(samplerate, fft.New(tableSize))
	kernel := interp.LinearKernel{}
	return b.Set(saw(tableSize), tableBounds, kernel),
		b.Set(square(tableSize), tableBounds, kernel)
}

func main() {
	flag.Parse()

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}
	var filename string
	if *writeFlag {
		filename = fmt.Sprintf("out-%d.wav", time.Now().Unix())
		fmt.Fprintf(os.Stderr, "Writing output to %q\n", filename)
	}

	g, ctx := errgroup.WithContext(interruptContext())

	saws, squares := buildSets()
	m := &meter{src: newVoice(saws, squares, *freqFlag)}

	g.Go(func() error {
		return io.Play(ctx, m, samplerate, filename)
	})
	g.Go(func() error {
		t0 := time.Now()
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				fmt.Printf("\r%.4f: %.2f", time.Since(t0).Seconds(), m.getRMS())
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func interruptContext() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
