// Command mktables extracts a single cycle from an audio file, resamples it
// to a power-of-two table size, builds a band-limited wavetable set from it
// and writes each table out as a wav file.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	samplerate "github.com/dh1tw/gosamplerate"
	"golang.org/x/sync/errgroup"

	"github.com/pfcm/wavetable/antialias"
	"github.com/pfcm/wavetable/fft"
	"github.com/pfcm/wavetable/interp"
	"github.com/pfcm/wavetable/io"
	"github.com/pfcm/wavetable/wave"
)

var (
	inFlag   = flag.String("in", "", "input wav or mp3 file; if empty a sawtooth cycle is generated instead")
	outFlag  = flag.String("out", "tables", "output directory for the rendered tables")
	sizeFlag = flag.Int("size", 2048, "table size in samples, must be a power of 2")
	rateFlag = flag.Int("rate", 44100, "sample rate the tables are built for")
)

// tableBounds are the per-octave playback limits each set is built with.
var tableBounds = []float64{40, 80, 160, 320, 640, 1280, 2560, 5120, 10240}

func main() {
	flag.Parse()
	if n := *sizeFlag; n <= 0 || n&(n-1) != 0 {
		log.Fatalf("-size %d is not a power of 2", n)
	}

	cycle, err := oneCycle(*inFlag, *sizeFlag)
	if err != nil {
		log.Fatal(err)
	}
	wave.NormalizePeak(cycle, 1)

	b := antialias.NewBuilder(float64(*rateFlag), fft.New(*sizeFlag))
	tables := b.Tables(cycle, tableBounds, interp.LinearKernel{})

	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		log.Fatal(err)
	}
	var g errgroup.Group
	for i, t := range tables {
		filename := filepath.Join(*outFlag,
			fmt.Sprintf("table-%02d-%05.0fhz.wav", i, t.MaxPlaybackFrequency()))
		g.Go(func() error {
			return io.WriteTable(filename, t, *rateFlag)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %d tables to %s\n", len(tables), *outFlag)
}

// oneCycle produces a single period of the source waveform, size samples
// long. With no input file it is an ideal sawtooth; otherwise the file's
// pitch is detected, one period is cut out and resampled to size.
func oneCycle(filename string, size int) ([]float64, error) {
	if filename == "" {
		out := make([]float64, size)
		for i := range out {
			out[i] = 2*float64(i)/float64(size) - 1
		}
		return out, nil
	}

	xs, sr, err := io.LoadSample(filename)
	if err != nil {
		return nil, err
	}
	info, ok := wave.FindPitch(xs, float64(sr), wave.DefaultPitchParams)
	if !ok {
		return nil, fmt.Errorf("could not detect a pitch in %s", filename)
	}
	period := float64(sr) / info.Frequency
	fmt.Printf("%s: %.1f Hz (period %.1f samples, stddev %.2f)\n",
		filename, info.Frequency, period, info.StandardDeviation)

	// Cut one period from the middle of the sample, away from the attack.
	start := len(xs) / 2
	n := int(math.Round(period))
	if start+n > len(xs) {
		start = len(xs) - n
	}
	if start < 0 {
		return nil, fmt.Errorf("%s: too short for one period of %.1f Hz", filename, info.Frequency)
	}
	return resize(xs[start:start+n], size)
}

// resize resamples one period to exactly size samples.
func resize(cycle []float64, size int) ([]float64, error) {
	in := make([]float32, len(cycle))
	for i, v := range cycle {
		in[i] = float32(v)
	}
	ratio := float64(size) / float64(len(cycle))
	if !samplerate.IsValidRatio(ratio) {
		return nil, fmt.Errorf("resampling ratio %f out of range", ratio)
	}
	out, err := samplerate.Simple(in, ratio, 1, samplerate.SRC_SINC_BEST_QUALITY)
	if err != nil {
		return nil, fmt.Errorf("resampling: %w", err)
	}

	// The converter can come up a few samples short of the exact ratio;
	// pad by wrapping around, which is harmless for periodic data.
	result := make([]float64, size)
	for i := range result {
		result[i] = float64(out[i%len(out)])
	}
	return result, nil
}
