package main

import (
	"math"
	"math/bits"
	"math/cmplx"

	"github.com/ktye/fft"
)

type stats struct {
	peak  float64
	rms   float64
	pitch float64 // strongest bin of the opening window, 0 when too short
}

const maxWindow = 1 << 14

// analyze measures interleaved stereo samples. Pitch is estimated on the mono
// mix of the largest power-of-two window at the start of the sound.
func analyze(samples []float32, sampleRate int) (stats, error) {
	var st stats
	frames := len(samples) / 2
	if frames == 0 {
		return st, nil
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		st.peak = max(st.peak, math.Abs(v))
		sum += v * v
	}
	st.rms = math.Sqrt(sum / float64(len(samples)))

	size := min(1<<(bits.Len(uint(frames))-1), maxWindow)
	if size < 64 {
		return st, nil
	}
	f, err := fft.New(size)
	if err != nil {
		return st, err
	}
	x := make([]complex128, size)
	for i := range x {
		x[i] = complex(float64(samples[2*i]+samples[2*i+1]), 0)
	}
	x = f.Transform(x)
	peak, peakMag := 0, 0.0
	for i := 1; i < size/2; i++ {
		if m := cmplx.Abs(x[i]); m > peakMag {
			peak, peakMag = i, m
		}
	}
	st.pitch = float64(peak) * float64(sampleRate) / float64(size)
	return st, nil
}
