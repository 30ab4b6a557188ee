package audio

import (
	"encoding/binary"
	"math"
	"sync"
)

// SampleSource fills interleaved stereo float32 buffers on the audio thread.
type SampleSource interface {
	Process(dst []float32)
}

// Backend is a host audio output pulling from a SampleSource.
type Backend interface {
	Play()
	Pause()
	Stop() error
}

const bytesPerFrame = 2 * 4

// StreamReader adapts a SampleSource to an io.Reader of little-endian float32
// stereo PCM. Reads are rounded down to whole frames. It never reports EOF:
// an effect engine plays silence while idle.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i, s := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * bytesPerFrame, nil
}

func (r *StreamReader) Close() error { return nil }
