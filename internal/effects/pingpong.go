package effects

// PingPong is a feedback echo whose repeats alternate between the left and
// right channel. Each repeat is fed back with the channels swapped.
type PingPong struct {
	bufL, bufR []float32
	pos        int
	wetDry     float32
	feedback   float32
}

// NewPingPong creates a ping-pong delay.
// samples: delay length in frames, clamped to at least 1
// wetDry: 0 passes the dry signal only, 1 sends all of it through the echo
// feedback: gain applied to each repeat
func NewPingPong(samples int, wetDry, feedback float32) *PingPong {
	if samples < 1 {
		samples = 1
	}
	return &PingPong{
		bufL:     make([]float32, samples),
		bufR:     make([]float32, samples),
		wetDry:   wetDry,
		feedback: feedback,
	}
}

// Len returns the delay length in frames.
func (d *PingPong) Len() int {
	return len(d.bufL)
}

func (d *PingPong) Process(l, r float32) (float32, float32) {
	wetL := d.wetDry*l + d.bufL[d.pos]
	wetR := d.wetDry*r + d.bufR[d.pos]
	dry := 1 - d.wetDry
	d.bufL[d.pos] = d.feedback * wetR
	d.bufR[d.pos] = d.feedback * wetL
	d.pos++
	if d.pos >= len(d.bufL) {
		d.pos = 0
	}
	return dry*l + wetL, dry*r + wetR
}

func (d *PingPong) Reset() {
	for i := range d.bufL {
		d.bufL[i] = 0
		d.bufR[i] = 0
	}
	d.pos = 0
}
