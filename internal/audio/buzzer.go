// Package audio drives the speaker as the game's tone generator. A period
// is converted to a frequency the way a timer-driven buzzer would: the
// clock rate divided by the period.
package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 50 * time.Millisecond
	amplitude  = 0.25
)

// Frequency converts a tone period into hertz. Non-positive periods are
// silence.
func Frequency(clockHz, period int) float64 {
	if period <= 0 || clockHz <= 0 {
		return 0
	}
	return float64(clockHz) / float64(period)
}

// squareWave is an endless square wave whose frequency may change while it
// streams. Frequency 0 produces silence.
type squareWave struct {
	freq  atomic.Uint64 // math.Float64bits
	phase float64
	rate  beep.SampleRate
}

func (w *squareWave) setFrequency(hz float64) {
	w.freq.Store(math.Float64bits(hz))
}

func (w *squareWave) frequency() float64 {
	return math.Float64frombits(w.freq.Load())
}

func (w *squareWave) Stream(samples [][2]float64) (n int, ok bool) {
	hz := w.frequency()
	for i := range samples {
		var val float64
		if hz > 0 {
			if w.phase < 0.5 {
				val = amplitude
			} else {
				val = -amplitude
			}
			w.phase += hz / float64(w.rate)
			w.phase -= math.Floor(w.phase)
		}
		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (w *squareWave) Err() error { return nil }

// Options configures a Buzzer.
type Options struct {
	ClockHz int     // timer clock the periods are counted in
	Volume  float64 // log2 gain, 0 is unity
	Muted   bool
}

// Buzzer implements hal.Tone on the default audio device. Until Initialize
// succeeds it only records the requested frequency.
type Buzzer struct {
	opts Options
	wave *squareWave

	mu          sync.Mutex
	initialized bool
	period      atomic.Int64
}

// NewBuzzer creates a silent buzzer.
func NewBuzzer(opts Options) *Buzzer {
	return &Buzzer{
		opts: opts,
		wave: &squareWave{rate: sampleRate},
	}
}

// Initialize opens the audio device and starts streaming the tone.
func (b *Buzzer) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(&effects.Volume{
		Streamer: b.wave,
		Base:     2,
		Volume:   b.opts.Volume,
		Silent:   b.opts.Muted,
	})
	b.initialized = true
	return nil
}

// SetTonePeriod implements hal.Tone.
func (b *Buzzer) SetTonePeriod(period int) {
	b.period.Store(int64(period))
	b.wave.setFrequency(Frequency(b.opts.ClockHz, period))
}

// Period returns the last period requested.
func (b *Buzzer) Period() int {
	return int(b.period.Load())
}

// Hz returns the frequency currently being generated.
func (b *Buzzer) Hz() float64 {
	return b.wave.frequency()
}

// Close silences the tone and releases the audio device.
func (b *Buzzer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.wave.setFrequency(0)
	if !b.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.initialized = false
}
