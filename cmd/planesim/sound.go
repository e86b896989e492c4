package main

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	cueSampleRate beep.SampleRate = 44100
	cueFreq                       = 880.0
	cueDuration                   = 120 * time.Millisecond
)

// commitCue plays a short placement blip. Degrades gracefully: if no audio
// backend is available the cue is disabled and the sandbox stays silent
type commitCue struct {
	enabled bool
}

func newCommitCue(log *zap.Logger) *commitCue {
	if err := speaker.Init(cueSampleRate, cueSampleRate.N(20*time.Millisecond)); err != nil {
		log.Warn("audio backend unavailable, commit cue disabled", zap.Error(err))
		return &commitCue{}
	}
	return &commitCue{enabled: true}
}

func (c *commitCue) Play() {
	if !c.enabled {
		return
	}
	speaker.Play(newBlip())
}

// blip is a sine burst with a linear fade-out
type blip struct {
	phase    float64
	position int
	total    int
}

func newBlip() beep.Streamer {
	return &blip{total: cueSampleRate.N(cueDuration)}
}

func (b *blip) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if b.position >= b.total {
			return i, false
		}
		fade := 1.0 - float64(b.position)/float64(b.total)
		val := math.Sin(2*math.Pi*b.phase) * fade * 0.4
		samples[i][0] = val
		samples[i][1] = val

		b.phase += cueFreq / float64(cueSampleRate)
		b.phase -= math.Floor(b.phase)
		b.position++
	}
	return len(samples), true
}

func (b *blip) Err() error { return nil }
