// Package sampler runs the fixed-rate capture loop: one expression reading
// per tick, normalized and appended to the history, with a cue emitted for
// the dominant emotion.
package sampler

import (
	"context"
	"log"
	"time"

	"github.com/meowmocha24/emotionmap/internal/config"
	"github.com/meowmocha24/emotionmap/internal/cue"
	"github.com/meowmocha24/emotionmap/internal/emotion"
	"github.com/meowmocha24/emotionmap/internal/source"
	"github.com/meowmocha24/emotionmap/internal/ws"
)

type Sampler struct {
	cfg         *config.Config
	src         source.Source
	history     *emotion.History
	emitter     *cue.Emitter
	broadcaster *ws.Broadcaster

	ticks   int
	failing bool // last attempt errored; gates state-change logging
}

func New(cfg *config.Config, src source.Source, history *emotion.History, emitter *cue.Emitter, broadcaster *ws.Broadcaster) *Sampler {
	return &Sampler{
		cfg:         cfg,
		src:         src,
		history:     history,
		emitter:     emitter,
		broadcaster: broadcaster,
	}
}

// Run probes the source once, then samples on every tick until the context
// is cancelled. A probe failure is logged and tolerated: the loop keeps
// ticking and records zero samples until readings succeed.
func (s *Sampler) Run(ctx context.Context) {
	if err := s.src.Probe(ctx); err != nil {
		log.Printf("[%s] probe failed: %v (continuing without readings)", s.src.Name(), err)
	}

	ticker := time.NewTicker(s.cfg.Sampler.Interval)
	defer ticker.Stop()

	log.Printf("Sampler started: source=%s interval=%s", s.src.Name(), s.cfg.Sampler.Interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Sampler stopped")
			return
		case now := <-ticker.C:
			s.sampleOnce(ctx, now)
		}
	}
}

// sampleOnce performs one full tick: detect, normalize, append, cue,
// broadcast. Every failure mode collapses to the same policy — substitute
// the all-zero sample and continue.
func (s *Sampler) sampleOnce(ctx context.Context, now time.Time) {
	tick := s.ticks
	s.ticks++

	sample := s.capture(ctx, tick, now)

	s.history.AppendAndNotify(sample, func(int) {
		if s.broadcaster != nil {
			s.broadcaster.QueueSample(sample)
		}
	})

	if s.emitter != nil {
		if c, ok := s.emitter.Emit(sample); ok && s.broadcaster != nil {
			s.broadcaster.BroadcastCue(c)
		}
	}
}

func (s *Sampler) capture(ctx context.Context, tick int, now time.Time) emotion.Sample {
	detectCtx := ctx
	if s.cfg.Sampler.DetectTimeout > 0 {
		var cancel context.CancelFunc
		detectCtx, cancel = context.WithTimeout(ctx, s.cfg.Sampler.DetectTimeout)
		defer cancel()
	}

	reading, err := s.src.Detect(detectCtx)
	if err != nil {
		if !s.failing {
			log.Printf("[%s] detect error: %v (recording zero samples)", s.src.Name(), err)
			s.failing = true
		}
		return emotion.ZeroSample(tick, now)
	}
	if s.failing {
		log.Printf("[%s] detect recovered", s.src.Name())
		s.failing = false
	}

	if !reading.FaceFound {
		return emotion.ZeroSample(tick, now)
	}
	return emotion.NewSample(tick, now, reading.Expressions)
}

// Ticks returns the number of completed sampling ticks. Always equal to the
// history length when this sampler is the only writer.
func (s *Sampler) Ticks() int {
	return s.ticks
}
