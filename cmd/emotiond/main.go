package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/meowmocha24/emotionmap/internal/audio"
	"github.com/meowmocha24/emotionmap/internal/config"
	"github.com/meowmocha24/emotionmap/internal/cue"
	"github.com/meowmocha24/emotionmap/internal/diag"
	"github.com/meowmocha24/emotionmap/internal/emotion"
	"github.com/meowmocha24/emotionmap/internal/sampler"
	"github.com/meowmocha24/emotionmap/internal/source"
	"github.com/meowmocha24/emotionmap/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	sourceName := flag.String("source", "", "Override expression source (synthetic|detector)")
	detectorURL := flag.String("detector-url", "", "Override detector base URL")
	mute := flag.Bool("mute", false, "Disable audio output")
	unlocked := flag.Bool("unlocked", false, "Start with audio already unlocked")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *sourceName != "" {
		cfg.Sampler.Source = *sourceName
	}
	if *detectorURL != "" {
		cfg.Sampler.DetectorURL = *detectorURL
	}

	var engine audio.Engine = audio.Null{}
	if !*mute && cfg.Cue.Enabled {
		beeper, err := audio.NewBeeper()
		if err != nil {
			log.Printf("Audio unavailable: %v (cues disabled)", err)
		} else {
			engine = beeper
		}
	}

	var src source.Source
	switch cfg.Sampler.Source {
	case "detector":
		src = source.NewDetector(cfg.Sampler.DetectorURL, cfg.Sampler.DetectTimeout)
	case "synthetic", "":
		src = source.NewSynthetic(1)
	default:
		log.Fatalf("Unknown source %q (want synthetic or detector)", cfg.Sampler.Source)
	}

	history := emotion.NewHistory()
	emitter := cue.NewEmitter(cfg, engine)
	if *unlocked {
		emitter.Unlock()
	}

	broadcaster := ws.NewBroadcaster(history, cfg.Broadcast.Throttle, cfg.Broadcast.SnapshotInterval, emitter.Unlocked)

	collector := diag.NewCollector()
	server := ws.NewServer(cfg, history, broadcaster, emitter, collector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	smp := sampler.New(cfg, src, history, emitter, broadcaster)
	go smp.Run(ctx)

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		os.Exit(0)
	}()

	if err := ws.ListenAndServe(cfg.Server.Host, cfg.Server.Port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
