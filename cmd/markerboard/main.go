// Command markerboard opens the shared map-marker editor for one page key.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/phanxgames/markerboard"
	"github.com/phanxgames/markerboard/internal/config"
	"github.com/phanxgames/markerboard/internal/logging"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("markerboard exited")
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	scriptPath := flag.String("script", "", "JSON input script to replay, then quit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	fallback, err := markerboard.ParseHex(cfg.Canvas.FallbackColor)
	if err != nil {
		return fmt.Errorf("canvas fallback color: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics := markerboard.NewMetrics(reg)

	client := markerboard.NewClient(cfg.Server.BaseURL, cfg.Server.PageKey, nil)
	controls := &markerboard.FormControls{}
	session := markerboard.NewSession(markerboard.SessionOptions{
		Controls: controls,
		Pusher: &markerboard.AsyncPusher{
			Client:  client,
			Timeout: cfg.Server.PushTimeout,
			Metrics: metrics,
		},
		Loader:              &markerboard.HTTPImageLoader{Timeout: 30 * time.Second},
		Metrics:             metrics,
		InterpolationWindow: cfg.Sync.InterpolationWindow,
	})

	syncer := markerboard.NewSyncer(client, session, cfg.Sync.RetryDelay, metrics)
	syncer.OnUpdate(func(st markerboard.ViewState) {
		logging.Debug().Int64("version", st.Version).Str("bgimage", st.BgImage).Msg("page updated")
	})

	sup := suture.New("markerboard", suture.Spec{
		EventHook: (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook(),
	})
	sup.Add(syncer)
	if cfg.Metrics.Addr != "" {
		sup.Add(&markerboard.MetricsServer{Addr: cfg.Metrics.Addr, Gatherer: reg})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	supDone := sup.ServeBackground(ctx)

	editor := markerboard.NewEditor(session, controls, markerboard.EditorConfig{
		Width:         cfg.Canvas.Width,
		Height:        cfg.Canvas.Height,
		Title:         cfg.Canvas.Title,
		Fallback:      fallback,
		ScreenshotDir: cfg.Script.ScreenshotDir,
	})

	path := *scriptPath
	if path == "" {
		path = cfg.Script.Path
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := markerboard.LoadScript(data)
		if err != nil {
			return err
		}
		editor.SetScript(script, true)
	}

	logging.Info().
		Str("server", cfg.Server.BaseURL).
		Str("page", cfg.Server.PageKey).
		Msg("markerboard starting")

	runErr := editor.Run()
	cancel()
	<-supDone
	return runErr
}
