package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tideui/tide/internal/config"
	"github.com/tideui/tide/pkg/live"
	"github.com/tideui/tide/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Start a live session server running the built-in demo application.

Each connecting client gets its own component tree; state changes
stream back as patch frames over WebSocket.

Examples:
  tide serve
  tide serve --addr=:9000
  tide serve --config=./deploy/tide.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, configPath)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from tide.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to tide.json")

	return cmd
}

func runServe(addr, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	setupLogging(cfg.Log)

	printBanner()
	info("serving demo app on %s", cfg.Server.Addr)
	info("press Ctrl+C to stop")

	srv := live.NewServer(liveConfig(cfg), func() vdom.Component {
		return newDemoApp()
	})
	return srv.Run()
}

// loadConfig resolves tide.json: an explicit path wins, then the nearest
// project root, then built-in defaults when no file exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return config.New(), nil
	}
	return cfg, nil
}

func liveConfig(cfg *config.Config) *live.Config {
	lc := live.DefaultConfig()
	lc.Addr = cfg.Server.Addr
	lc.MaxSessions = cfg.Server.MaxSessions
	lc.MaxEventQueue = cfg.Server.MaxEventQueue
	lc.ReadTimeout = config.Duration(cfg.Server.ReadTimeout, 60*time.Second)
	lc.WriteTimeout = config.Duration(cfg.Server.WriteTimeout, 10*time.Second)
	lc.HeartbeatInterval = config.Duration(cfg.Server.HeartbeatInterval, 30*time.Second)
	lc.ShutdownTimeout = config.Duration(cfg.Server.ShutdownTimeout, 10*time.Second)
	return lc
}

func setupLogging(lc config.LogConfig) {
	var level slog.Level
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if lc.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
