// epaper-mock - network-attached e-paper display device mock
//
// This is the main entry point for the e-paper device mock. It emulates an
// ESP32-driven e-paper display on the network so front-end tooling can be
// developed without physical hardware:
//   - REST + WebSocket API for variables, templates, bitmaps, and settings
//   - Durable JSON snapshot of the full device state
//   - Optional MQTT variable mirroring and InfluxDB telemetry
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openepaper/epaper-mock/internal/api"
	"github.com/openepaper/epaper-mock/internal/infrastructure/config"
	"github.com/openepaper/epaper-mock/internal/infrastructure/influxdb"
	"github.com/openepaper/epaper-mock/internal/infrastructure/logging"
	"github.com/openepaper/epaper-mock/internal/infrastructure/mqtt"
	"github.com/openepaper/epaper-mock/internal/state"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "1.0.0"   // Semantic version
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting e-paper device mock",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration. The mock must run with zero setup, so a missing
	// config file falls back to built-in defaults.
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfgPath != "" {
		log.Info("configuration loaded", "path", cfgPath)
	} else {
		log.Info("no config file found, using defaults")
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Initialise the state store from the persisted snapshot (or seed the
	// built-in default state on first run).
	repo := state.NewFileRepository(cfg.Storage.DataFile)
	store := state.NewStore(repo)
	store.SetLogger(log)
	store.Load()
	log.Info("state store initialised", "data_file", cfg.Storage.DataFile)

	// Start the clock ticker for the reserved timestamp/date/time variables
	clock := state.NewClock(store, cfg.GetTickInterval())
	clock.SetLogger(log)
	go clock.Run(ctx)
	log.Info("clock ticker started", "interval", cfg.GetTickInterval())

	// Connect to MQTT broker (optional variable mirror)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT mirror disabled")
	}

	// Connect to InfluxDB (optional telemetry)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB telemetry disabled")
	}

	// Start the API server
	server, err := api.New(api.Deps{
		Config:  cfg.Server,
		WS:      cfg.WebSocket,
		Logger:  log,
		Store:   store,
		MQTT:    mqttClient,
		Influx:  influxClient,
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
	)

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server (drains in-flight requests, closes WebSocket clients)
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)

	log.Info("e-paper device mock stopped")
	return nil
}

// loadConfig resolves and loads the configuration. The path comes from
// EPAPER_CONFIG when set, otherwise the default; if no file exists at the
// resolved path the built-in defaults are used. The returned path is empty
// when defaults were used.
func loadConfig() (*config.Config, string, error) {
	path := os.Getenv("EPAPER_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), "", nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
