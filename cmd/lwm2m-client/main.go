// Command lwm2m-client is a reference client built on the lwm2m-go
// client core.
//
// It loads a YAML configuration, assembles the built-in object table
// (security, server, device), opens a UDP transport session towards
// the configured server and drives the session step loop until
// interrupted. The CoAP message codec is out of scope for the core;
// the engine wired here answers local reads and logs inbound
// datagrams, marking the integration point for a full engine.
//
// Usage:
//
//	lwm2m-client [flags]
//
// Flags:
//
//	-config string      Configuration file path
//	-endpoint string    Endpoint name (overrides the config file)
//	-server string      Device-management server address (overrides the config file)
//	-bootstrap string   Bootstrap server address (overrides the config file)
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-event-log string   Capture session and operation events to a CBOR file
//
// Examples:
//
//	# Start with a config file
//	lwm2m-client -config /etc/lwm2m/client.yaml
//
//	# Start against a local server without a config file
//	lwm2m-client -endpoint urn:imei:000000000000000 -server 127.0.0.1:5683
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lwm2m-protocol/lwm2m-go/pkg/config"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/interaction"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/log"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/model"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/objects"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/security"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/session"
	"github.com/lwm2m-protocol/lwm2m-go/pkg/transport"
)

var flags struct {
	configFile string
	endpoint   string
	server     string
	bootstrap  string
	logLevel   string
	eventLog   string
}

func init() {
	flag.StringVar(&flags.configFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.endpoint, "endpoint", "", "Endpoint name (overrides the config file)")
	flag.StringVar(&flags.server, "server", "", "Device-management server address (overrides the config file)")
	flag.StringVar(&flags.bootstrap, "bootstrap", "", "Bootstrap server address (overrides the config file)")
	flag.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.eventLog, "event-log", "", "CBOR event capture file path")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("lwm2m client starting",
		"endpoint", cfg.EndpointName,
		"server", cfg.ServerAddress(),
		"provisioned", cfg.Server.Provisioned())

	provider := security.NewMemoryProvider()
	if err := seedCredentials(provider, cfg); err != nil {
		logger.Error("seed credentials", "error", err)
		os.Exit(1)
	}
	store := security.NewCredentialStore(provider)

	settings := objects.NewServerSettings(1)
	settings.Lifetime = cfg.Lifetime
	settings.OnUpdateTrigger = func() {
		logger.Info("registration update triggered by server")
	}

	identity := &objects.DeviceIdentity{
		Manufacturer:    "lwm2m-go",
		ModelNumber:     "reference-client",
		SerialNumber:    cfg.EndpointName,
		FirmwareVersion: "1.0.0",
		Reboot: func() {
			logger.Warn("reboot requested by server, ignoring in reference client")
		},
	}

	registry := model.NewRegistry()
	err = registry.Register(objects.Builtin(store, settings, identity), nil, model.RegisterOptions{
		DeviceManagementProvisioned: cfg.Server.Provisioned(),
	})
	if err != nil {
		logger.Error("register objects", "error", err)
		os.Exit(1)
	}

	var events log.Logger = log.NewSlogAdapter(logger)
	if flags.eventLog != "" {
		fileLogger, err := log.NewFileLogger(flags.eventLog)
		if err != nil {
			logger.Error("open event log", "error", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		events = fileLogger
	}

	adapter := interaction.NewAdapter(registry)
	adapter.SetEventLogger(events)

	engine := &localEngine{
		adapter: adapter,
		logger:  logger,
	}

	mgr := session.NewManager(engine, transport.UDPDialer{}, store, registry, session.Config{
		EndpointName:                cfg.EndpointName,
		ServerAddress:               cfg.ServerAddress(),
		StepInterval:                cfg.StepInterval,
		DeviceManagementProvisioned: cfg.Server.Provisioned(),
		Logger:                      logger,
		EventLogger:                 events,
		Callback: func(event session.AppEvent) {
			logger.Info("session event", "event", event.String())
		},
	})

	if err := mgr.Connect(); err != nil {
		logger.Error("connect", "error", err)
		os.Exit(1)
	}
	logger.Info("session connected",
		"state", mgr.State().String(),
		"type", mgr.ConnectionType().String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("shutting down", "signal", sig.String())
	mgr.Close()
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{Lifetime: config.DefaultLifetime}
	}

	if flags.endpoint != "" {
		cfg.EndpointName = flags.endpoint
	}
	if flags.server != "" {
		cfg.Server.Address = flags.server
	}
	if flags.bootstrap != "" {
		cfg.Bootstrap.Address = flags.bootstrap
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// seedCredentials loads the configured PSK material into the security
// provider so the security object can serve it.
func seedCredentials(provider *security.MemoryProvider, cfg *config.Config) error {
	seed := func(role security.Role, srv config.Server) error {
		if !srv.Provisioned() {
			return nil
		}
		secret, err := srv.SecretBytes()
		if err != nil {
			return err
		}
		if err := provider.SetCredential(security.KindServerURI, role, []byte(srv.Address)); err != nil {
			return err
		}
		if err := provider.SetCredential(security.KindIdentity, role, []byte(srv.PSKIdentity)); err != nil {
			return err
		}
		return provider.SetCredential(security.KindSecret, role, secret)
	}

	if err := seed(security.RoleBootstrap, cfg.Bootstrap); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if err := seed(security.RoleDeviceManagement, cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// localEngine answers reads against the local object table and logs
// inbound datagrams. A full protocol engine replaces it by
// implementing session.Engine and session.DatagramHandler.
type localEngine struct {
	adapter     *interaction.Adapter
	logger      *slog.Logger
	inventoried bool
}

// Step logs the local object inventory once, then idles.
func (e *localEngine) Step(time.Time) (time.Duration, error) {
	if e.inventoried {
		return 0, nil
	}
	e.inventoried = true

	values, status := e.adapter.Read(model.ObjectIDDevice, 0, nil)
	if !status.IsSuccess() {
		e.logger.Warn("device object read", "status", status.String())
		return 0, nil
	}
	for _, v := range values {
		e.logger.Info("device resource",
			"resource", v.ID, "value", v.Value.String())
	}
	return 0, nil
}

// HandleDatagram logs inbound traffic.
func (e *localEngine) HandleDatagram(data []byte, from net.Addr) {
	e.logger.Debug("datagram received", "bytes", len(data), "from", from)
}
