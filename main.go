package main

import (
  "context"
  "net/http"
  "os"
  "time"

  "github.com/prometheus/client_golang/prometheus"
  "github.com/prometheus/client_golang/prometheus/promhttp"
  "github.com/rs/zerolog"
  "github.com/rs/zerolog/log"
  "golang.org/x/sync/errgroup"

  "github.com/sgoadhouse/tilt2mqtt/ble"
  "github.com/sgoadhouse/tilt2mqtt/metrics"
  "github.com/sgoadhouse/tilt2mqtt/mqtt"
  "github.com/sgoadhouse/tilt2mqtt/poller"
  "github.com/sgoadhouse/tilt2mqtt/tilt"
  "github.com/sgoadhouse/tilt2mqtt/utils"
)

func main() {
  zerolog.DurationFieldUnit = time.Second
  zerolog.TimeFieldFormat = time.RFC3339Nano

  cfg := ParseArgs()

  initLogging(cfg)

  // built once; read-only from here on.
  registry := tilt.NewRegistry()

  if cfg.DiscoverDevices {
    doDeviceDiscovery(cfg, registry)
    return
  }

  log.Info().
    Str("Broker", cfg.Broker.BrokerURL()).
    Array("Devices", utils.ToZeroLogArray(registry.Devices())).
    Int("BluetoothDeviceID", cfg.BluetoothDeviceId).
    Dur("ScanWindowSec", cfg.ScanWindow).
    Dur("IntervalSec", cfg.Interval).
    Msg("Starting with the specified configuration")

  bleHandle, err := ble.Init(cfg.BluetoothDeviceId, 0)

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initialize Bluetooth device")
  }

  broker, err := mqtt.Connect(cfg.Broker)

  if err != nil {
    log.Fatal().Err(err).Str("Broker", cfg.Broker.BrokerURL()).
      Msg("Failed to connect to MQTT broker")
  }

  defer broker.Close()

  p := poller.New(bleHandle, broker, registry)
  p.ScanWindow = cfg.ScanWindow
  p.Interval = cfg.Interval

  ctx := ble.WrapContextWithSigHandler(context.WithCancel(context.Background()))

  var eg errgroup.Group

  if cfg.BindAddress != "" {
    promRegistry := prometheus.NewRegistry()
    p.Metrics = metrics.NewPipeline(promRegistry)

    log.Info().
      Str("ListenAddress", cfg.BindAddress).
      Msg("Starting Prometheus server")

    http.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))

    eg.Go(func() error {
      return http.ListenAndServe(cfg.BindAddress, nil)
    })
  }

  eg.Go(func() error {
    return p.Run(ctx)
  })

  if err := eg.Wait(); err != nil {
    log.Fatal().Err(err).Msg("Shutting down after unrecoverable error")
  }
}

func initLogging(cfg config) {
  console := zerolog.ConsoleWriter{
    Out: os.Stderr,
    TimeFormat: "15:04:05.000",
  }

  if cfg.LogFile != "" {
    f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)

    if err != nil {
      log.Fatal().Err(err).Str("LogFile", cfg.LogFile).Msg("Unable to open log file")
    }

    log.Logger = log.Output(zerolog.MultiLevelWriter(console, f))
  } else {
    log.Logger = log.Output(console)
  }

  if cfg.Trace || os.Getenv("TRACE") != "" {
    zerolog.SetGlobalLevel(zerolog.TraceLevel)
  } else if cfg.Debug || os.Getenv("DEBUG") != "" {
    zerolog.SetGlobalLevel(zerolog.DebugLevel)
  } else {
    zerolog.SetGlobalLevel(zerolog.InfoLevel)
  }
}
