package main

import (
  "flag"
  "os"
  "strconv"
  "time"

  "github.com/rs/zerolog/log"

  "github.com/sgoadhouse/tilt2mqtt/mqtt"
  "github.com/sgoadhouse/tilt2mqtt/poller"
)

type config struct {
  Debug, Trace bool
  DiscoverDevices bool
  BindAddress string
  LogFile string
  BluetoothDeviceId int
  ScanWindow, Interval time.Duration
  Broker mqtt.Config
}

func ParseArgs() config {
  var cfg config

  flag.StringVar(&cfg.Broker.Host, "broker-host", envOr("MQTT_HOST", "127.0.0.1"),
    "MQTT broker host")
  flag.IntVar(&cfg.Broker.Port, "broker-port", envOrInt("MQTT_PORT", 1883),
    "MQTT broker port")
  flag.IntVar(&cfg.BluetoothDeviceId, "bluetooth-device", 0, "Bluetooth (HCI) device ID")
  flag.DurationVar(&cfg.ScanWindow, "scan-window", poller.DefaultScanWindow,
    "How long each scan window stays open")
  flag.DurationVar(&cfg.Interval, "interval", poller.DefaultInterval,
    "How long to sleep between scan windows")
  flag.StringVar(&cfg.BindAddress, "bind", "",
    "Expose Prometheus metrics on this address (empty to disable)")
  flag.StringVar(&cfg.LogFile, "log-file", "",
    "Append JSON log lines to this file in addition to the console")
  flag.BoolVar(&cfg.DiscoverDevices, "discover", false,
    "Discover available BLE devices and quit")
  flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logs")
  flag.BoolVar(&cfg.Trace, "trace", false, "Enable trace logs")

  flag.Parse()

  // credentials are environment-only so they don't leak into process lists.
  cfg.Broker.Username = os.Getenv("MQTT_USERNAME")
  cfg.Broker.Password = os.Getenv("MQTT_PASSWORD")
  cfg.Broker.ClientID = "tilt2mqtt"

  return cfg
}

func envOr(key, fallback string) string {
  if v := os.Getenv(key); v != "" {
    return v
  }

  return fallback
}

func envOrInt(key string, fallback int) int {
  v := os.Getenv(key)

  if v == "" {
    return fallback
  }

  n, err := strconv.Atoi(v)

  if err != nil {
    log.Warn().Str("Key", key).Str("Value", v).Msg("Ignoring non-numeric environment value")
    return fallback
  }

  return n
}
