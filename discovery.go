package main

import (
  "context"
  "errors"
  "time"

  "github.com/rs/zerolog/log"
  "golang.org/x/exp/maps"

  "github.com/sgoadhouse/tilt2mqtt/ble"
  "github.com/sgoadhouse/tilt2mqtt/tilt"
)

func doDeviceDiscovery(cfg config, registry *tilt.Registry) {
  log.Info().Msg("Starting in device discovery mode - collecting devices for 5 seconds...")

  handle, err := ble.Init(cfg.BluetoothDeviceId, ble.FlagScanTypeActive)

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initialize Bluetooth device")
  }

  ctx := ble.WrapContextWithSigHandler(
    context.WithTimeout(
      context.Background(),
      5 * time.Second,
    ),
  )

  type deviceInfo struct {
    name string
    color string
    uuid string
    rssi int
  }

  devices := make(map[string]deviceInfo)

  err = handle.Scan(ctx, func(a ble.Advertisement) {
    info := devices[a.Addr().String()]

    if info.name == "" {
      info.name = a.LocalName()
    }

    info.rssi = a.RSSI()

    if beacon, err := tilt.ParseIBeacon(a.ManufacturerData()); err == nil {
      info.uuid = beacon.UUID

      if dev, ok := registry.Lookup(beacon.UUID); ok {
        info.color = dev.Color
      }
    }

    devices[a.Addr().String()] = info

    log.Debug().
      Str("Addr", a.Addr().String()).
      Str("Name", a.LocalName()).
      Hex("ManufacturerData", a.ManufacturerData()).
      Msg("Received device advertisement")
  })

  if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
    log.Fatal().Err(err).Msg("Failed to initiate scan")
  }

  log.Info().Int("Found", len(devices)).Msg("Finished device discovery")

  for _, addr := range maps.Keys(devices) {
    data := devices[addr]

    event := log.Info().
      Str("Addr", addr).
      Str("Name", data.name).
      Int("RSSI", data.rssi)

    if data.uuid != "" {
      event = event.Str("BeaconUUID", data.uuid)
    }

    if data.color != "" {
      event = event.Str("TiltColor", data.color)
    }

    event.Msg("Found device")
  }
}
