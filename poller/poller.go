package poller

import (
  "context"
  "time"

  "github.com/pkg/errors"
  "github.com/rs/zerolog/log"

  "github.com/sgoadhouse/tilt2mqtt/ble"
  "github.com/sgoadhouse/tilt2mqtt/metrics"
  "github.com/sgoadhouse/tilt2mqtt/tilt"
  "github.com/sgoadhouse/tilt2mqtt/utils"
)

const (
  DefaultScanWindow = 25 * time.Second
  DefaultInterval = 600 * time.Second
)

// Scanner delivers BLE advertisements for the duration of a context.
// Satisfied by *ble.Handle.
type Scanner interface {
  Scan(ctx context.Context, onAdvertisement func(ble.Advertisement)) error
}

// Publisher hands a formatted message off to the broker. Satisfied by
// *mqtt.Client.
type Publisher interface {
  Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Poller alternates between a bounded scan window and an idle sleep, feeding
// every advertisement seen during a window through the decode pipeline.
// Callbacks run synchronously; there is never more than one in-flight
// publish.
type Poller struct {
  Scanner Scanner
  Publisher Publisher
  Registry *tilt.Registry

  // Metrics may be nil when the exporter listener is disabled.
  Metrics *metrics.Pipeline

  ScanWindow time.Duration
  Interval time.Duration
}

func New(scanner Scanner, publisher Publisher, registry *tilt.Registry) *Poller {
  return &Poller{
    Scanner: scanner,
    Publisher: publisher,
    Registry: registry,
    ScanWindow: DefaultScanWindow,
    Interval: DefaultInterval,
  }
}

// Run loops until the context is canceled. Window expiry is unconditional: a
// quiet window and a busy one both give way to the same idle period. No
// error past startup is fatal; decode and publish failures are logged and
// the loop keeps going.
func (p *Poller) Run(ctx context.Context) error {
  log.Info().
    Dur("ScanWindowSec", p.ScanWindow).
    Dur("IntervalSec", p.Interval).
    Msg("Starting poll loop")

  for {
    if err := p.scanOnce(ctx); err != nil {
      return err
    }

    select {
    case <-ctx.Done():
      log.Info().Msg("Poll loop shutting down")
      return nil
    case <-time.After(p.Interval):
    }
  }
}

func (p *Poller) scanOnce(parentCtx context.Context) error {
  scanCtx, cancel := context.WithTimeout(parentCtx, p.ScanWindow)
  defer cancel()

  log.Debug().Dur("ScanWindowSec", p.ScanWindow).Msg("Opening scan window")

  err := p.Scanner.Scan(scanCtx, p.handleAdvertisement)

  // window expiry and shutdown both surface as context errors. neither is a
  // fault.
  if utils.ErrorIsAnyOf(err, context.DeadlineExceeded, context.Canceled) {
    err = nil
  }

  if err != nil {
    return errors.Wrap(err, "scan window failed")
  }

  log.Debug().Msg("Scan window closed")

  return nil
}

func (p *Poller) handleAdvertisement(a ble.Advertisement) {
  p.Metrics.Advertisement()

  beacon, err := tilt.ParseIBeacon(a.ManufacturerData())

  if err != nil {
    if errors.Is(err, tilt.ErrNotIBeacon) {
      // unrelated BLE traffic shares the air with the Tilts. drop quietly.
      log.Trace().
        Str("Address", a.Addr().String()).
        Hex("ManufacturerData", a.ManufacturerData()).
        Msg("Ignoring non-iBeacon advertisement")
    } else {
      log.Error().
        Err(err).
        Str("Address", a.Addr().String()).
        Hex("ManufacturerData", a.ManufacturerData()).
        Msg("Device does not look like a Tilt hydrometer")

      p.Metrics.DecodeError()
    }

    return
  }

  dev, ok := p.Registry.Lookup(beacon.UUID)

  if !ok {
    log.Error().
      Err(tilt.ErrUnknownDevice).
      Str("UUID", beacon.UUID).
      Str("Address", a.Addr().String()).
      Msg("Unable to resolve Tilt color for beacon")

    p.Metrics.UnknownDevice()

    return
  }

  reading := tilt.DecodeReading(beacon, dev.Calibration)
  msg := tilt.BuildMessage(reading, a.RSSI(), dev.Color)

  log.Debug().
    Stringer("Device", dev).
    Stringer("Reading", reading).
    Int("RSSI", a.RSSI()).
    Msg("Decoded advertisement")

  if err := p.Publisher.Publish(msg.Topic, msg.Body, msg.QoS, msg.Retained); err != nil {
    log.Error().
      Err(err).
      Str("Topic", msg.Topic).
      Msg("Failed to publish reading")

    p.Metrics.PublishError()

    return
  }

  p.Metrics.Published(dev.Color, reading, a.RSSI())

  log.Info().
    Str("Topic", msg.Topic).
    Stringer("Reading", reading).
    Msg("Published reading")
}
