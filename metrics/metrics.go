package metrics

import (
  "github.com/prometheus/client_golang/prometheus"

  "github.com/sgoadhouse/tilt2mqtt/tilt"
)

// Pipeline instruments the decode/publish pipeline. A nil *Pipeline is valid
// and records nothing, so the poller never has to care whether the metrics
// listener is enabled.
type Pipeline struct {
  advertisements prometheus.Counter
  decodeErrors prometheus.Counter
  unknownDevices prometheus.Counter
  publishErrors prometheus.Counter
  published *prometheus.CounterVec

  specificGravity *prometheus.GaugeVec
  temperatureCelsius *prometheus.GaugeVec
  rssi *prometheus.GaugeVec
}

func NewPipeline(reg prometheus.Registerer) *Pipeline {
  p := &Pipeline{
    advertisements: prometheus.NewCounter(prometheus.CounterOpts{
      Name: "tilt_advertisements_total",
      Help: "Advertisements seen during scan windows, including non-Tilt traffic.",
    }),
    decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
      Name: "tilt_decode_errors_total",
      Help: "Advertisements that claimed to be iBeacons but failed to decode.",
    }),
    unknownDevices: prometheus.NewCounter(prometheus.CounterOpts{
      Name: "tilt_unknown_devices_total",
      Help: "iBeacon advertisements whose UUID matched no known Tilt.",
    }),
    publishErrors: prometheus.NewCounter(prometheus.CounterOpts{
      Name: "tilt_publish_errors_total",
      Help: "Readings that failed to publish to the broker.",
    }),
    published: prometheus.NewCounterVec(prometheus.CounterOpts{
      Name: "tilt_published_total",
      Help: "Readings successfully published to the broker.",
    }, []string{"color"}),
    specificGravity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
      Name: "tilt_specific_gravity",
      Help: "Last published specific gravity (calibrated when offsets are set).",
    }, []string{"color"}),
    temperatureCelsius: prometheus.NewGaugeVec(prometheus.GaugeOpts{
      Name: "tilt_temperature_celsius",
      Help: "Last published temperature in Celsius.",
    }, []string{"color"}),
    rssi: prometheus.NewGaugeVec(prometheus.GaugeOpts{
      Name: "tilt_rssi_dbm",
      Help: "Signal strength of the last published advertisement.",
    }, []string{"color"}),
  }

  reg.MustRegister(
    p.advertisements,
    p.decodeErrors,
    p.unknownDevices,
    p.publishErrors,
    p.published,
    p.specificGravity,
    p.temperatureCelsius,
    p.rssi,
  )

  return p
}

func (p *Pipeline) Advertisement() {
  if p == nil {
    return
  }

  p.advertisements.Inc()
}

func (p *Pipeline) DecodeError() {
  if p == nil {
    return
  }

  p.decodeErrors.Inc()
}

func (p *Pipeline) UnknownDevice() {
  if p == nil {
    return
  }

  p.unknownDevices.Inc()
}

func (p *Pipeline) PublishError() {
  if p == nil {
    return
  }

  p.publishErrors.Inc()
}

func (p *Pipeline) Published(color string, r tilt.Reading, rssi int) {
  if p == nil {
    return
  }

  p.published.WithLabelValues(color).Inc()
  p.specificGravity.WithLabelValues(color).Set(r.SpecificGravity)
  p.temperatureCelsius.WithLabelValues(color).Set(tilt.Celsius(r.TemperatureFahrenheit))
  p.rssi.WithLabelValues(color).Set(float64(rssi))
}
