package tilt

import (
  "fmt"
)

// Reading is a decoded measurement in physical units, with any per-device
// calibration already applied.
type Reading struct {
  TemperatureFahrenheit float64
  SpecificGravity float64
  Calibrated bool
}

// DecodeReading converts the raw beacon fields into physical units and
// applies the calibration offsets when present. Pure function: the same
// beacon and calibration always produce the same reading.
func DecodeReading(b IBeacon, cal *Calibration) (r Reading) {
  r.TemperatureFahrenheit = float64(b.Major)
  r.SpecificGravity = float64(b.Minor) / 1000.0

  if cal != nil {
    r.TemperatureFahrenheit += cal.TemperatureOffset
    r.SpecificGravity += cal.GravityOffset
    r.Calibrated = true
  }

  return r
}

func (r Reading) String() string {
  suffix := "uncalibrated"

  if r.Calibrated {
    suffix = "calibrated"
  }

  return fmt.Sprintf("reading[Fahrenheit=%.1f,SG=%.3f,%s]",
    r.TemperatureFahrenheit, r.SpecificGravity, suffix)
}
