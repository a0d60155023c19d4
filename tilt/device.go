package tilt

import (
  "errors"
  "fmt"
)

var (
  ErrNotIBeacon = errors.New("not an iBeacon advertisement")
  ErrInvalidData = errors.New("invalid data")
  ErrUnknownDevice = errors.New("unknown device")
)

// Device is a single known Tilt hydrometer. Each color variant ships with a
// fixed iBeacon UUID, so identity and color are the same thing.
type Device struct {
  UUID string
  Color string
  Calibration *Calibration
}

func (d Device) String() string {
  if d.Calibration != nil {
    return fmt.Sprintf("tilt[color=%s, uuid=%s, %v]", d.Color, d.UUID, d.Calibration)
  }

  return fmt.Sprintf("tilt[color=%s, uuid=%s, uncalibrated]", d.Color, d.UUID)
}
