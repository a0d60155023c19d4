package tilt

import (
  "fmt"
  "os"
  "strconv"
  "strings"

  "github.com/rs/zerolog/log"
)

const calibrationEnvPrefix = "TILT_CAL_"

// Calibration is a per-device additive correction compensating for
// manufacturing variance of the raw sensor readings.
type Calibration struct {
  TemperatureOffset float64
  GravityOffset float64
}

func (c *Calibration) String() string {
  return fmt.Sprintf("calibration[temp=%+.1f, sg=%+.3f]",
    c.TemperatureOffset, c.GravityOffset)
}

// ParseCalibration parses a "<temperature_offset>,<gravity_offset>" pair,
// e.g. "-2.0,0.002".
func ParseCalibration(s string) (*Calibration, error) {
  parts := strings.Split(s, ",")

  if len(parts) != 2 {
    return nil, fmt.Errorf("want 2 comma-separated offsets, got %d", len(parts))
  }

  temp, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
  if err != nil {
    return nil, fmt.Errorf("invalid temperature offset: %w", err)
  }

  sg, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
  if err != nil {
    return nil, fmt.Errorf("invalid gravity offset: %w", err)
  }

  return &Calibration{
    TemperatureOffset: temp,
    GravityOffset: sg,
  }, nil
}

// calibrationFromEnv reads TILT_CAL_<COLOR> for the given color. A missing
// or malformed value leaves the device uncalibrated rather than failing
// startup; the loop is expected to run unattended.
func calibrationFromEnv(color string) *Calibration {
  key := calibrationEnvPrefix + strings.ToUpper(color)
  value := os.Getenv(key)

  if value == "" {
    return nil
  }

  cal, err := ParseCalibration(value)

  if err != nil {
    log.Warn().
      Str("Key", key).
      Str("Value", value).
      Err(err).
      Msg("Ignoring malformed calibration value - device stays uncalibrated")

    return nil
  }

  return cal
}
