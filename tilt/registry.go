package tilt

import (
  "sort"
  "strings"
)

// The eight Tilt color variants and the iBeacon UUIDs burned into them.
var tiltColors = map[string]string{
  "a495bb10-c5b1-4b44-b512-1370f02d74de": "Red",
  "a495bb20-c5b1-4b44-b512-1370f02d74de": "Green",
  "a495bb30-c5b1-4b44-b512-1370f02d74de": "Black",
  "a495bb40-c5b1-4b44-b512-1370f02d74de": "Purple",
  "a495bb50-c5b1-4b44-b512-1370f02d74de": "Orange",
  "a495bb60-c5b1-4b44-b512-1370f02d74de": "Blue",
  "a495bb70-c5b1-4b44-b512-1370f02d74de": "Yellow",
  "a495bb80-c5b1-4b44-b512-1370f02d74de": "Pink",
}

// Registry maps beacon UUIDs to known devices. It is built once at startup
// and read-only afterwards.
type Registry struct {
  devices map[string]Device
}

// NewRegistry builds the registry of the eight known Tilts, picking up
// per-color calibration offsets from the environment.
func NewRegistry() *Registry {
  r := &Registry{
    devices: make(map[string]Device, len(tiltColors)),
  }

  for uuid, color := range tiltColors {
    r.devices[uuid] = Device{
      UUID: uuid,
      Color: color,
      Calibration: calibrationFromEnv(color),
    }
  }

  return r
}

// Lookup resolves a beacon UUID to a known device. UUIDs are matched in
// canonical lowercase form.
func (r *Registry) Lookup(uuid string) (Device, bool) {
  d, ok := r.devices[strings.ToLower(uuid)]

  return d, ok
}

// Devices returns every registered device, sorted by color for stable output.
func (r *Registry) Devices() []Device {
  out := make([]Device, 0, len(r.devices))

  for _, d := range r.devices {
    out = append(out, d)
  }

  sort.Slice(out, func(i, j int) bool {
    return out[i].Color < out[j].Color
  })

  return out
}
