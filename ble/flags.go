package ble

import (
  "strconv"
)

type Flags int

const (
  // Run active scans rather than passive scans (requiring explicit responses
  // from peripherals). Beacons broadcast everything in the advertisement
  // itself, so passive is the default.
  FlagScanTypeActive Flags = 1 << iota
)

func (f Flags) String() string {
  if f & FlagScanTypeActive == FlagScanTypeActive {
    return "active scan"
  }

  return "none"
}

type scanType uint8

const (
  scanTypePassive scanType = iota
  scanTypeActive
)

func (s scanType) String() string {
  switch s {
  case scanTypeActive:
    return "Active"
  case scanTypePassive:
    return "Passive"
  default:
    panic("unknown scanType value: " + strconv.Itoa(int(s)))
  }
}
