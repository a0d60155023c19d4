package tilt

import (
  "encoding/binary"
  "fmt"

  "github.com/pkg/errors"
)

const (
  appleCompanyID = 0x004c
  iBeaconType = 0x02
  iBeaconDataLength = 0x15

  // company ID (2) + type (1) + length (1) + UUID (16) + major (2) +
  // minor (2) + measured TX power (1)
  iBeaconFrameLength = 25
)

// IBeacon holds the fields of a decoded iBeacon frame. The Tilt repurposes
// major as raw integer Fahrenheit and minor as specific gravity x1000.
type IBeacon struct {
  UUID string
  Major uint16
  Minor uint16
}

// ParseIBeacon extracts the iBeacon fields from a BLE manufacturer data
// blob. The UUID is rendered in canonical lowercase 8-4-4-4-12 form.
func ParseIBeacon(data []byte) (b IBeacon, err error) {
  if len(data) < 4 {
    return b, errors.Wrapf(ErrInvalidData,
      "manufacturer data too short (%d bytes)", len(data))
  }

  if companyID := binary.LittleEndian.Uint16(data); companyID != appleCompanyID {
    return b, errors.Wrapf(ErrNotIBeacon, "unexpected company ID %#04x", companyID)
  }

  if data[2] != iBeaconType || data[3] != iBeaconDataLength {
    return b, errors.Wrapf(ErrNotIBeacon,
      "unexpected beacon type %#02x with length %d", data[2], data[3])
  }

  if len(data) < iBeaconFrameLength {
    return b, errors.Wrapf(ErrInvalidData,
      "truncated iBeacon frame (%d bytes, want %d)", len(data), iBeaconFrameLength)
  }

  uuid := data[4:20]

  b.UUID = fmt.Sprintf("%x-%x-%x-%x-%x",
    uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16])
  b.Major = binary.BigEndian.Uint16(data[20:22])
  b.Minor = binary.BigEndian.Uint16(data[22:24])

  return b, nil
}
