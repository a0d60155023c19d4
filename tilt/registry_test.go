package tilt_test

import (
  "reflect"
  "testing"

  "github.com/sgoadhouse/tilt2mqtt/tilt"
)

func TestRegistry_LookupKnownDevice(t *testing.T) {
  registry := tilt.NewRegistry()

  dev, ok := registry.Lookup("a495bb60-c5b1-4b44-b512-1370f02d74de")

  if !ok {
    t.Fatal("Lookup() of the blue Tilt UUID failed")
  }

  if dev.Color != "Blue" {
    t.Fatalf("Lookup(): got color %q, wanted Blue", dev.Color)
  }

  if dev.Calibration != nil {
    t.Fatalf("Lookup(): got unexpected calibration %v without environment", dev.Calibration)
  }
}

func TestRegistry_LookupIsCaseCanonical(t *testing.T) {
  registry := tilt.NewRegistry()

  if _, ok := registry.Lookup("A495BB10-C5B1-4B44-B512-1370F02D74DE"); !ok {
    t.Fatal("Lookup() should canonicalize uppercase UUIDs")
  }
}

func TestRegistry_LookupUnknownDevice(t *testing.T) {
  registry := tilt.NewRegistry()

  if dev, ok := registry.Lookup("00000000-0000-0000-0000-000000000000"); ok {
    t.Fatalf("Lookup() of an unknown UUID unexpectedly returned %v", dev)
  }
}

func TestRegistry_EightDevices(t *testing.T) {
  devices := tilt.NewRegistry().Devices()

  if len(devices) != 8 {
    t.Fatalf("Devices(): got %d devices, wanted 8", len(devices))
  }
}

func TestRegistry_CalibrationFromEnvironment(t *testing.T) {
  t.Setenv("TILT_CAL_BLUE", "-2.0,0.002")

  registry := tilt.NewRegistry()
  dev, _ := registry.Lookup("a495bb60-c5b1-4b44-b512-1370f02d74de")

  want := &tilt.Calibration{
    TemperatureOffset: -2.0,
    GravityOffset: 0.002,
  }

  if !reflect.DeepEqual(dev.Calibration, want) {
    t.Fatalf("Lookup(): got calibration %+v, wanted %+v", dev.Calibration, want)
  }

  // other colors stay uncalibrated
  red, _ := registry.Lookup("a495bb10-c5b1-4b44-b512-1370f02d74de")

  if red.Calibration != nil {
    t.Fatalf("Lookup(): red Tilt unexpectedly calibrated: %v", red.Calibration)
  }
}

func TestRegistry_MalformedCalibrationIsIgnored(t *testing.T) {
  t.Setenv("TILT_CAL_BLUE", "potato")

  dev, _ := tilt.NewRegistry().Lookup("a495bb60-c5b1-4b44-b512-1370f02d74de")

  if dev.Calibration != nil {
    t.Fatalf("malformed calibration should leave the device uncalibrated, got %v",
      dev.Calibration)
  }
}

func TestParseCalibration(t *testing.T) {
  got, err := tilt.ParseCalibration(" -2.0, 0.002 ")

  if err != nil {
    t.Fatalf("ParseCalibration() got error: %v", err)
  }

  want := &tilt.Calibration{
    TemperatureOffset: -2.0,
    GravityOffset: 0.002,
  }

  if !reflect.DeepEqual(got, want) {
    t.Fatalf("ParseCalibration(): got %+v, wanted %+v", got, want)
  }
}

func TestParseCalibration_Malformed(t *testing.T) {
  for _, input := range []string{"", "1.0", "1.0,2.0,3.0", "a,b", "1.0,x"} {
    if cal, err := tilt.ParseCalibration(input); err == nil {
      t.Fatalf("ParseCalibration(%q) unexpectedly succeeded: %+v", input, cal)
    }
  }
}
