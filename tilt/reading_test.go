package tilt_test

import (
  "math"
  "reflect"
  "testing"

  "github.com/sgoadhouse/tilt2mqtt/tilt"
)

func TestDecodeReading_Uncalibrated(t *testing.T) {
  beacon := tilt.IBeacon{
    UUID: "a495bb60-c5b1-4b44-b512-1370f02d74de",
    Major: 73,
    Minor: 989,
  }

  got := tilt.DecodeReading(beacon, nil)

  want := tilt.Reading{
    TemperatureFahrenheit: 73.0,
    SpecificGravity: 0.989,
    Calibrated: false,
  }

  if !reflect.DeepEqual(got, want) {
    t.Fatalf("DecodeReading(%+v): got %+v, wanted %+v", beacon, got, want)
  }
}

func TestDecodeReading_Calibrated(t *testing.T) {
  beacon := tilt.IBeacon{
    UUID: "a495bb60-c5b1-4b44-b512-1370f02d74de",
    Major: 73,
    Minor: 989,
  }

  cal := &tilt.Calibration{
    TemperatureOffset: -2.0,
    GravityOffset: 0.002,
  }

  got := tilt.DecodeReading(beacon, cal)

  want := tilt.Reading{
    TemperatureFahrenheit: 71.0,
    SpecificGravity: 0.991,
    Calibrated: true,
  }

  if !reflect.DeepEqual(got, want) {
    t.Fatalf("DecodeReading(%+v, %+v): got %+v, wanted %+v", beacon, cal, got, want)
  }
}

func TestDecodeReading_Idempotent(t *testing.T) {
  beacon := tilt.IBeacon{
    UUID: "a495bb10-c5b1-4b44-b512-1370f02d74de",
    Major: 68,
    Minor: 1000,
  }

  cal := &tilt.Calibration{
    TemperatureOffset: 1.5,
    GravityOffset: -0.001,
  }

  first := tilt.DecodeReading(beacon, cal)
  second := tilt.DecodeReading(beacon, cal)

  if !reflect.DeepEqual(first, second) {
    t.Fatalf("DecodeReading() is not idempotent: %+v != %+v", first, second)
  }
}

func TestCelsius(t *testing.T) {
  cases := map[float64]float64{
    32: 0,
    73: 22.77777777777778,
    212: 100,
  }

  for fahrenheit, want := range cases {
    if got := tilt.Celsius(fahrenheit); math.Abs(got-want) > 1e-12 {
      t.Fatalf("Celsius(%v): got %v, wanted %v", fahrenheit, got, want)
    }
  }
}

func TestPlato(t *testing.T) {
  cases := map[float64]float64{
    0.989: -2.8745340130070645,
    0.991: -2.3483869028129902,
    1.050: 12.387647125000058,
  }

  for sg, want := range cases {
    if got := tilt.Plato(sg); math.Abs(got-want) > 1e-9 {
      t.Fatalf("Plato(%v): got %v, wanted %v", sg, got, want)
    }
  }
}
