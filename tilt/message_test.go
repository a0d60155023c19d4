package tilt_test

import (
  "bytes"
  "encoding/json"
  "reflect"
  "testing"

  "github.com/sgoadhouse/tilt2mqtt/tilt"
)

func decodeBody(t *testing.T, msg tilt.Message) map[string]string {
  t.Helper()

  var body map[string]string

  if err := json.Unmarshal(msg.Body, &body); err != nil {
    t.Fatalf("message body %q is not a JSON string map: %v", msg.Body, err)
  }

  return body
}

func TestBuildMessage_Uncalibrated(t *testing.T) {
  reading := tilt.Reading{
    TemperatureFahrenheit: 73.0,
    SpecificGravity: 0.989,
    Calibrated: false,
  }

  msg := tilt.BuildMessage(reading, -95, "Blue")

  if msg.Topic != "tilt/Blue" {
    t.Fatalf("BuildMessage(): got topic %q, wanted tilt/Blue", msg.Topic)
  }

  if msg.QoS != 2 || !msg.Retained {
    t.Fatalf("BuildMessage(): got QoS=%d retained=%v, wanted QoS=2 retained=true",
      msg.QoS, msg.Retained)
  }

  want := map[string]string{
    "specific_gravity_uncali": "0.989",
    "plato_uncali": "-2.87",
    "temperature_celsius_uncali": "22.78",
    "temperature_fahrenheit_uncali": "73.0",
    "rssi": "-95",
  }

  if got := decodeBody(t, msg); !reflect.DeepEqual(got, want) {
    t.Fatalf("BuildMessage(%+v): got body %v, wanted %v", reading, got, want)
  }
}

func TestBuildMessage_Calibrated(t *testing.T) {
  reading := tilt.Reading{
    TemperatureFahrenheit: 71.0,
    SpecificGravity: 0.991,
    Calibrated: true,
  }

  msg := tilt.BuildMessage(reading, -95, "Blue")

  want := map[string]string{
    "specific_gravity_cali": "0.991",
    "plato_cali": "-2.35",
    "temperature_celsius_cali": "21.67",
    "temperature_fahrenheit_cali": "71.0",
    "rssi": "-95",
  }

  if got := decodeBody(t, msg); !reflect.DeepEqual(got, want) {
    t.Fatalf("BuildMessage(%+v): got body %v, wanted %v", reading, got, want)
  }
}

// sg exactly 1.0 must keep its full width and the tiny negative Plato value
// must not grow extra digits.
func TestBuildMessage_BoundaryFormatting(t *testing.T) {
  reading := tilt.Reading{
    TemperatureFahrenheit: 68.0,
    SpecificGravity: 1.0,
    Calibrated: false,
  }

  msg := tilt.BuildMessage(reading, 0, "Red")

  want := map[string]string{
    "specific_gravity_uncali": "1.000",
    "plato_uncali": "-0.00",
    "temperature_celsius_uncali": "20.00",
    "temperature_fahrenheit_uncali": "68.0",
    "rssi": "0",
  }

  if got := decodeBody(t, msg); !reflect.DeepEqual(got, want) {
    t.Fatalf("BuildMessage(%+v): got body %v, wanted %v", reading, got, want)
  }
}

func TestBuildMessage_Deterministic(t *testing.T) {
  reading := tilt.Reading{
    TemperatureFahrenheit: 73.0,
    SpecificGravity: 0.989,
  }

  first := tilt.BuildMessage(reading, -80, "Pink")
  second := tilt.BuildMessage(reading, -80, "Pink")

  if first.Topic != second.Topic || !bytes.Equal(first.Body, second.Body) {
    t.Fatalf("BuildMessage() is not deterministic: %+v != %+v", first, second)
  }
}
