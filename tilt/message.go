package tilt

import (
  "encoding/json"
  "fmt"
  "strconv"
)

const (
  topicPrefix = "tilt/"

  // MessageQoS is fixed at exactly-once; each reading replaces the retained
  // message on its color's topic.
  MessageQoS = 2
)

// Message is a fully formatted broker payload, ready to hand off.
type Message struct {
  Topic string
  Body []byte
  QoS byte
  Retained bool
}

// BuildMessage assembles the wire payload for a decoded reading. Every value
// is a formatted string rather than a JSON number; consumers of the
// historical topic layout depend on that. Field names carry a "cali" or
// "uncali" suffix so downstream dashboards can tell the two apart.
func BuildMessage(r Reading, rssi int, color string) Message {
  suffix := "uncali"

  if r.Calibrated {
    suffix = "cali"
  }

  data := map[string]string{
    "specific_gravity_" + suffix: fmt.Sprintf("%.3f", r.SpecificGravity),
    "plato_" + suffix: fmt.Sprintf("%.2f", Plato(r.SpecificGravity)),
    "temperature_celsius_" + suffix: fmt.Sprintf("%.2f", Celsius(r.TemperatureFahrenheit)),
    "temperature_fahrenheit_" + suffix: fmt.Sprintf("%.1f", r.TemperatureFahrenheit),
    "rssi": strconv.Itoa(rssi),
  }

  // a map of strings cannot fail to marshal
  body, _ := json.Marshal(data)

  return Message{
    Topic: topicPrefix + color,
    Body: body,
    QoS: MessageQoS,
    Retained: true,
  }
}
