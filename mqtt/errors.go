package mqtt

import "errors"

var (
  ErrNotConnected = errors.New("mqtt: client not connected")
  ErrConnectionFailed = errors.New("mqtt: connection failed")
  ErrPublishFailed = errors.New("mqtt: publish failed")
  ErrInvalidQoS = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")
)
