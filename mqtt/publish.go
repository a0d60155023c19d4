package mqtt

import (
  "github.com/pkg/errors"
)

// Publish sends a single message and waits for the broker handshake to
// complete (or the publish timeout to expire). QoS 2 messages block for the
// full exactly-once exchange.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
  if qos > maxQoS {
    return ErrInvalidQoS
  }

  if !c.client.IsConnected() {
    return ErrNotConnected
  }

  token := c.client.Publish(topic, qos, retained, payload)

  if !token.WaitTimeout(publishTimeout) {
    return errors.Wrapf(ErrPublishFailed, "timeout after %v", publishTimeout)
  }

  if err := token.Error(); err != nil {
    return errors.Wrap(ErrPublishFailed, err.Error())
  }

  return nil
}
