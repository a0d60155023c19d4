package mqtt

import (
  "fmt"
  "time"

  pahomqtt "github.com/eclipse/paho.mqtt.golang"
  "github.com/pkg/errors"
  "github.com/rs/zerolog/log"
)

const (
  connectTimeout = 10 * time.Second
  publishTimeout = 5 * time.Second
  keepAlive = 60 * time.Second

  // milliseconds to wait for in-flight messages on disconnect
  disconnectQuiesce = 1000

  maxQoS = 2
)

type Config struct {
  Host string
  Port int
  Username string
  Password string
  ClientID string
}

// BrokerURL renders the paho broker address for this configuration.
func (c Config) BrokerURL() string {
  return fmt.Sprintf("tcp://%s:%d", c.Host, c.Port)
}

// Client is a thin publish-only wrapper around paho.mqtt.golang. The paho
// client handles reconnection on its own; a publish attempted while the
// broker is unreachable fails fast with ErrNotConnected instead of queueing.
type Client struct {
  client pahomqtt.Client
}

func buildClientOptions(cfg Config) *pahomqtt.ClientOptions {
  opts := pahomqtt.NewClientOptions()

  opts.AddBroker(cfg.BrokerURL())
  opts.SetClientID(cfg.ClientID)

  if cfg.Username != "" {
    opts.SetUsername(cfg.Username)
    opts.SetPassword(cfg.Password)
  }

  opts.SetCleanSession(true)
  opts.SetAutoReconnect(true)
  opts.SetConnectTimeout(connectTimeout)
  opts.SetKeepAlive(keepAlive)

  opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
    log.Warn().Err(err).Msg("mqtt: connection lost - reconnecting")
  })

  opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
    log.Debug().Str("Broker", cfg.BrokerURL()).Msg("mqtt: connected")
  })

  return opts
}

func Connect(cfg Config) (*Client, error) {
  c := &Client{
    client: pahomqtt.NewClient(buildClientOptions(cfg)),
  }

  token := c.client.Connect()

  if !token.WaitTimeout(connectTimeout) {
    return nil, errors.Wrapf(ErrConnectionFailed, "timeout after %v", connectTimeout)
  }

  if err := token.Error(); err != nil {
    return nil, errors.Wrap(ErrConnectionFailed, err.Error())
  }

  return c, nil
}

func (c *Client) Close() {
  c.client.Disconnect(disconnectQuiesce)
}
