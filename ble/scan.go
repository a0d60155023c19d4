package ble

import (
  "context"
  "fmt"

  "github.com/go-ble/ble"
)

func WrapContextWithSigHandler(ctx context.Context, cancel func()) context.Context {
  return ble.WithSigHandler(ctx, cancel)
}

// Scan runs a scan until the context expires, invoking onAdvertisement for
// every advertisement received. Duplicate frames are reported on purpose: a
// beacon re-broadcasts the same reading continuously and each frame within a
// window is a separate event.
func (h *Handle) Scan(ctx context.Context, onAdvertisement func(Advertisement)) error {
  err := h.dev.Scan(ctx, true, onAdvertisement)

  if err != nil {
    return fmt.Errorf("failed to initiate scan: %w", err)
  }

  return nil
}
