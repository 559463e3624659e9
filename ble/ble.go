// Package ble wraps the Linux HCI driver behind the small collaborator
// contract the observer core depends on: arm/disarm scanning plus raw
// advertisement and scan-ended events. Nothing above this package touches
// go-ble directly.
package ble

import (
  "context"
  "errors"
  "fmt"

  "github.com/go-ble/ble"
  "github.com/go-ble/ble/linux"
  "github.com/go-ble/ble/linux/hci/cmd"
  "github.com/rs/zerolog/log"
)

type Advertisement = ble.Advertisement

// Handle owns the HCI device and the lifecycle of the current scan.
type Handle struct {
  dev    *linux.Device
  params ScanParams
  state  driverState
}

// Init opens the given HCI device configured with the requested scan
// parameters. The parameters are fixed for the life of the handle; scan
// restarts always re-arm with the same values.
func Init(deviceId int, params ScanParams) (*Handle, error) {
  log.Debug().
    Stringer("ScanType", params.scanType()).
    Dur("Interval", params.Interval).
    Dur("Window", params.Window).
    Int("DeviceID", deviceId).
    Msg("Initializing Bluetooth device")

  dev, err := linux.NewDevice(
    ble.OptDeviceID(deviceId),
    ble.OptScanParams(cmd.LESetScanParameters{
      LEScanType:           uint8(params.scanType()), // 0x00: passive, 0x01: active
      LEScanInterval:       params.intervalUnits(),   // 0x0004 - 0x4000; N * 0.625msec
      LEScanWindow:         params.windowUnits(),     // 0x0004 - 0x4000; N * 0.625msec
      OwnAddressType:       0x00,                     // public
      ScanningFilterPolicy: 0x00,                     // accept all
    }),
  )

  if err != nil {
    return nil, fmt.Errorf("failed to init bluetooth device: %w", err)
  }

  ble.SetDefaultDevice(dev)

  return &Handle{
    dev:    dev,
    params: params,
  }, nil
}

// Close releases the HCI device. Stop any running scan first.
func (h *Handle) Close() {
  h.dev.Stop()
}

func WrapContextWithSigHandler(ctx context.Context, cancel func()) context.Context {
  return ble.WithSigHandler(ctx, cancel)
}

// ScanAll performs a plain scan delivering every advertisement to the
// callback until the context ends. Used by the discovery mode; the
// observer proper goes through the Driver surface instead.
func (h *Handle) ScanAll(ctx context.Context, onDevice func(Advertisement)) error {
  err := h.dev.Scan(ctx, true, onDevice)

  if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
    return fmt.Errorf("failed to scan: %w", err)
  }

  return nil
}
