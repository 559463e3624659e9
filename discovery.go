package main

import (
  "context"
  "time"

  "github.com/rs/zerolog/log"

  "github.com/robertof/go-pybricks-observer/ble"
)

// doDeviceDiscovery scans for a few seconds and logs every BLE device it
// hears, Pybricks or not. Handy for checking the adapter works and what
// else is shouting nearby.
func doDeviceDiscovery(handle *ble.Handle) {
  log.Info().Msg("Starting in device discovery mode - collecting devices for 5 seconds...")

  type deviceInfo struct {
    name        string
    connectable bool
  }

  devices := make(map[string]deviceInfo)

  ctx, cancel := context.WithTimeout(context.Background(), 5 * time.Second)
  defer cancel()

  err := handle.ScanAll(ble.WrapContextWithSigHandler(ctx, cancel), func(a ble.Advertisement) {
    addr := a.Addr().String()

    info, known := devices[addr]

    if info.name == "" {
      info.name = a.LocalName()
    }

    info.connectable = a.Connectable()
    devices[addr] = info

    if !known {
      log.Debug().
        Str("Addr", addr).
        Str("Name", a.LocalName()).
        Bool("Connectable", a.Connectable()).
        Hex("ManufacturerData", a.ManufacturerData()).
        Msg("Received device advertisement")
    }
  })

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initiate scan")
  }

  log.Info().Int("Found", len(devices)).Msg("Finished device discovery")

  for addr, data := range devices {
    log.Info().
      Str("Addr", addr).
      Str("Name", data.name).
      Bool("Connectable", data.connectable).
      Msg("Found device")
  }
}
