package main

import (
  "time"

  "github.com/spf13/cobra"

  "github.com/robertof/go-pybricks-observer/ble"
  "github.com/robertof/go-pybricks-observer/capture"
  "github.com/robertof/go-pybricks-observer/observer"
)

type config struct {
  Debug, Trace bool

  Dedup bool
  Theme string

  QueueCapacity int

  ScanInterval time.Duration
  ScanWindow   time.Duration
  PassiveScan  bool

  WatchdogTimeout         time.Duration
  PreventiveRestartEvents uint64

  HeartbeatInterval time.Duration
  SmoothingAlpha    float64

  BluetoothDeviceId int
  MetricsBind       string
  DiscoverDevices   bool
}

func bindFlags(cmd *cobra.Command, cfg *config) {
  f := cmd.Flags()

  f.BoolVar(&cfg.Dedup, "dedup", true,
    "Suppress repeated values per (hub, channel); BLE retransmits each value several times")
  f.StringVar(&cfg.Theme, "theme", "light",
    "Address color palette, 'dark' or 'light', matching the terminal background")
  f.IntVar(&cfg.QueueCapacity, "queue-capacity", capture.DefaultQueueCapacity,
    "Capacity of the capture hand-off queue; overflow drops the oldest entry")
  f.DurationVar(&cfg.ScanInterval, "scan-interval", ble.DefaultScanParams.Interval,
    "How often a radio scan window starts")
  f.DurationVar(&cfg.ScanWindow, "scan-window", ble.DefaultScanParams.Window,
    "How long each radio scan window lasts (window/interval = duty cycle)")
  f.BoolVar(&cfg.PassiveScan, "passive", false,
    "Scan passively; hub names delivered via scan responses will not be seen")
  f.DurationVar(&cfg.WatchdogTimeout, "watchdog", observer.DefaultWatchdogTimeout,
    "Restart the scan when no radio events arrive for this long")
  f.Uint64Var(&cfg.PreventiveRestartEvents, "preventive-restart-events", observer.DefaultPreventiveEvents,
    "Preventively restart the scan every N radio events to flush the controller buffer (0 disables)")
  f.DurationVar(&cfg.HeartbeatInterval, "heartbeat", 30 * time.Second,
    "How often to log a heartbeat status line (debug level; 0 disables)")
  f.Float64Var(&cfg.SmoothingAlpha, "rssi-alpha", 0,
    "RSSI smoothing factor; 0 uses the default (0.2 = 20% new reading, 80% history)")
  f.IntVar(&cfg.BluetoothDeviceId, "bluetooth-device", 0,
    "Bluetooth (HCI) device ID")
  f.StringVar(&cfg.MetricsBind, "metrics-bind", "",
    "Serve Prometheus metrics on this address (empty disables)")
  f.BoolVar(&cfg.DiscoverDevices, "discover", false,
    "Discover nearby BLE devices for 5 seconds and quit")
  f.BoolVar(&cfg.Debug, "debug", false, "Enable debug logs")
  f.BoolVar(&cfg.Trace, "trace", false, "Enable trace logs")
}

func (c config) scanParams() ble.ScanParams {
  return ble.ScanParams{
    Interval: c.ScanInterval,
    Window:   c.ScanWindow,
    Active:   !c.PassiveScan,
  }
}
