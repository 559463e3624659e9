package ble

import (
  "strconv"
  "time"
)

// ScanParams mirror the HCI LE scan parameters: how often a scan window
// opens (Interval), how long it stays open (Window), and whether the scan
// is active. Window / Interval is the radio duty cycle; higher duty
// cycles catch more packets but fill the controller's event buffer
// faster. Active scanning sends scan requests back, which is how hubs
// deliver their name in a scan response.
type ScanParams struct {
  Interval time.Duration
  Window   time.Duration
  Active   bool
}

// DefaultScanParams is a 50% duty cycle, a good balance for multi-hub
// use, with active scanning so names come through.
var DefaultScanParams = ScanParams{
  Interval: 100 * time.Millisecond,
  Window:   50 * time.Millisecond,
  Active:   true,
}

// HCI expresses interval and window in units of 0.625ms, valid range
// 0x0004 - 0x4000.
func toScanUnits(d time.Duration) uint16 {
  units := d.Microseconds() / 625

  if units < 0x0004 {
    units = 0x0004
  }

  if units > 0x4000 {
    units = 0x4000
  }

  return uint16(units)
}

func (p ScanParams) intervalUnits() uint16 {
  return toScanUnits(p.Interval)
}

func (p ScanParams) windowUnits() uint16 {
  return toScanUnits(p.Window)
}

func (p ScanParams) scanType() scanType {
  if p.Active {
    return scanTypeActive
  }

  return scanTypePassive
}

type scanType uint8

const (
  scanTypePassive scanType = iota
  scanTypeActive
)

func (s scanType) String() string {
  switch s {
  case scanTypeActive:
    return "Active"
  case scanTypePassive:
    return "Passive"
  default:
    panic("unknown scanType value: " + strconv.Itoa(int(s)))
  }
}
