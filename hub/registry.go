// Package hub tracks per-hub session state: identity (tag letter, color
// slot, cached address text), smoothed signal strength, the write-once
// friendly name and the duplicate-value filter. Everything here is owned
// exclusively by the processing loop and is not safe for concurrent use.
package hub

import (
  "fmt"

  "github.com/robertof/go-pybricks-observer/utils"
)

// DefaultSmoothingAlpha weights a new RSSI reading against history:
// 20% new, 80% old. Higher is more responsive but jumpier.
const DefaultSmoothingAlpha = 0.2

// Hub is one broadcasting hub observed this session. Tag, ColorIndex and
// AddrText never change after creation; Name is write-once. Hubs are never
// deleted during a run.
type Hub struct {
  Tag        byte
  ColorIndex int
  AddrText   string
  Name       string

  ema    float64
  hasEMA bool
}

// SetNameOnce stores the hub's friendly name permanently. Empty names and
// names arriving after one is already set are ignored -- the first name
// wins for the whole session.
func (h *Hub) SetNameOnce(name string) bool {
  if h.Name != "" || name == "" {
    return false
  }

  h.Name = name

  return true
}

// RSSI returns the smoothed signal strength, ok == false before the first
// sample.
func (h *Hub) RSSI() (float64, bool) {
  return h.ema, h.hasEMA
}

func (h *Hub) String() string {
  return fmt.Sprintf("hub[tag=%c, addr=%v, name=%q]", h.Tag, h.AddrText, h.Name)
}

// AddrText renders 6 raw wire-order address bytes in the canonical
// AA:BB:CC:DD:EE:FF form (most significant byte first).
func AddrText(addr [6]byte) string {
  b := utils.Reverse(addr[:])

  return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}

// Registry assigns each hub address a stable letter tag ('A' through 'Z',
// wrapping) and a palette slot (wrapping independently), created lazily on
// the first decoded Pybricks packet from that address.
type Registry struct {
  // Alpha is the EMA smoothing factor for UpdateRSSI.
  Alpha float64

  colors int
  hubs   map[[6]byte]*Hub
  order  [][6]byte
}

// NewRegistry creates a registry cycling through the given number of
// palette slots.
func NewRegistry(colors int) *Registry {
  if colors <= 0 {
    panic("registry needs at least one color slot")
  }

  return &Registry{
    Alpha:  DefaultSmoothingAlpha,
    colors: colors,
    hubs:   make(map[[6]byte]*Hub),
  }
}

// Resolve returns the record for addr, creating it on first sight. The
// address text is formatted exactly once here: it appears on every output
// line and is not free to rebuild per packet.
func (r *Registry) Resolve(addr [6]byte) *Hub {
  if h, ok := r.hubs[addr]; ok {
    return h
  }

  seen := len(r.order)

  h := &Hub{
    Tag:        byte('A' + seen % 26),
    ColorIndex: seen % r.colors,
    AddrText:   AddrText(addr),
  }

  r.hubs[addr] = h
  r.order = append(r.order, addr)

  return h
}

// Lookup returns the record for addr without creating one.
func (r *Registry) Lookup(addr [6]byte) (*Hub, bool) {
  h, ok := r.hubs[addr]

  return h, ok
}

// UpdateRSSI folds a reading into the hub's exponential moving average and
// returns the updated value. The first reading seeds the average directly.
// Call once per processed packet, after Resolve.
func (r *Registry) UpdateRSSI(addr [6]byte, dbm int) float64 {
  h, ok := r.hubs[addr]

  if !ok {
    panic("UpdateRSSI before Resolve for " + AddrText(addr))
  }

  if !h.hasEMA {
    h.ema = float64(dbm)
    h.hasEMA = true
  } else {
    h.ema = r.Alpha * float64(dbm) + (1 - r.Alpha) * h.ema
  }

  return h.ema
}

// Seen returns how many distinct hubs produced a decoded packet.
func (r *Registry) Seen() int {
  return len(r.order)
}

// All returns the hubs in tag assignment order.
func (r *Registry) All() []*Hub {
  out := make([]*Hub, 0, len(r.order))

  for _, addr := range r.order {
    out = append(out, r.hubs[addr])
  }

  return out
}
