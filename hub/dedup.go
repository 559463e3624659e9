package hub

import "strconv"

// Deduper suppresses repeated values per (hub, channel) pair. BLE devices
// transmit each advertisement several times per broadcast interval across
// the radio channels, so most receptions carry a value that was already
// printed. Keys accumulate for the whole session and are never evicted.
type Deduper struct {
  enabled bool
  last    map[string]string
}

func NewDeduper(enabled bool) *Deduper {
  return &Deduper{
    enabled: enabled,
    last:    make(map[string]string),
  }
}

// ShouldEmit reports whether a decoded value differs from the last one
// seen on the same (address, channel) key, storing it when it does. With
// deduplication disabled it always reports true and leaves the cache
// untouched.
func (d *Deduper) ShouldEmit(addrText string, channel uint8, decoded string) bool {
  if !d.enabled {
    return true
  }

  key := addrText + "#" + strconv.Itoa(int(channel))

  if prev, ok := d.last[key]; ok && prev == decoded {
    return false
  }

  d.last[key] = decoded

  return true
}

// Suppressing reports whether deduplication is active.
func (d *Deduper) Suppressing() bool {
  return d.enabled
}
