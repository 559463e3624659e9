package capture

import "github.com/robertof/go-pybricks-observer/pybricks"

const (
  companyIDLo = byte(pybricks.CompanyID & 0xFF)
  companyIDHi = byte(pybricks.CompanyID >> 8)
)

// ContainsCompanyID reports whether the payload contains the Pybricks
// company ID byte pair (0x97 0x03) anywhere. This is the cheap prefilter
// for the radio event context, not a protocol parse: it may admit payloads
// that contain the pair by coincidence (ParsePacket rejects those later)
// but never misses a real Pybricks packet, and it keeps everything else
// from being copied and queued at all.
func ContainsCompanyID(payload []byte) bool {
  for i := 0; i + 1 < len(payload); i += 1 {
    if payload[i] == companyIDLo && payload[i + 1] == companyIDHi {
      return true
    }
  }

  return false
}
