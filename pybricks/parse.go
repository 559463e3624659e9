package pybricks

import "encoding/binary"

// ParsePacket tries to interpret an advertisement payload as a Pybricks
// broadcast packet. It reports the application channel and the decoded
// value, or ok == false when the payload is not Pybricks traffic.
func ParsePacket(payload []byte) (channel uint8, v Value, ok bool) {
  offset, found := FindVendorBlock(payload)

  if !found {
    return 0, Value{}, false
  }

  // company ID (2 bytes) + channel (1 byte) + at least one header byte
  if offset + 4 > len(payload) {
    return 0, Value{}, false
  }

  if binary.LittleEndian.Uint16(payload[offset:]) != CompanyID {
    return 0, Value{}, false
  }

  // The channel is strictly a single byte (0-255). Reading it as part of a
  // wider field bleeds channel 255 into the first value byte and produces
  // garbage like 42751 (0xA6FF).
  channel = payload[offset + 2]

  v, _ = DecodeValue(payload, offset + 3)

  return channel, v, true
}
