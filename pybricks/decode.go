package pybricks

import (
  "encoding/binary"
  "math"
  "unicode/utf8"
)

// Each value is prefixed by one header byte: (type << 5) | length.
// The length bits only matter for the variable-width types.
const (
  typeMask = 0b11100000
  lenMask  = 0b00011111

  typeSingleObject = 0 << 5 // wraps exactly one value, no data of its own
  typeTrue         = 1 << 5
  typeFalse        = 2 << 5
  typeInt          = 3 << 5 // 1, 2 or 4 bytes, signed little-endian
  typeFloat        = 4 << 5 // 4 bytes IEEE 754 little-endian
  typeString       = 5 << 5 // length bytes of UTF-8
  typeBytes        = 6 << 5 // length raw bytes
)

// DecodeValue decodes one Pybricks-encoded value from data starting at pos
// and returns it together with the number of payload bytes consumed past
// the final header byte. Every failure path returns an Absent value with
// zero consumed -- decoding never reads out of bounds and never panics.
func DecodeValue(data []byte, pos int) (Value, int) {
  if pos >= len(data) {
    return Value{}, 0
  }

  header := data[pos]
  typ := header & typeMask
  length := int(header & lenMask)
  pos += 1

  // The single-object wrapper carries no data: the real value's header
  // follows immediately. Depth is protocol-limited, but a loop keeps the
  // decoder flat regardless.
  for typ == typeSingleObject {
    if pos >= len(data) {
      return Value{}, 0
    }

    header = data[pos]
    typ = header & typeMask
    length = int(header & lenMask)
    pos += 1
  }

  switch typ {
  case typeTrue:
    return Value{Kind: KindBool, Bool: true}, 0
  case typeFalse:
    return Value{Kind: KindBool}, 0
  case typeInt:
    return decodeInt(data, pos, length)
  case typeFloat:
    return decodeFloat(data, pos)
  case typeString:
    return decodeString(data, pos, length)
  case typeBytes:
    return decodeBytes(data, pos, length)
  }

  return Value{}, 0
}

func decodeInt(data []byte, pos, length int) (Value, int) {
  if pos + length > len(data) {
    return Value{}, 0
  }

  bo := binary.LittleEndian

  switch length {
  case 1:
    return Value{Kind: KindInt, Int: int32(int8(data[pos]))}, 1
  case 2:
    return Value{Kind: KindInt, Int: int32(int16(bo.Uint16(data[pos:])))}, 2
  case 4:
    return Value{Kind: KindInt, Int: int32(bo.Uint32(data[pos:]))}, 4
  }

  // any other declared width is a decode failure
  return Value{}, 0
}

func decodeFloat(data []byte, pos int) (Value, int) {
  if pos + 4 > len(data) {
    return Value{}, 0
  }

  bits := binary.LittleEndian.Uint32(data[pos:])

  return Value{Kind: KindFloat, Float: math.Float32frombits(bits)}, 4
}

func decodeString(data []byte, pos, length int) (Value, int) {
  if pos + length > len(data) {
    return Value{}, 0
  }

  s := data[pos : pos + length]

  if !utf8.Valid(s) {
    return Value{}, 0
  }

  return Value{Kind: KindString, Str: string(s)}, length
}

func decodeBytes(data []byte, pos, length int) (Value, int) {
  if pos + length > len(data) {
    return Value{}, 0
  }

  out := make([]byte, length)
  copy(out, data[pos:])

  return Value{Kind: KindBytes, Bytes: out}, length
}
