package pybricks

import (
  "encoding/hex"
  "fmt"
  "strconv"
)

// Kind tags the decoded value variants of the Pybricks broadcast encoding.
type Kind uint8

const (
  // KindAbsent marks a failed or unrecognized decode. It is not an error:
  // the caller drops the packet (or prints the placeholder) and moves on.
  KindAbsent Kind = iota
  KindBool
  KindInt
  KindFloat
  KindString
  KindBytes
)

func (k Kind) String() string {
  switch k {
  case KindAbsent:
    return "Absent"
  case KindBool:
    return "Bool"
  case KindInt:
    return "Int"
  case KindFloat:
    return "Float"
  case KindString:
    return "String"
  case KindBytes:
    return "Bytes"
  default:
    panic("unknown value kind: " + strconv.Itoa(int(k)))
  }
}

// Value is one decoded broadcast value. Only the field matching Kind is
// meaningful; the zero Value is Absent.
type Value struct {
  Kind  Kind
  Bool  bool
  Int   int32
  Float float32
  Str   string
  Bytes []byte
}

// String renders the value the way it appears on an output line: floats to
// 6 significant digits, byte sequences as hex, Absent as a placeholder.
func (v Value) String() string {
  switch v.Kind {
  case KindBool:
    return strconv.FormatBool(v.Bool)
  case KindInt:
    return strconv.Itoa(int(v.Int))
  case KindFloat:
    return fmt.Sprintf("%.6g", v.Float)
  case KindString:
    return v.Str
  case KindBytes:
    return hex.EncodeToString(v.Bytes)
  default:
    return "?"
  }
}
