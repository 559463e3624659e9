package pybricks_test

import (
  "testing"

  "github.com/robertof/go-pybricks-observer/pybricks"
)

func TestFindVendorBlock(t *testing.T) {
  // flags record, then manufacturer data with the Pybricks company ID
  payload := []byte{
    0x02, 0x01, 0x06,
    0x06, 0xFF, 0x97, 0x03, 0x01, 0x61, 0x2A,
  }

  offset, ok := pybricks.FindVendorBlock(payload)

  if !ok {
    t.Fatalf("FindVendorBlock(%x): vendor block not found", payload)
  }

  if offset != 5 {
    t.Fatalf("FindVendorBlock(%x): got offset %d, wanted 5", payload, offset)
  }
}

func TestFindVendorBlock_WrongCompanyID(t *testing.T) {
  // manufacturer record from another vendor (Apple, 0x004C)
  payload := []byte{
    0x05, 0xFF, 0x4C, 0x00, 0x02, 0x15,
  }

  if offset, ok := pybricks.FindVendorBlock(payload); ok {
    t.Fatalf("FindVendorBlock(%x): accepted foreign vendor at offset %d", payload, offset)
  }
}

func TestFindVendorBlock_MalformedLength(t *testing.T) {
  // declared length overruns the payload -- the walk must stop early
  payload := []byte{
    0x1F, 0xFF, 0x97, 0x03,
  }

  if _, ok := pybricks.FindVendorBlock(payload); ok {
    t.Fatalf("FindVendorBlock(%x): accepted record overrunning the payload", payload)
  }
}

func TestFindVendorBlock_ZeroLengthTerminator(t *testing.T) {
  // a zero length byte ends the walk even if valid records follow
  payload := []byte{
    0x00, 0x06, 0xFF, 0x97, 0x03, 0x01, 0x61, 0x2A,
  }

  if _, ok := pybricks.FindVendorBlock(payload); ok {
    t.Fatalf("FindVendorBlock(%x): walked past a zero length byte", payload)
  }
}

func TestFindLocalName(t *testing.T) {
  cases := []struct {
    payload []byte
    want    string
    ok      bool
  }{
    // complete local name
    {[]byte{0x05, 0x09, 'h', 'u', 'b', '1'}, "hub1", true},
    // shortened local name
    {[]byte{0x03, 0x08, 'h', '1'}, "h1", true},
    // name after another record
    {[]byte{0x02, 0x01, 0x06, 0x04, 0x09, 'a', 'b', 'c'}, "abc", true},
    // no name record at all
    {[]byte{0x02, 0x01, 0x06}, "", false},
    // invalid UTF-8 degrades to no name
    {[]byte{0x03, 0x09, 0xFF, 0xFE}, "", false},
    // length overrun stops the walk
    {[]byte{0x10, 0x09, 'x'}, "", false},
  }

  for _, c := range cases {
    got, ok := pybricks.FindLocalName(c.payload)

    if ok != c.ok || got != c.want {
      t.Errorf("FindLocalName(%x): got (%q, %v), wanted (%q, %v)",
        c.payload, got, ok, c.want, c.ok)
    }
  }
}
