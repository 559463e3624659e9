package ble

import (
  "bytes"
  "testing"

  "github.com/go-ble/ble"
)

func TestAddrBytes(t *testing.T) {
  got, ok := addrBytes(ble.NewAddr("AA:BB:CC:DD:EE:FF"))

  if !ok {
    t.Fatal("addrBytes rejected a valid address")
  }

  // wire order: least significant byte first
  want := [6]byte{0xFF, 0xEE, 0xDD, 0xCC, 0xBB, 0xAA}

  if got != want {
    t.Fatalf("addrBytes: got %x, wanted %x", got, want)
  }
}

func TestAddrBytes_Invalid(t *testing.T) {
  if _, ok := addrBytes(ble.NewAddr("not-a-mac")); ok {
    t.Fatal("addrBytes accepted garbage")
  }
}

func TestSynthesizePayload(t *testing.T) {
  adv := fakeAdvertisement{
    manufacturerData: []byte{0x97, 0x03, 0x05, 0x61, 0x2A},
    name:             "hub1",
  }

  got := synthesizePayload(adv)

  want := []byte{
    0x06, 0xFF, 0x97, 0x03, 0x05, 0x61, 0x2A,
    0x05, 0x09, 'h', 'u', 'b', '1',
  }

  if !bytes.Equal(got, want) {
    t.Fatalf("synthesizePayload: got %x, wanted %x", got, want)
  }
}

func TestSynthesizePayload_Empty(t *testing.T) {
  if got := synthesizePayload(fakeAdvertisement{}); len(got) != 0 {
    t.Fatalf("synthesizePayload on empty advertisement: got %x", got)
  }
}

type fakeAdvertisement struct {
  name             string
  manufacturerData []byte
  addr             ble.Addr
}

func (f fakeAdvertisement) LocalName() string {
  return f.name
}

func (f fakeAdvertisement) ManufacturerData() []byte {
  return f.manufacturerData
}

func (f fakeAdvertisement) ServiceData() []ble.ServiceData {
  return nil
}

func (f fakeAdvertisement) Services() []ble.UUID {
  return nil
}

func (f fakeAdvertisement) OverflowService() []ble.UUID {
  return nil
}

func (f fakeAdvertisement) TxPowerLevel() int {
  return 0
}

func (f fakeAdvertisement) Connectable() bool {
  return false
}

func (f fakeAdvertisement) SolicitedService() []ble.UUID {
  return nil
}

func (f fakeAdvertisement) RSSI() int {
  return 0
}

func (f fakeAdvertisement) Addr() ble.Addr {
  return f.addr
}
