package capture_test

import (
  "testing"

  "github.com/robertof/go-pybricks-observer/capture"
)

func numbered(n int) capture.RawCapture {
  return capture.RawCapture{RSSI: n}
}

func TestQueue_FIFO(t *testing.T) {
  q := capture.NewQueue(4)

  for i := 0; i < 3; i += 1 {
    q.Push(numbered(i))
  }

  out := q.Drain(nil)

  if len(out) != 3 {
    t.Fatalf("Drain: got %d captures, wanted 3", len(out))
  }

  for i, c := range out {
    if c.RSSI != i {
      t.Fatalf("Drain[%d]: got %d, wanted %d", i, c.RSSI, i)
    }
  }

  if q.Len() != 0 {
    t.Fatalf("Len after drain: got %d, wanted 0", q.Len())
  }
}

func TestQueue_OverflowDropsOldest(t *testing.T) {
  const capacity = 5

  q := capture.NewQueue(capacity)

  for i := 0; i < capacity + 1; i += 1 {
    q.Push(numbered(i))
  }

  if q.Len() != capacity {
    t.Fatalf("Len after overflow: got %d, wanted %d", q.Len(), capacity)
  }

  out := q.Drain(nil)

  // oldest entry (0) is gone, the most recent `capacity` remain in order
  for i, c := range out {
    if c.RSSI != i + 1 {
      t.Fatalf("Drain[%d]: got %d, wanted %d", i, c.RSSI, i + 1)
    }
  }

  if q.Dropped() != 1 {
    t.Fatalf("Dropped: got %d, wanted 1", q.Dropped())
  }
}

func TestQueue_WrapAround(t *testing.T) {
  q := capture.NewQueue(3)

  q.Push(numbered(0))
  q.Push(numbered(1))
  q.Drain(nil)

  // head is now offset; pushes must wrap correctly
  for i := 2; i < 5; i += 1 {
    q.Push(numbered(i))
  }

  out := q.Drain(nil)

  if len(out) != 3 {
    t.Fatalf("Drain: got %d captures, wanted 3", len(out))
  }

  for i, c := range out {
    if c.RSSI != i + 2 {
      t.Fatalf("Drain[%d]: got %d, wanted %d", i, c.RSSI, i + 2)
    }
  }
}

func TestContainsCompanyID(t *testing.T) {
  cases := []struct {
    payload []byte
    want    bool
  }{
    {[]byte{0x06, 0xFF, 0x97, 0x03, 0x05, 0x61, 0x2A}, true},
    // pair at the very end
    {[]byte{0x00, 0x97, 0x03}, true},
    // false positive by coincidence is fine -- the parser sorts it out
    {[]byte{0x97, 0x03}, true},
    // reversed pair does not match
    {[]byte{0x03, 0x97}, false},
    {[]byte{0x97}, false},
    {[]byte{}, false},
    {[]byte{0x4C, 0x00, 0x02, 0x15}, false},
  }

  for _, c := range cases {
    if got := capture.ContainsCompanyID(c.payload); got != c.want {
      t.Errorf("ContainsCompanyID(%x): got %v, wanted %v", c.payload, got, c.want)
    }
  }
}
