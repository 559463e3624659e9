// Package capture holds the structures shared between the radio event
// context and the processing loop: the raw advertisement hand-off, the
// bounded drop-oldest queue, the diagnostic counters and the vendor ID
// prefilter. Everything here is O(1) and safe to touch from the driver's
// event goroutine.
package capture

// Kind distinguishes primary advertisements from scan responses.
type Kind uint8

const (
  KindPrimary Kind = iota
  KindScanResponse
)

func (k Kind) String() string {
  if k == KindScanResponse {
    return "ScanResponse"
  }
  return "Primary"
}

// RawCapture is one advertisement as handed from the radio event context
// to the processing loop. The driver fills Payload with a view into its
// event buffer; the capture path copies it into the capture's ownership
// if and when it enters the queue. From there ownership transfers to the
// processing loop, which discards it after one pass.
type RawCapture struct {
  Addr    [6]byte // wire order, least significant byte first
  Payload []byte  // raw AD records, at most 31 bytes
  RSSI    int     // dBm
  Kind    Kind
}
