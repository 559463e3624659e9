package ble

import (
  "context"
  "net"
  "sync"

  "github.com/go-ble/ble"
  "github.com/rs/zerolog/log"

  "github.com/robertof/go-pybricks-observer/capture"
)

// Driver is the contract the observer core holds against the radio: arm
// or disarm scanning with fixed parameters. Both commands are idempotent.
type Driver interface {
  StartScan() error
  StopScan() error
}

// Handler receives radio events. OnAdvertisement runs on the driver's
// event goroutine and must stay allocation-light and non-blocking: push to
// the queue, bump counters, return. OnScanEnded fires exactly once per
// armed scan, whether it was stopped deliberately or died on its own.
type Handler interface {
  OnAdvertisement(c capture.RawCapture)
  OnScanEnded()
}

// scan response event type in the LE advertising report
const evtTypeScanRsp = 0x04

type scanState struct {
  cancel context.CancelFunc
  done   chan struct{}
}

type driverState struct {
  mu      sync.Mutex
  scan    *scanState
  handler Handler
}

var _ Driver = (*Handle)(nil)

// SetHandler registers the event sink. Must be called before StartScan.
func (h *Handle) SetHandler(handler Handler) {
  h.state.mu.Lock()
  h.state.handler = handler
  h.state.mu.Unlock()
}

// StartScan arms the radio scan and returns immediately; a no-op if a
// scan is already running. Events flow to the handler until StopScan or
// an unexpected controller stop.
func (h *Handle) StartScan() error {
  h.state.mu.Lock()

  if h.state.scan != nil {
    h.state.mu.Unlock()
    return nil
  }

  ctx, cancel := context.WithCancel(context.Background())
  s := &scanState{
    cancel: cancel,
    done:   make(chan struct{}),
  }
  h.state.scan = s

  h.state.mu.Unlock()

  go h.runScan(ctx, s)

  return nil
}

// StopScan disarms the scan and waits for the scan goroutine to wind
// down, so that a subsequent StartScan never races the old scan on the
// controller. A no-op when no scan is running.
func (h *Handle) StopScan() error {
  h.state.mu.Lock()
  s := h.state.scan
  h.state.mu.Unlock()

  if s == nil {
    return nil
  }

  s.cancel()
  <-s.done

  return nil
}

func (h *Handle) runScan(ctx context.Context, s *scanState) {
  err := h.dev.Scan(ctx, true, h.onAdvertisement)

  if err != nil && ctx.Err() == nil {
    log.Debug().Err(err).Msg("ble: scan ended with error")
  }

  // detach before notifying, so the handler can re-arm from OnScanEnded
  h.state.mu.Lock()
  if h.state.scan == s {
    h.state.scan = nil
  }
  handler := h.state.handler
  h.state.mu.Unlock()

  if handler != nil {
    handler.OnScanEnded()
  }

  close(s.done)
}

// onAdvertisement runs on go-ble's event goroutine. It converts the
// advertisement into a RawCapture and hands it to the registered handler.
// The payload is still a view into the driver's event; the handler copies
// it if and only if the capture passes the prefilter and is queued.
func (h *Handle) onAdvertisement(a ble.Advertisement) {
  h.state.mu.Lock()
  handler := h.state.handler
  h.state.mu.Unlock()

  if handler == nil {
    return
  }

  addr, ok := addrBytes(a.Addr())

  if !ok {
    return
  }

  c := capture.RawCapture{
    Addr: addr,
    RSSI: a.RSSI(),
  }

  // The linux HCI advertisement exposes the report event type and the raw
  // AD payload beyond the portable ble.Advertisement surface.
  if r, ok := a.(interface{ EventType() uint8 }); ok && r.EventType() == evtTypeScanRsp {
    c.Kind = capture.KindScanResponse
  }

  if r, ok := a.(interface{ Data() []byte }); ok {
    c.Payload = r.Data()
  } else {
    c.Payload = synthesizePayload(a)
  }

  handler.OnAdvertisement(c)
}

// addrBytes converts the driver's textual address into the 6 raw bytes in
// wire order (least significant first).
func addrBytes(a ble.Addr) (out [6]byte, ok bool) {
  hw, err := net.ParseMAC(a.String())

  if err != nil || len(hw) != 6 {
    return out, false
  }

  for i, b := range hw {
    out[5 - i] = b
  }

  return out, true
}

// synthesizePayload rebuilds the two AD records the decode path cares
// about from the pre-split accessors. Fallback for backends that do not
// expose the raw payload.
func synthesizePayload(a ble.Advertisement) []byte {
  var p []byte

  if md := a.ManufacturerData(); len(md) > 0 && len(md) <= 29 {
    p = append(p, byte(len(md) + 1), 0xFF)
    p = append(p, md...)
  }

  if name := a.LocalName(); name != "" && len(name) <= 29 {
    p = append(p, byte(len(name) + 1), 0x09)
    p = append(p, name...)
  }

  return p
}
