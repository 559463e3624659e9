package capture

import "sync/atomic"

// Counters are the monotonic diagnostics shared across contexts. The radio
// event context increments Events and Queued; Processed and Printed belong
// to the processing loop. All fields are atomics so the supervisor and the
// metrics exporter can read them from anywhere.
type Counters struct {
  Events    atomic.Uint64 // radio events seen by the capture handler
  Queued    atomic.Uint64 // captures that made it into the queue
  Processed atomic.Uint64 // captures drained and examined
  Printed   atomic.Uint64 // lines actually emitted
}
