package capture

import "sync"

// DefaultQueueCapacity absorbs the burst that can pile up between two 20ms
// drains with plenty of headroom (~85 Pybricks packets/sec from ten hubs
// fills fewer than 5 slots per drain).
const DefaultQueueCapacity = 180

// Queue is the fixed-capacity FIFO between the radio event context and the
// processing loop. Push never blocks and never grows the buffer: when the
// queue is full the oldest capture is discarded to admit the new one,
// favoring fresh telemetry over complete telemetry.
type Queue struct {
  mu      sync.Mutex
  buf     []RawCapture
  head    int
  n       int
  dropped uint64
}

func NewQueue(capacity int) *Queue {
  if capacity <= 0 {
    capacity = DefaultQueueCapacity
  }

  return &Queue{
    buf: make([]RawCapture, capacity),
  }
}

// Push appends a capture, dropping the oldest entry when full. O(1), no
// allocation, safe to call from the radio event goroutine.
func (q *Queue) Push(c RawCapture) {
  q.mu.Lock()

  if q.n == len(q.buf) {
    q.head = (q.head + 1) % len(q.buf)
    q.n -= 1
    q.dropped += 1
  }

  q.buf[(q.head + q.n) % len(q.buf)] = c
  q.n += 1

  q.mu.Unlock()
}

// Drain appends every pending capture to into (oldest first) and empties
// the queue. The processing loop calls this once per iteration with a
// reused scratch slice.
func (q *Queue) Drain(into []RawCapture) []RawCapture {
  q.mu.Lock()

  for q.n > 0 {
    into = append(into, q.buf[q.head])
    q.buf[q.head] = RawCapture{}
    q.head = (q.head + 1) % len(q.buf)
    q.n -= 1
  }

  q.mu.Unlock()

  return into
}

func (q *Queue) Len() int {
  q.mu.Lock()
  defer q.mu.Unlock()

  return q.n
}

// Dropped returns how many captures were discarded to overflow. Push does
// not log drops; this counter is their only trace.
func (q *Queue) Dropped() uint64 {
  q.mu.Lock()
  defer q.mu.Unlock()

  return q.dropped
}
