// Package observer wires the capture queue, the Pybricks decoder, the hub
// registry and the scan supervisor into the processing loop that turns
// raw advertisements into output lines.
package observer

import (
  "context"
  "io"
  "time"

  "github.com/pkg/errors"
  "github.com/rs/zerolog/log"

  "github.com/robertof/go-pybricks-observer/ble"
  "github.com/robertof/go-pybricks-observer/capture"
  "github.com/robertof/go-pybricks-observer/hub"
  "github.com/robertof/go-pybricks-observer/pybricks"
  "github.com/robertof/go-pybricks-observer/render"
)

// DefaultTick is the processing-loop sleep. Tight enough that the queue
// drains roughly one packet per iteration under a 10-hub load.
const DefaultTick = 20 * time.Millisecond

type Options struct {
  QueueCapacity    int
  Dedup            bool
  Theme            render.Theme
  SmoothingAlpha   float64
  WatchdogTimeout  time.Duration
  PreventiveEvents uint64
  HeartbeatEvery   time.Duration // zero disables the heartbeat
  Tick             time.Duration

  // Out receives the data lines (header, values, session statistics).
  // Defaults to os.Stdout via main; diagnostics go through zerolog.
  Out io.Writer
}

// Observer owns all processing-context state. The only methods safe to
// call from other goroutines are OnAdvertisement and OnScanEnded, which
// touch nothing beyond the queue, the atomic counters and the supervisor
// guard.
type Observer struct {
  driver   ble.Driver
  queue    *capture.Queue
  counters capture.Counters
  registry *hub.Registry
  pending  *hub.PendingNames
  dedup    *hub.Deduper
  renderer *render.Renderer
  super    *Supervisor

  start          time.Time
  out            io.Writer
  tick           time.Duration
  heartbeatEvery time.Duration
  lastHeartbeat  time.Time

  batch []capture.RawCapture // drain scratch, reused every iteration
}

func New(driver ble.Driver, opts Options) *Observer {
  start := time.Now()

  renderer := render.New(opts.Theme, start, opts.Out)

  o := &Observer{
    driver:         driver,
    queue:          capture.NewQueue(opts.QueueCapacity),
    registry:       hub.NewRegistry(renderer.Colors()),
    pending:        hub.NewPendingNames(),
    dedup:          hub.NewDeduper(opts.Dedup),
    renderer:       renderer,
    start:          start,
    out:            opts.Out,
    tick:           opts.Tick,
    heartbeatEvery: opts.HeartbeatEvery,
    lastHeartbeat:  start,
  }

  if opts.SmoothingAlpha > 0 {
    o.registry.Alpha = opts.SmoothingAlpha
  }

  if o.tick <= 0 {
    o.tick = DefaultTick
  }

  o.super = NewSupervisor(driver, &o.counters.Events)
  o.super.PreventiveEvents = opts.PreventiveEvents

  if opts.WatchdogTimeout > 0 {
    o.super.WatchdogTimeout = opts.WatchdogTimeout
  }

  return o
}

// Counters exposes the diagnostic counters for the metrics exporter.
func (o *Observer) Counters() *capture.Counters {
  return &o.counters
}

// Queue exposes the ingestion queue for the metrics exporter.
func (o *Observer) Queue() *capture.Queue {
  return o.queue
}

// Restarts exposes the supervisor's intervention tallies.
func (o *Observer) Restarts() *RestartCounts {
  return o.super.Counts()
}

// OnAdvertisement is the time-critical capture path: count, prefilter,
// queue, return. No formatting, no registry or dedup access. Scan
// responses are queued unconditionally (they are small and carry hub
// names); primary advertisements only when the cheap company ID scan
// matches.
func (o *Observer) OnAdvertisement(c capture.RawCapture) {
  o.counters.Events.Add(1)

  if c.Kind == capture.KindScanResponse {
    o.enqueue(c)
    return
  }

  if capture.ContainsCompanyID(c.Payload) {
    o.enqueue(c)
  }
}

// enqueue copies the payload out of the driver's event buffer and pushes
// the capture. Rejected payloads are never copied.
func (o *Observer) enqueue(c capture.RawCapture) {
  c.Payload = append([]byte(nil), c.Payload...)

  o.counters.Queued.Add(1)
  o.queue.Push(c)
}

// OnScanEnded forwards the driver's scan-ended event to the supervisor.
func (o *Observer) OnScanEnded() {
  o.super.HandleScanEnded()
}

// Run is the processing loop: drain the queue, run supervisor checks,
// sleep, repeat. The sleep is the sole suspension point; cancelling ctx
// triggers an orderly shutdown (scan stopped, session statistics
// printed) and Run returns nil.
func (o *Observer) Run(ctx context.Context) error {
  o.renderer.Header()

  if err := o.driver.StartScan(); err != nil {
    return errors.Wrap(err, "failed to arm scan")
  }

  ticker := time.NewTicker(o.tick)
  defer ticker.Stop()

  for {
    o.processQueue()

    now := time.Now()
    o.super.Check(now)
    o.heartbeat(now)

    select {
    case <-ctx.Done():
      o.shutdown()
      return nil
    case <-ticker.C:
    }
  }
}

func (o *Observer) shutdown() {
  log.Info().Msg("Stopping scan")

  o.super.Shutdown()

  // one last drain so values received during teardown are not lost
  o.processQueue()
  o.printStats()
}

func (o *Observer) processQueue() {
  o.batch = o.queue.Drain(o.batch[:0])

  for i := range o.batch {
    o.counters.Processed.Add(1)
    o.process(&o.batch[i])
  }
}

func (o *Observer) process(c *capture.RawCapture) {
  // Names can appear in any packet type: City and Technic hubs put theirs
  // in regular advertisements, Move Hub only in scan responses.
  name, hasName := pybricks.FindLocalName(c.Payload)

  if c.Kind == capture.KindScanResponse {
    if !hasName {
      return
    }

    if h, ok := o.registry.Lookup(c.Addr); ok {
      o.noteName(h, name)
    } else {
      // hold until the first decoded packet registers the hub
      o.pending.Put(c.Addr, name)
    }

    return
  }

  channel, value, ok := pybricks.ParsePacket(c.Payload)

  if !ok {
    return
  }

  h := o.registry.Resolve(c.Addr)

  if cached, ok := o.pending.Promote(c.Addr); ok {
    o.noteName(h, cached)
  }

  if hasName {
    o.noteName(h, name)
  }

  ema := o.registry.UpdateRSSI(c.Addr, c.RSSI)
  decoded := value.String()

  if !o.dedup.ShouldEmit(h.AddrText, channel, decoded) {
    return
  }

  o.counters.Printed.Add(1)
  o.renderer.Line(h, ema, channel, decoded)
}

func (o *Observer) noteName(h *hub.Hub, name string) {
  if h.SetNameOnce(name) {
    // visible in the scroll so mid-session name arrivals are noticed
    log.Info().
      Str("Addr", h.AddrText).
      Str("Name", name).
      Msg("Hub name received")
  }
}

func (o *Observer) heartbeat(now time.Time) {
  if o.heartbeatEvery <= 0 || now.Sub(o.lastHeartbeat) < o.heartbeatEvery {
    return
  }

  o.lastHeartbeat = now

  log.Debug().
    Dur("Elapsed", now.Sub(o.start)).
    Uint64("Events", o.counters.Events.Load()).
    Uint64("Queued", o.counters.Queued.Load()).
    Uint64("Processed", o.counters.Processed.Load()).
    Uint64("Printed", o.counters.Printed.Load()).
    Uint64("Drops", o.queue.Dropped()).
    Int("QueueLen", o.queue.Len()).
    Msg("Heartbeat")

  // repeat the column header so the scroll stays readable
  o.renderer.Header()
}
