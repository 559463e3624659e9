package observer

import (
  "sync/atomic"
  "time"

  "github.com/rs/zerolog/log"

  "github.com/robertof/go-pybricks-observer/ble"
)

const (
  // DefaultWatchdogTimeout restarts the scan when no radio events at all
  // arrive for this long.
  DefaultWatchdogTimeout = 10 * time.Second

  // DefaultPreventiveEvents is the radio event count between preventive
  // restarts. The controller's internal event buffer stalls silently
  // around the ~1100 event mark once it stops being drained; restarting
  // well before heavy traffic accumulates keeps delivery alive. Too low a
  // value causes restarts that can swallow a hub's boot-time name
  // broadcast window.
  DefaultPreventiveEvents = 6000
)

// RestartCounts tallies supervisor interventions by cause.
type RestartCounts struct {
  Preventive atomic.Uint64
  Watchdog   atomic.Uint64
  Recovered  atomic.Uint64 // unexpected controller stops re-armed
}

// Supervisor keeps the radio scan alive. It watches the capture-side
// event counter from the processing loop (preventive restarts and the
// stall watchdog) and reacts to scan-ended events from the driver
// (unexpected-stop recovery). It holds no radio state beyond counters,
// timestamps and the self-initiated-restart guard.
type Supervisor struct {
  // PreventiveEvents is the event-count threshold between preventive
  // restarts; zero disables them.
  PreventiveEvents uint64

  // WatchdogTimeout is how long the event counter may sit still before
  // the scan is considered stalled.
  WatchdogTimeout time.Duration

  driver ble.Driver
  events *atomic.Uint64

  baseline  uint64
  lastCheck time.Time

  // set while a self-initiated stop+start is in flight, so the resulting
  // scan-ended event is not mistaken for a controller failure
  restarting atomic.Bool

  counts RestartCounts
}

func NewSupervisor(driver ble.Driver, events *atomic.Uint64) *Supervisor {
  return &Supervisor{
    PreventiveEvents: DefaultPreventiveEvents,
    WatchdogTimeout:  DefaultWatchdogTimeout,
    driver:           driver,
    events:           events,
    lastCheck:        time.Now(),
  }
}

func (s *Supervisor) Counts() *RestartCounts {
  return &s.counts
}

// Check runs once per processing-loop iteration. Both restart paths reset
// the event baseline and the watchdog clock.
func (s *Supervisor) Check(now time.Time) {
  n := s.events.Load()

  if s.PreventiveEvents > 0 && n - s.baseline >= s.PreventiveEvents {
    log.Debug().
      Uint64("Events", n).
      Uint64("SinceBaseline", n - s.baseline).
      Msg("Preventive scan restart")

    s.restart()
    s.counts.Preventive.Add(1)
    s.baseline = s.events.Load()
    s.lastCheck = now

    return
  }

  if now.Sub(s.lastCheck) >= s.WatchdogTimeout {
    if n == s.baseline {
      log.Warn().
        Dur("Timeout", s.WatchdogTimeout).
        Msg("Watchdog: no radio events, restarting scan")

      s.restart()
      s.counts.Watchdog.Add(1)
    }

    s.baseline = s.events.Load()
    s.lastCheck = now
  }
}

// HandleScanEnded runs on the driver's event goroutine. A scan ending
// outside a self-initiated restart means the controller stopped on its
// own -- re-arm immediately with the same parameters.
func (s *Supervisor) HandleScanEnded() {
  if s.restarting.Load() {
    return
  }

  log.Warn().Msg("Scan stopped unexpectedly, restarting")

  s.counts.Recovered.Add(1)

  if err := s.driver.StartScan(); err != nil {
    log.Error().Err(err).Msg("Failed to re-arm scan after unexpected stop")
  }
}

// Shutdown stops the scan for good; the resulting scan-ended event will
// not trigger recovery.
func (s *Supervisor) Shutdown() {
  s.restarting.Store(true)

  if err := s.driver.StopScan(); err != nil {
    log.Error().Err(err).Msg("Failed to stop scan on shutdown")
  }
}

func (s *Supervisor) restart() {
  s.restarting.Store(true)
  defer s.restarting.Store(false)

  if err := s.driver.StopScan(); err != nil {
    log.Error().Err(err).Msg("Failed to stop scan for restart")
  }

  if err := s.driver.StartScan(); err != nil {
    log.Error().Err(err).Msg("Failed to re-arm scan after restart")
  }
}
