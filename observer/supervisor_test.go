package observer

import (
  "sync"
  "sync/atomic"
  "testing"
  "time"
)

// fakeDriver records the stop/start commands the supervisor issues.
type fakeDriver struct {
  mu     sync.Mutex
  stops  int
  starts int
}

func (d *fakeDriver) StartScan() error {
  d.mu.Lock()
  d.starts += 1
  d.mu.Unlock()

  return nil
}

func (d *fakeDriver) StopScan() error {
  d.mu.Lock()
  d.stops += 1
  d.mu.Unlock()

  return nil
}

func (d *fakeDriver) counts() (stops, starts int) {
  d.mu.Lock()
  defer d.mu.Unlock()

  return d.stops, d.starts
}

func TestSupervisor_PreventiveRestart(t *testing.T) {
  var events atomic.Uint64

  driver := &fakeDriver{}

  s := NewSupervisor(driver, &events)
  s.PreventiveEvents = 100
  s.WatchdogTimeout = time.Hour // keep the watchdog out of the way

  now := time.Now()

  // below the threshold: nothing happens
  events.Store(99)
  s.Check(now)

  if stops, starts := driver.counts(); stops != 0 || starts != 0 {
    t.Fatalf("restart below threshold: %d stops, %d starts", stops, starts)
  }

  // crossing the threshold fires exactly one stop+start
  events.Store(100)
  s.Check(now)

  if stops, starts := driver.counts(); stops != 1 || starts != 1 {
    t.Fatalf("restart at threshold: %d stops, %d starts, wanted 1/1", stops, starts)
  }

  if s.Counts().Preventive.Load() != 1 {
    t.Fatalf("preventive count: got %d, wanted 1", s.Counts().Preventive.Load())
  }

  // the baseline was reset: the same counter value does not re-fire
  s.Check(now)

  if stops, _ := driver.counts(); stops != 1 {
    t.Fatalf("baseline not reset: %d stops", stops)
  }

  // the next full threshold's worth of events fires again
  events.Store(200)
  s.Check(now)

  if stops, _ := driver.counts(); stops != 2 {
    t.Fatalf("second crossing: %d stops, wanted 2", stops)
  }
}

func TestSupervisor_Watchdog(t *testing.T) {
  var events atomic.Uint64

  driver := &fakeDriver{}

  s := NewSupervisor(driver, &events)
  s.PreventiveEvents = 0 // disabled
  s.WatchdogTimeout = 10 * time.Second

  start := time.Now()
  s.lastCheck = start

  // events keep flowing: the watchdog stays quiet
  events.Store(5)
  s.Check(start.Add(11 * time.Second))

  if stops, _ := driver.counts(); stops != 0 {
    t.Fatalf("watchdog fired despite events: %d stops", stops)
  }

  // no events for a full timeout window: restart
  s.Check(start.Add(22 * time.Second))

  if stops, starts := driver.counts(); stops != 1 || starts != 1 {
    t.Fatalf("stalled watchdog: %d stops, %d starts, wanted 1/1", stops, starts)
  }

  if s.Counts().Watchdog.Load() != 1 {
    t.Fatalf("watchdog count: got %d, wanted 1", s.Counts().Watchdog.Load())
  }
}

func TestSupervisor_UnexpectedStopRecovery(t *testing.T) {
  var events atomic.Uint64

  driver := &fakeDriver{}
  s := NewSupervisor(driver, &events)

  // not self-initiated: re-arm
  s.HandleScanEnded()

  if _, starts := driver.counts(); starts != 1 {
    t.Fatalf("unexpected stop: %d starts, wanted 1", starts)
  }

  if s.Counts().Recovered.Load() != 1 {
    t.Fatalf("recovered count: got %d, wanted 1", s.Counts().Recovered.Load())
  }

  // self-initiated: the guard suppresses recovery
  s.restarting.Store(true)
  s.HandleScanEnded()

  if _, starts := driver.counts(); starts != 1 {
    t.Fatalf("guarded stop still re-armed: %d starts", starts)
  }
}

func TestSupervisor_ShutdownSuppressesRecovery(t *testing.T) {
  var events atomic.Uint64

  driver := &fakeDriver{}
  s := NewSupervisor(driver, &events)

  s.Shutdown()

  if stops, _ := driver.counts(); stops != 1 {
    t.Fatalf("shutdown: %d stops, wanted 1", stops)
  }

  // the scan-ended event caused by the shutdown must not re-arm
  s.HandleScanEnded()

  if _, starts := driver.counts(); starts != 0 {
    t.Fatalf("post-shutdown scan end re-armed: %d starts", starts)
  }
}
