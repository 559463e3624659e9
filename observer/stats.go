package observer

import (
  "fmt"
  "time"

  "github.com/rs/zerolog/log"

  "github.com/robertof/go-pybricks-observer/utils"
)

// printStats writes the end-of-session summary to the data output.
func (o *Observer) printStats() {
  elapsed := time.Since(o.start)

  hours := int(elapsed / time.Hour)
  mins := int(elapsed / time.Minute) % 60
  secs := int(elapsed / time.Second) % 60

  events := o.counters.Events.Load()
  queued := o.counters.Queued.Load()
  processed := o.counters.Processed.Load()
  printed := o.counters.Printed.Load()
  drops := o.queue.Dropped()

  pybricksShare := uint64(0)
  if events > 0 {
    pybricksShare = 100 * queued / events
  }

  fmt.Fprintf(o.out, "\nScan stopped after %02d:%02d:%02d\n", hours, mins, secs)
  fmt.Fprintf(o.out, "  BLE events received : %8d\n", events)
  fmt.Fprintf(o.out, "  Pybricks packets    : %8d   (%d%% of events)\n", queued, pybricksShare)
  fmt.Fprintf(o.out, "  Packets processed   : %8d\n", processed)
  fmt.Fprintf(o.out, "  Deduped (suppressed): %8d\n", processed - printed)
  fmt.Fprintf(o.out, "  Lines printed       : %8d\n", printed)

  lost := "  (none)"
  if drops > 0 {
    lost = "  *** packets lost!"
  }

  fmt.Fprintf(o.out, "  Queue drops         : %8d%s\n", drops, lost)
  fmt.Fprintf(o.out, "  Hubs seen           : %8d\n", o.registry.Seen())

  for _, h := range o.registry.All() {
    label := ""
    if h.Name != "" {
      label = fmt.Sprintf(" (%s)", h.Name)
    }

    fmt.Fprintf(o.out, "    [%c] %s%s\n", h.Tag, h.AddrText, label)
  }

  log.Debug().
    Array("Hubs", utils.ToZeroLogArray(o.registry.All())).
    Msg("Session finished")
}
