// Package metrics exports the observer's diagnostic counters to
// Prometheus. The counters themselves are plain atomics bumped on the hot
// paths; CounterFunc reads them lazily at scrape time so the capture
// context never touches the prometheus client.
package metrics

import (
  "github.com/prometheus/client_golang/prometheus"

  "github.com/robertof/go-pybricks-observer/observer"
)

func counterFunc(name, help string, labels prometheus.Labels, f func() float64) prometheus.CounterFunc {
  return prometheus.NewCounterFunc(prometheus.CounterOpts{
    Namespace:   "pybricks_observer",
    Name:        name,
    Help:        help,
    ConstLabels: labels,
  }, f)
}

// Register wires every diagnostic counter of the observer into reg.
func Register(reg prometheus.Registerer, o *observer.Observer) {
  counters := o.Counters()
  queue := o.Queue()
  restarts := o.Restarts()

  load := func(c interface{ Load() uint64 }) func() float64 {
    return func() float64 {
      return float64(c.Load())
    }
  }

  reg.MustRegister(
    counterFunc("ble_events_total",
      "Radio events seen by the capture handler.",
      nil, load(&counters.Events)),
    counterFunc("packets_queued_total",
      "Captures that passed the prefilter and entered the queue.",
      nil, load(&counters.Queued)),
    counterFunc("packets_processed_total",
      "Captures drained and examined by the processing loop.",
      nil, load(&counters.Processed)),
    counterFunc("lines_printed_total",
      "Decoded values that survived deduplication and were printed.",
      nil, load(&counters.Printed)),
    counterFunc("queue_dropped_total",
      "Captures discarded by the drop-oldest overflow policy.",
      nil, func() float64 {
        return float64(queue.Dropped())
      }),
    counterFunc("scan_restarts_total",
      "Scan restarts issued by the supervisor.",
      prometheus.Labels{"reason": "preventive"}, load(&restarts.Preventive)),
    counterFunc("scan_restarts_total",
      "Scan restarts issued by the supervisor.",
      prometheus.Labels{"reason": "watchdog"}, load(&restarts.Watchdog)),
    counterFunc("scan_restarts_total",
      "Scan restarts issued by the supervisor.",
      prometheus.Labels{"reason": "recovered"}, load(&restarts.Recovered)),
  )
}
