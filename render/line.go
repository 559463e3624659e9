// Package render formats the observer's terminal output: the column
// header, one line per accepted value, and the hub address coloring.
package render

import (
  "fmt"
  "io"
  "strings"
  "time"

  "github.com/charmbracelet/lipgloss"
  "github.com/robertof/go-pybricks-observer/hub"
)

// Renderer writes data lines for accepted decoded values. It is owned by
// the processing loop.
type Renderer struct {
  palette []lipgloss.Style
  start   time.Time
  out     io.Writer
}

func New(theme Theme, start time.Time, out io.Writer) *Renderer {
  return &Renderer{
    palette: Palette(theme),
    start:   start,
    out:     out,
  }
}

// Colors returns the number of palette slots, which the registry cycles
// through when assigning hubs.
func (r *Renderer) Colors() int {
  return len(r.palette)
}

// Header writes the column header for the data lines.
func (r *Renderer) Header() {
  fmt.Fprintf(r.out, "%8s  %-17s [T] %-12s %3s %-18s %s\n",
    "secs", "Address", "Hub name", "ch", "Signal", "Value")
  fmt.Fprintln(r.out, strings.Repeat("-", 70))
}

// Line writes one accepted decoded value: elapsed seconds, colored hub
// address, tag letter, optional name, channel, smoothed signal with its
// label, and the value text.
func (r *Renderer) Line(h *hub.Hub, ema float64, channel uint8, decoded string) {
  elapsed := int(time.Since(r.start) / time.Second)
  addr := r.palette[h.ColorIndex % len(r.palette)].Render(h.AddrText)

  name := ""
  if h.Name != "" {
    name = " " + h.Name
  }

  signal := fmt.Sprintf("%s %4ddBm", SignalLabel(ema), int(ema))

  fmt.Fprintf(r.out, "%8ds %s [%c]%-12s %3d %s %s\n",
    elapsed, addr, h.Tag, name, channel, signal, decoded)
}
