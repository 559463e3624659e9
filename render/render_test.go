package render_test

import (
  "bytes"
  "strings"
  "testing"
  "time"

  "github.com/robertof/go-pybricks-observer/hub"
  "github.com/robertof/go-pybricks-observer/render"
)

func TestSignalLabel(t *testing.T) {
  cases := []struct {
    dbm  float64
    want string
  }{
    {-40, "Very close"},
    {-55, "Very close"},
    {-56, "Nearby    "},
    {-70, "Nearby    "},
    {-75, "Far       "},
    {-80, "Far       "},
    {-90, "Weak      "},
  }

  for _, c := range cases {
    if got := render.SignalLabel(c.dbm); got != c.want {
      t.Errorf("SignalLabel(%v): got %q, wanted %q", c.dbm, got, c.want)
    }
  }
}

func TestPalette_ThemesDiffer(t *testing.T) {
  dark := render.Palette(render.ThemeDark)
  light := render.Palette(render.ThemeLight)

  if len(dark) != 10 || len(light) != 10 {
    t.Fatalf("palette sizes: got %d/%d, wanted 10/10", len(dark), len(light))
  }
}

func TestRenderer_Line(t *testing.T) {
  var buf bytes.Buffer

  r := render.New(render.ThemeLight, time.Now(), &buf)

  reg := hub.NewRegistry(r.Colors())
  h := reg.Resolve([6]byte{0xFF, 0xEE, 0xDD, 0xCC, 0xBB, 0xAA})
  h.SetNameOnce("technic")

  r.Line(h, -62.5, 5, "42")

  line := buf.String()

  for _, want := range []string{"AA:BB:CC:DD:EE:FF", "[A]", "technic", "Nearby", "-62dBm", "42", "  5 "} {
    if !strings.Contains(line, want) {
      t.Errorf("Line output %q does not contain %q", line, want)
    }
  }
}

func TestRenderer_Header(t *testing.T) {
  var buf bytes.Buffer

  render.New(render.ThemeDark, time.Now(), &buf).Header()

  out := buf.String()

  for _, want := range []string{"secs", "Address", "Hub name", "Signal", "Value"} {
    if !strings.Contains(out, want) {
      t.Errorf("Header output %q does not contain %q", out, want)
    }
  }
}
