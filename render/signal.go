package render

// Signal strength labels, tuned for indoor room-scale BLE. The labels are
// padded to a fixed width so the value column stays aligned.
var signalLevels = []struct {
  min   float64
  label string
}{
  {-55, "Very close"}, // same table
  {-70, "Nearby    "}, // same room
  {-80, "Far       "}, // across room
}

const signalWeak = "Weak      " // below all thresholds

// SignalLabel maps a smoothed RSSI (dBm) to a qualitative label.
func SignalLabel(dbm float64) string {
  for _, l := range signalLevels {
    if dbm >= l.min {
      return l.label
    }
  }

  return signalWeak
}
