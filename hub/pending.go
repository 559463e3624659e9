package hub

// PendingNames holds names learned from scan responses for addresses that
// have not yet produced their first decoded Pybricks packet. An entry is
// promoted (and removed) the moment that first packet is processed;
// entries never expire otherwise.
type PendingNames struct {
  names map[[6]byte]string
}

func NewPendingNames() *PendingNames {
  return &PendingNames{
    names: make(map[[6]byte]string),
  }
}

// Put remembers a name for a not-yet-registered address. A later scan
// response for the same address replaces the held name; write-once
// semantics only start once the name lands on a Hub.
func (p *PendingNames) Put(addr [6]byte, name string) {
  if name == "" {
    return
  }

  p.names[addr] = name
}

// Promote removes and returns the held name for addr, if any.
func (p *PendingNames) Promote(addr [6]byte) (string, bool) {
  name, ok := p.names[addr]

  if ok {
    delete(p.names, addr)
  }

  return name, ok
}

func (p *PendingNames) Len() int {
  return len(p.names)
}
