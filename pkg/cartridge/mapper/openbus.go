package mapper

// OpenBus is a no-op Mapper: every read returns 0, every write is
// discarded, and it never asserts an IRQ. It gives bus/PPU tests a
// cartridge-shaped stub without pulling in a real mapper's bank state.
type OpenBus struct {
	mirror MirrorMode
}

// NewOpenBus creates an OpenBus mapper with the given fixed mirroring mode.
func NewOpenBus(mirror MirrorMode) *OpenBus {
	return &OpenBus{mirror: mirror}
}

func (m *OpenBus) ReadPRG(addr uint16) uint8              { return 0 }
func (m *OpenBus) WritePRG(addr uint16, value uint8)      {}
func (m *OpenBus) ReadCHR(addr uint16) uint8              { return 0 }
func (m *OpenBus) WriteCHR(addr uint16, value uint8) bool { return false }
func (m *OpenBus) MirrorMode() MirrorMode                 { return m.mirror }
func (m *OpenBus) IRQLine() bool                          { return false }
func (m *OpenBus) NotifyA12()                             {}
