package console

// OPEN_BUS is what a read returns when nothing drives the data bus.
const OPEN_BUS = 0xFF

// Device is a set of memory mapped registers, eg: the PPU at
// $2000-$2007 or the APU and joypads at $4000-$401F. Addresses passed
// in are full cpu addresses with any mirroring already folded away.
type Device interface {
	ReadReg(addr uint16) uint8
	WriteReg(addr uint16, val uint8)
}

// RegPeeker is implemented by devices whose registers can be read
// without side effects (clearing latches, advancing shift registers).
// Devices that don't implement it read as open bus when peeked.
type RegPeeker interface {
	PeekReg(addr uint16) uint8
}

func readReg(d Device, addr uint16) uint8 {
	if d == nil {
		return OPEN_BUS
	}
	return d.ReadReg(addr)
}

func writeReg(d Device, addr uint16, val uint8) {
	if d != nil {
		d.WriteReg(addr, val)
	}
}

func peekReg(d Device, addr uint16) uint8 {
	if p, ok := d.(RegPeeker); ok {
		return p.PeekReg(addr)
	}
	return OPEN_BUS
}
