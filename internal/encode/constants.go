package encode

// Opcode field values, placed in bits 15..12 of every real instruction word.
const (
	opADD  uint16 = 0x1
	opAND  uint16 = 0x5
	opBR   uint16 = 0x0
	opJMP  uint16 = 0xC
	opJSR  uint16 = 0x4
	opLD   uint16 = 0x2
	opLDI  uint16 = 0xA
	opLDR  uint16 = 0x6
	opLEA  uint16 = 0xE
	opNOT  uint16 = 0x9
	opRTI  uint16 = 0x8
	opST   uint16 = 0x3
	opSTI  uint16 = 0xB
	opSTR  uint16 = 0x7
	opTRAP uint16 = 0xF
)

// Canonical trapvect8 values for the named traps.
const (
	trapGETC  uint16 = 0x20
	trapOUT   uint16 = 0x21
	trapPUTS  uint16 = 0x22
	trapIN    uint16 = 0x23
	trapPUTSP uint16 = 0x24
	trapHALT  uint16 = 0x25
)

// nzp condition masks, placed in bits 11..9 of a BR instruction.
const (
	nzpN   uint16 = 0b100
	nzpZ   uint16 = 0b010
	nzpP   uint16 = 0b001
	nzpZP  uint16 = 0b011
	nzpNP  uint16 = 0b101
	nzpNZ  uint16 = 0b110
	nzpNZP uint16 = 0b111
)

const (
	opcodeShift = 12
)
