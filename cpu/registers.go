package cpu

// Registers holds the full visible register file. A, X, Y, D, SP, PC, R and I
// are 16-bit fields; the M and X mode flags govern which half of a register
// participates in a given operation, and mode transitions also truncate:
// when FlagM becomes set A's high byte moves into B and A keeps only its low
// byte, and when FlagX is set the high bytes of X and Y are cleared. B is
// the 8-bit shadow of A's high byte, live only while FlagM is set.
//
// Exported so disassembly, snapshotting and tests can inspect it directly.
type Registers struct {
	A uint16
	B uint8
	X uint16
	Y uint16
	D uint16

	SP uint16
	PC uint16
	R  uint16
	I  uint16
}
