package win32

// ACCEL is one entry of an accelerator table.
type ACCEL struct {
	FVirt uint8
	Key   uint16
	Cmd   uint16
}
