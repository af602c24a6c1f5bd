package floppy

import "testing"

func setSector(d *Drive, n uint16) {
	d.Write(sectorLowOffset, uint8(n))
	d.Write(sectorHighOffset, uint8(n>>8))
}

func TestSectorRoundTrip(t *testing.T) {
	d := NewDrive(2)
	d.SetDisk(Medium{Name: "boot"})

	payload := make([]uint8, SectorSize)
	for i := range payload {
		payload[i] = uint8(i * 3)
	}

	for _, n := range []uint16{0, 1, 2048} {
		for i, b := range payload {
			d.Write(uint8(i), b)
		}
		setSector(d, n)
		d.Write(commandOffset, cmdWriteSector)
		if d.Read(commandOffset) != cmdIdle {
			t.Fatalf("write-sector(%d) command = %#x, want idle", n, d.Read(commandOffset))
		}

		// Clear the buffer so the read-back below can't be vacuously correct.
		for i := range payload {
			d.Write(uint8(i), 0)
		}

		setSector(d, n)
		d.Write(commandOffset, cmdReadSector)
		if d.Read(commandOffset) != cmdIdle {
			t.Fatalf("read-sector(%d) command = %#x, want idle", n, d.Read(commandOffset))
		}

		for i, want := range payload {
			if got := d.Read(uint8(i)); got != want {
				t.Fatalf("sector %d byte %d = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestSectorOutOfRange(t *testing.T) {
	d := NewDrive(2)
	d.SetDisk(Medium{})
	setSector(d, 2049)
	d.Write(commandOffset, cmdReadSector)
	if d.Read(commandOffset) != statusError {
		t.Errorf("read-sector(2049) command = %#x, want error status", d.Read(commandOffset))
	}
}

func TestNameCommands(t *testing.T) {
	d := NewDrive(2)
	d.SetDisk(Medium{Name: "hello"})

	d.Write(commandOffset, cmdReadName)
	for i, c := range "hello" {
		if got := d.Read(uint8(i)); got != uint8(c) {
			t.Errorf("readName byte %d = %v, want %q", i, got, c)
		}
	}
	if d.Read(5) != 0 {
		t.Errorf("readName did not zero the remainder of the buffer")
	}

	for i := range d.dataBuffer {
		d.Write(uint8(i), 0)
	}
	copy(d.dataBuffer[:], "newname")
	d.Write(commandOffset, cmdWriteName)
	if d.Disk().Name != "newname" {
		t.Errorf("Disk().Name = %q, want %q", d.Disk().Name, "newname")
	}
}

func TestReadSerial(t *testing.T) {
	d := NewDrive(2)
	d.SetDisk(Medium{})
	d.Write(commandOffset, cmdReadSerial)
	for i, c := range serial {
		if got := d.Read(uint8(i)); got != uint8(c) {
			t.Errorf("readSerial byte %d = %v, want %q", i, got, c)
		}
	}
}

func TestEjectedDriveFailsEveryCommand(t *testing.T) {
	d := NewDrive(2)
	d.SetDisk(Medium{Name: "x"})
	d.Eject()

	d.Write(commandOffset, cmdReadSerial)
	if d.Read(commandOffset) != statusError {
		t.Errorf("command on ejected drive = %#x, want error status", d.Read(commandOffset))
	}
}

func TestUnknownCommand(t *testing.T) {
	d := NewDrive(2)
	d.SetDisk(Medium{})
	d.Write(commandOffset, 9)
	if d.Read(commandOffset) != statusError {
		t.Errorf("unknown command = %#x, want error status", d.Read(commandOffset))
	}
}
