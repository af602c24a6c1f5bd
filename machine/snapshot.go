package machine

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/smemsky/eforthpc/console"
	"github.com/smemsky/eforthpc/cpu"
	"github.com/smemsky/eforthpc/floppy"
)

const (
	snapshotMagic   = "EFPC"
	snapshotVersion = 1
)

// Snapshot is the full save-state of a Machine: CPU registers/flags/MMU
// state, main memory, and both peripherals' internal registers. It does
// not include the inserted floppy disk image — callers that want that
// persisted keep it alongside the snapshot themselves.
type Snapshot struct {
	CPU     cpu.State
	Memory  [cpu.MemorySize]uint8
	Console console.State
	Floppy  floppy.State
}

// TakeSnapshot captures the machine's complete state.
func TakeSnapshot(m *Machine) Snapshot {
	var mem [cpu.MemorySize]uint8
	for i := range mem {
		mem[i] = m.CPU.PeekMemory(uint16(i))
	}

	return Snapshot{
		CPU:     m.CPU.ExportState(),
		Memory:  mem,
		Console: m.Console.ExportState(),
		Floppy:  m.Floppy.ExportState(),
	}
}

// Restore replaces the machine's state with a previously taken snapshot.
func Restore(m *Machine, snap Snapshot) {
	for i, b := range snap.Memory {
		m.CPU.PokeMemory(uint16(i), b)
	}
	m.CPU.ImportState(snap.CPU)
	m.Console.ImportState(snap.Console)
	m.Floppy.ImportState(snap.Floppy)
}

// SaveSnapshotToFile writes a gzip-compressed snapshot to path, prefixed by
// a magic number and version so LoadSnapshotFromFile can reject anything
// else before trying to decode it.
func SaveSnapshotToFile(snap Snapshot, path string) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(snapshotMagic)
	if err := binary.Write(&out, binary.LittleEndian, uint32(snapshotVersion)); err != nil {
		return fmt.Errorf("writing snapshot version: %w", err)
	}

	gz := gzip.NewWriter(&out)
	if _, err := gz.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("compressing snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}

	return os.WriteFile(path, out.Bytes(), 0644)
}

// LoadSnapshotFromFile reads and decompresses a snapshot written by
// SaveSnapshotToFile.
func LoadSnapshotFromFile(path string) (Snapshot, error) {
	var snap Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	r := bytes.NewReader(data)

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return snap, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return snap, fmt.Errorf("invalid snapshot magic: %q", string(magic))
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return snap, fmt.Errorf("reading version: %w", err)
	}
	if version != snapshotVersion {
		return snap, fmt.Errorf("unsupported snapshot version: %d", version)
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return snap, fmt.Errorf("opening gzip reader: %w", err)
	}
	defer gz.Close()

	if err := gob.NewDecoder(gz).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}
