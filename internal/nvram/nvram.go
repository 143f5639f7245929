// Package nvram memory-maps a fixed-size save file for a cartridge's
// battery-backed PRG-RAM, keyed by the ROM's SHA-1 hash.
package nvram

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	mmap "github.com/edsrzf/mmap-go"
)

// Store is a memory-mapped, fixed-size save file. Writes through Write
// land directly in the mapped pages; the OS flushes them to disk.
type Store struct {
	file *os.File
	data mmap.MMap
	size int
}

// Open creates (if missing) and memory-maps the save file for the ROM
// identified by sha1, sized to size bytes, under <dir>/nvram/<sha1>.sav.
func Open(dir string, sha1 [20]byte, size int) (*Store, error) {
	if size <= 0 {
		return nil, fmt.Errorf("nvram: invalid size %d", size)
	}

	nvramDir := filepath.Join(dir, "nvram")
	if err := os.MkdirAll(nvramDir, 0o755); err != nil {
		return nil, fmt.Errorf("nvram: create directory: %w", err)
	}

	path := filepath.Join(nvramDir, hex.EncodeToString(sha1[:])+".sav")
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("nvram: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("nvram: stat %s: %w", path, err)
	}
	if info.Size() < int64(size) {
		if err := file.Truncate(int64(size)); err != nil {
			file.Close()
			return nil, fmt.Errorf("nvram: resize %s: %w", path, err)
		}
	}

	data, err := mmap.Map(file, mmap.RDWR, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("nvram: map %s: %w", path, err)
	}

	return &Store{file: file, data: data, size: size}, nil
}

// Read returns the byte at offset. Out-of-range offsets return 0.
func (s *Store) Read(offset int) uint8 {
	if offset < 0 || offset >= len(s.data) {
		return 0
	}
	return s.data[offset]
}

// Write stores value at offset, immediately visible in the mapped file.
func (s *Store) Write(offset int, value uint8) {
	if offset < 0 || offset >= len(s.data) {
		return
	}
	s.data[offset] = value
}

// Bytes returns the mapped region directly, for bulk cartridge access.
func (s *Store) Bytes() []byte {
	return s.data
}

// Close unmaps the file and closes the descriptor; the OS persists the
// pages already written.
func (s *Store) Close() error {
	if err := s.data.Unmap(); err != nil {
		s.file.Close()
		return fmt.Errorf("nvram: unmap: %w", err)
	}
	return s.file.Close()
}
