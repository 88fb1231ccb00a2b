// This file is part of MinIO PartScan
// Copyright (c) 2023 MinIO, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package mbr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/blockdev/source"
)

const (
	// Signature is the boot sector signature; bytes 0x55 0xAA at offset 510.
	Signature = uint16(0xAA55)

	// EntryCount is number of partition entries in a boot sector.
	EntryCount = 4

	protectiveMaxSectors = uint32(0xFFFFFFFF)
	bootableStatus       = uint8(0x80)
)

var errShortSector = errors.New("short boot sector")

// CHS denotes Cylinder-Head-Sector address.
type CHS struct {
	Cylinder uint8 // 1 byte.
	Head     uint8 // 1 byte.
	Sector   uint8 // 1 byte.
}

// PartEntry denotes partition entry.
type PartEntry struct {
	Status        uint8  // 1 byte
	FirstCHS      CHS    // 3 bytes.
	PartitionType uint8  // 1 byte.
	LastCHS       CHS    // 3 bytes.
	FirstLBA      uint32 // 4 bytes.
	NumSectors    uint32 // 4 bytes.
}

// IsPopulated returns whether the entry points to a partition.
func (entry PartEntry) IsPopulated() bool {
	return entry.FirstLBA != 0
}

// IsExtended returns whether the entry points to an EBR.
func (entry PartEntry) IsExtended() bool {
	return parttable.IsExtendedType(entry.PartitionType)
}

// IsBootable returns whether the boot indicator is set.
func (entry PartEntry) IsBootable() bool {
	return entry.Status == bootableStatus
}

// ClassicHeader denotes classical generic MBR header.
type ClassicHeader struct {
	BootstrapCode    [446]byte
	PartitionEntries [EntryCount]PartEntry // 4 x 16 bytes.
	BootSignature    uint16                // 2 bytes.
}

// Table is one decoded boot sector, either an MBR or an EBR.
type Table struct {
	header      ClassicHeader
	blockOffset uint64
	blockCount  uint64
}

// Parse decodes boot sector data read at blockOffset of a device of blockCount blocks.
func Parse(data []byte, blockOffset, blockCount uint64) (*Table, error) {
	if len(data) < source.BlockSize {
		return nil, fmt.Errorf("%w; %v bytes", errShortSector, len(data))
	}

	table := &Table{
		blockOffset: blockOffset,
		blockCount:  blockCount,
	}
	if err := binary.Read(bytes.NewReader(data[:source.BlockSize]), binary.LittleEndian, &table.header); err != nil {
		return nil, err
	}
	return table, nil
}

// TryToInitialize reads and decodes boot sector at blockOffset. The
// signature is not checked; use IsValid.
func TryToInitialize(src source.Source, blockOffset uint64) (*Table, error) {
	data, err := src.ReadBlock(blockOffset)
	if err != nil {
		if !errors.Is(err, parttable.ErrReadFailure) {
			err = fmt.Errorf("%w; block %v; %v", parttable.ErrReadFailure, blockOffset, err)
		}
		return nil, err
	}

	return Parse(data, blockOffset, src.BlockCount())
}

// BlockOffset returns block number this sector was read from.
func (t *Table) BlockOffset() uint64 {
	return t.blockOffset
}

// Signature returns boot sector signature.
func (t *Table) Signature() uint16 {
	return t.header.BootSignature
}

// Entries returns raw partition entries.
func (t *Table) Entries() [EntryCount]PartEntry {
	return t.header.PartitionEntries
}

// IsValid returns whether boot sector signature matches.
func (t *Table) IsValid() bool {
	return t.header.BootSignature == Signature
}

// PartitionsCount returns number of populated entries.
func (t *Table) PartitionsCount() (count int) {
	for _, entry := range t.header.PartitionEntries {
		if entry.IsPopulated() {
			count++
		}
	}
	return count
}

// IsProtectiveMBR returns whether this sector is a GPT protective MBR,
// i.e. a single 0xEE entry covering the device from block 1 to its end.
func (t *Table) IsProtectiveMBR() bool {
	if t.PartitionsCount() != 1 {
		return false
	}

	var entry PartEntry
	for _, entry = range t.header.PartitionEntries {
		if entry.IsPopulated() {
			break
		}
	}

	if entry.PartitionType != parttable.TypeGPTProtective || entry.FirstLBA != 1 {
		return false
	}

	if entry.NumSectors == protectiveMaxSectors || t.blockCount == 0 {
		return true
	}

	expected := t.blockCount - 1
	if expected > uint64(protectiveMaxSectors) {
		expected = uint64(protectiveMaxSectors)
	}
	return uint64(entry.NumSectors) == expected
}

// Partition returns partition of entry index with absolute block addresses.
func (t *Table) Partition(index int) (parttable.Partition, bool) {
	if index < 0 || index >= EntryCount {
		return parttable.Partition{}, false
	}

	entry := t.header.PartitionEntries[index]
	if !entry.IsPopulated() {
		return parttable.Partition{}, false
	}

	partition := parttable.NewPartition(uint64(entry.FirstLBA), uint64(entry.NumSectors), entry.PartitionType)
	return partition.Offset(t.blockOffset), true
}

// ContainsEBR returns whether any entry after the first points to an EBR.
func (t *Table) ContainsEBR() bool {
	for _, entry := range t.header.PartitionEntries[1:] {
		if entry.IsExtended() {
			return true
		}
	}
	return false
}
