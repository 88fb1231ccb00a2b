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

package parttable

import (
	"encoding/binary"
	"errors"
	"fmt"

	simd "github.com/minio/sha256-simd"
)

var (
	// ErrInvalidFormat denotes boot sector signature mismatch error.
	ErrInvalidFormat = errors.New("invalid partition table format")

	// ErrNotSupported denotes a partition table scheme this reader does not handle.
	ErrNotSupported = errors.New("partition table scheme not supported")

	// ErrReadFailure denotes block read error.
	ErrReadFailure = errors.New("unable to read block")

	// ErrCorruption denotes on-disk partition table corruption.
	ErrCorruption = errors.New("partition table corrupted")

	// ErrCancelled denotes canceled by context error.
	ErrCancelled = errors.New("canceled by context")
)

// IsRecoverable returns whether err is an expected outcome a caller may
// handle by trying another scheme, as opposed to a read or corruption error.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrNotSupported)
}

// Partition denotes a resolved partition with absolute block addresses.
type Partition struct {
	StartBlock uint64 `json:"startBlock"`
	EndBlock   uint64 `json:"endBlock"` // inclusive.
	Type       uint8  `json:"type"`
}

// NewPartition returns partition starting at start and spanning length blocks.
func NewPartition(start, length uint64, partType uint8) Partition {
	return Partition{
		StartBlock: start,
		EndBlock:   start + length - 1,
		Type:       partType,
	}
}

// Offset returns a copy of the partition moved by offset blocks.
func (p Partition) Offset(offset uint64) Partition {
	return Partition{
		StartBlock: p.StartBlock + offset,
		EndBlock:   p.EndBlock + offset,
		Type:       p.Type,
	}
}

// Blocks returns number of blocks covered by the partition.
func (p Partition) Blocks() uint64 {
	if p.EndBlock < p.StartBlock {
		return 0
	}
	return p.EndBlock - p.StartBlock + 1
}

// Size returns partition size in bytes.
func (p Partition) Size(blockSize uint64) uint64 {
	return p.Blocks() * blockSize
}

// IsExtended returns whether the partition type is an EBR chain container.
func (p Partition) IsExtended() bool {
	return IsExtendedType(p.Type)
}

// TypeName returns human readable name of the partition type.
func (p Partition) TypeName() string {
	return TypeName(p.Type)
}

func (p Partition) String() string {
	return fmt.Sprintf("%v-%v (0x%02x)", p.StartBlock, p.EndBlock, p.Type)
}

// Table is an immutable ordered list of partitions.
type Table struct {
	partitions []Partition
}

// New returns a table holding a copy of partitions.
func New(partitions []Partition) *Table {
	return &Table{partitions: append([]Partition{}, partitions...)}
}

// Partitions returns list of partitions in table order.
func (t *Table) Partitions() []Partition {
	return append([]Partition{}, t.partitions...)
}

// Len returns number of partitions.
func (t *Table) Len() int {
	return len(t.partitions)
}

// Fingerprint returns a stable digest of the partition list.
func (t *Table) Fingerprint() string {
	data := make([]byte, len(t.partitions)*17)
	for i, p := range t.partitions {
		entry := data[i*17 : (i+1)*17]
		binary.LittleEndian.PutUint64(entry[0:8], p.StartBlock)
		binary.LittleEndian.PutUint64(entry[8:16], p.EndBlock)
		entry[16] = p.Type
	}
	return fmt.Sprintf("%x", simd.Sum256(data))
}
