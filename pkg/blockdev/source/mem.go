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

package source

import (
	"errors"
	"fmt"
)

var errInjected = errors.New("injected read error")

// MemSource is a sparse in-memory block source. Unset blocks read as zeros.
// It is not safe for concurrent use.
type MemSource struct {
	blocks     map[uint64][]byte
	failures   map[uint64]struct{}
	blockCount uint64
	reads      int
}

// NewMemSource returns empty source of blockCount blocks; zero means unbounded.
func NewMemSource(blockCount uint64) *MemSource {
	return &MemSource{
		blocks:     map[uint64][]byte{},
		failures:   map[uint64]struct{}{},
		blockCount: blockCount,
	}
}

// SetBlock stores a copy of data, truncated or zero padded to BlockSize, at block.
func (m *MemSource) SetBlock(block uint64, data []byte) {
	buf := make([]byte, BlockSize)
	copy(buf, data)
	m.blocks[block] = buf
}

// FailBlock makes reads of block return an error.
func (m *MemSource) FailBlock(block uint64) {
	m.failures[block] = struct{}{}
}

// Reads returns number of ReadBlock calls made.
func (m *MemSource) Reads() int {
	return m.reads
}

// ReadBlock returns a copy of block.
func (m *MemSource) ReadBlock(block uint64) ([]byte, error) {
	m.reads++

	if _, found := m.failures[block]; found {
		return nil, readFailure("memory", block, errInjected)
	}
	if m.blockCount > 0 && block >= m.blockCount {
		return nil, readFailure("memory", block, fmt.Errorf("%w; %v blocks", errBlockOutOfRange, m.blockCount))
	}

	data := make([]byte, BlockSize)
	copy(data, m.blocks[block])
	return data, nil
}

// BlockCount returns configured block count.
func (m *MemSource) BlockCount() uint64 {
	return m.blockCount
}

// Close does nothing.
func (m *MemSource) Close() error {
	return nil
}
