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

// Package source provides fixed-size block readers over images and devices.
package source

import (
	"fmt"
	"os"

	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/consts"
)

// BlockSize is the size of one block returned by ReadBlock.
const BlockSize = consts.BlockSize

// Source reads fixed size blocks by absolute block number.
type Source interface {
	// ReadBlock returns exactly one block or an error; partial reads are errors.
	ReadBlock(block uint64) ([]byte, error)
	// BlockCount returns number of blocks, or zero if unknown.
	BlockCount() uint64
	Close() error
}

// Open opens path as a block device if it is a device node, else as an image file.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.Mode()&os.ModeDevice != 0 {
		return OpenDevice(path)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%v is neither a device nor a regular file; %w", path, parttable.ErrNotSupported)
	}

	return OpenFile(path)
}

func readFailure(name string, block uint64, err error) error {
	return fmt.Errorf("%w; block %v of %v; %v", parttable.ErrReadFailure, block, name, err)
}
