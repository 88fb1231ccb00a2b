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
	"io"
	"math"
	"os"
)

var errBlockOutOfRange = errors.New("block number out of range")

// FileSource reads blocks from a regular file or an opened device file.
type FileSource struct {
	file       *os.File
	blockCount uint64
}

func newFileSource(file *os.File) (*FileSource, error) {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	return &FileSource{
		file:       file,
		blockCount: uint64(size) / BlockSize,
	}, nil
}

// OpenFile opens image file in read-only mode.
func OpenFile(path string) (*FileSource, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	source, err := newFileSource(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return source, nil
}

// Name returns file name.
func (f *FileSource) Name() string {
	return f.file.Name()
}

// ReadBlock reads one block.
func (f *FileSource) ReadBlock(block uint64) ([]byte, error) {
	if block > math.MaxInt64/BlockSize {
		return nil, readFailure(f.file.Name(), block, errBlockOutOfRange)
	}

	data := make([]byte, BlockSize)
	if _, err := f.file.ReadAt(data, int64(block)*BlockSize); err != nil {
		return nil, readFailure(f.file.Name(), block, err)
	}
	return data, nil
}

// BlockCount returns number of whole blocks in the file.
func (f *FileSource) BlockCount() uint64 {
	return f.blockCount
}

// Close closes the file.
func (f *FileSource) Close() error {
	return f.file.Close()
}
