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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/partscan/pkg/blockdev/parttable"
)

func writeImage(t *testing.T, size int) string {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i / BlockSize)
	}
	image := filepath.Join(t.TempDir(), "disk.img")
	if err := os.WriteFile(image, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return image
}

func TestFileSource(t *testing.T) {
	image := writeImage(t, 4*BlockSize+100)

	source, err := Open(image)
	if err != nil {
		t.Fatalf("unable to open %v: %v", image, err)
	}
	defer source.Close()

	if _, ok := source.(*FileSource); !ok {
		t.Fatalf("expected *FileSource, got %T", source)
	}

	if count := source.BlockCount(); count != 4 {
		t.Fatalf("block count: expected: 4, got: %v", count)
	}

	for block := uint64(0); block < 4; block++ {
		data, err := source.ReadBlock(block)
		if err != nil {
			t.Fatalf("block %v: %v", block, err)
		}
		if !bytes.Equal(data, bytes.Repeat([]byte{byte(block)}, BlockSize)) {
			t.Fatalf("block %v: unexpected content", block)
		}
	}

	testCases := []uint64{4, 5, 1 << 60}
	for i, block := range testCases {
		if _, err := source.ReadBlock(block); !errors.Is(err, parttable.ErrReadFailure) {
			t.Fatalf("case %v: expected: %v, got: %v", i+1, parttable.ErrReadFailure, err)
		}
	}
}

func TestOpenNotFound(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.img")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected: %v, got: %v", os.ErrNotExist, err)
	}
}

func TestOpenDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); !errors.Is(err, parttable.ErrNotSupported) {
		t.Fatalf("expected: %v, got: %v", parttable.ErrNotSupported, err)
	}
}

func TestMemSource(t *testing.T) {
	source := NewMemSource(8)
	source.SetBlock(2, []byte{0x55, 0xAA})
	source.FailBlock(3)

	data, err := source.ReadBlock(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != BlockSize || data[0] != 0x55 || data[1] != 0xAA || data[2] != 0 {
		t.Fatalf("unexpected block content %v", data[:4])
	}

	data[0] = 0
	if data, _ = source.ReadBlock(2); data[0] != 0x55 {
		t.Fatalf("source modified through returned block")
	}

	if data, err = source.ReadBlock(5); err != nil || !bytes.Equal(data, make([]byte, BlockSize)) {
		t.Fatalf("expected zero block, got err %v", err)
	}

	for _, block := range []uint64{3, 8} {
		if _, err := source.ReadBlock(block); !errors.Is(err, parttable.ErrReadFailure) {
			t.Fatalf("block %v: expected: %v, got: %v", block, parttable.ErrReadFailure, err)
		}
	}

	if source.Reads() != 5 {
		t.Fatalf("reads: expected: 5, got: %v", source.Reads())
	}
}

func TestThrottledSource(t *testing.T) {
	mem := NewMemSource(4)
	mem.SetBlock(1, []byte{1})

	source := NewThrottledSource(context.Background(), mem, 1000, 4)
	data, err := source.ReadBlock(1)
	if err != nil || data[0] != 1 {
		t.Fatalf("unexpected read result: %v, %v", data[:1], err)
	}
	if source.BlockCount() != 4 {
		t.Fatalf("block count: expected: 4, got: %v", source.BlockCount())
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	cancelFunc()
	source = NewThrottledSource(ctx, mem, 1, 1)
	if _, err := source.ReadBlock(1); !errors.Is(err, parttable.ErrReadFailure) {
		t.Fatalf("expected: %v, got: %v", parttable.ErrReadFailure, err)
	}
}
