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
)

// NewFakeSector returns boot sector bytes with given entries and a valid signature.
// Only meant for building test images.
func NewFakeSector(entries ...PartEntry) []byte {
	header := ClassicHeader{BootSignature: Signature}
	copy(header.PartitionEntries[:], entries)

	var buf bytes.Buffer
	// bytes.Buffer writes never fail
	binary.Write(&buf, binary.LittleEndian, &header)
	return buf.Bytes()
}

// NewFakeEntry returns entry of partType starting at firstLBA spanning numSectors.
func NewFakeEntry(partType uint8, firstLBA, numSectors uint32) PartEntry {
	return PartEntry{
		PartitionType: partType,
		FirstLBA:      firstLBA,
		NumSectors:    numSectors,
	}
}
