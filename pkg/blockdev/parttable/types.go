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

import "fmt"

// DOS partition type codes.
const (
	TypeEmpty         uint8 = 0x00
	TypeFAT12         uint8 = 0x01
	TypeFAT16Small    uint8 = 0x04
	TypeExtendedCHS   uint8 = 0x05
	TypeFAT16         uint8 = 0x06
	TypeNTFS          uint8 = 0x07
	TypeFAT32CHS      uint8 = 0x0B
	TypeFAT32LBA      uint8 = 0x0C
	TypeFAT16LBA      uint8 = 0x0E
	TypeExtendedLBA   uint8 = 0x0F
	TypeLinuxSwap     uint8 = 0x82
	TypeLinux         uint8 = 0x83
	TypeLinuxExtended uint8 = 0x85
	TypeLinuxLVM      uint8 = 0x8E
	TypeGPTProtective uint8 = 0xEE
	TypeEFISystem     uint8 = 0xEF
	TypeLinuxRAID     uint8 = 0xFD
)

var typeNames = map[uint8]string{
	TypeEmpty:         "Empty",
	TypeFAT12:         "FAT12",
	TypeFAT16Small:    "FAT16 <32M",
	TypeExtendedCHS:   "Extended",
	TypeFAT16:         "FAT16",
	TypeNTFS:          "HPFS/NTFS/exFAT",
	TypeFAT32CHS:      "W95 FAT32",
	TypeFAT32LBA:      "W95 FAT32 (LBA)",
	TypeFAT16LBA:      "W95 FAT16 (LBA)",
	TypeExtendedLBA:   "W95 Extended (LBA)",
	TypeLinuxSwap:     "Linux swap",
	TypeLinux:         "Linux",
	TypeLinuxExtended: "Linux extended",
	TypeLinuxLVM:      "Linux LVM",
	TypeGPTProtective: "GPT protective",
	TypeEFISystem:     "EFI System",
	TypeLinuxRAID:     "Linux raid autodetect",
}

// IsExtendedType returns whether partType starts an EBR chain.
// Only 0x05 and 0x0F are followed; 0x85 is named but treated as a data partition.
func IsExtendedType(partType uint8) bool {
	return partType == TypeExtendedCHS || partType == TypeExtendedLBA
}

// TypeName returns name of partType, or its hex code if unknown.
func TypeName(partType uint8) string {
	if name, found := typeNames[partType]; found {
		return name
	}
	return fmt.Sprintf("0x%02x", partType)
}
