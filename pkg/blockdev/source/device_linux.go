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

//go:build linux

package source

import (
	"os"

	"golang.org/x/sys/unix"
	"k8s.io/klog/v2"
)

// OpenDevice opens block device in read-only mode.
func OpenDevice(device string) (*DeviceSource, error) {
	devFile, err := os.OpenFile(device, os.O_RDONLY, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	logicalBlockSize, err := unix.IoctlGetInt(int(devFile.Fd()), unix.BLKSSZGET)
	if err != nil {
		klog.Errorf("could not obtain logical block size for device: %s", device)
		devFile.Close()
		return nil, err
	}
	if logicalBlockSize != BlockSize {
		klog.V(3).InfoS("logical block size differs from partition table block size", "device", device, "logicalBlockSize", logicalBlockSize, "blockSize", BlockSize)
	}

	fileSource, err := newFileSource(devFile)
	if err != nil {
		devFile.Close()
		return nil, err
	}

	return &DeviceSource{
		FileSource:       fileSource,
		logicalBlockSize: logicalBlockSize,
	}, nil
}
