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
	"go.uber.org/multierr"
)

// DeviceSource reads blocks from a block device node.
type DeviceSource struct {
	*FileSource
	logicalBlockSize int
	detach           func() error
}

// LogicalBlockSize returns logical sector size reported by the device.
func (d *DeviceSource) LogicalBlockSize() int {
	return d.logicalBlockSize
}

// Close closes the device and detaches it if it was attached by this package.
func (d *DeviceSource) Close() error {
	err := d.FileSource.Close()
	if d.detach != nil {
		err = multierr.Append(err, d.detach())
	}
	return err
}
