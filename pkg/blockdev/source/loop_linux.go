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
	"fmt"

	"gopkg.in/freddierice/go-losetup.v1"
	"k8s.io/klog/v2"
)

// AttachImage attaches image read-only to a free loop device and opens it.
// Closing the returned source detaches the loop device.
func AttachImage(image string) (*DeviceSource, error) {
	loopDevice, err := losetup.Attach(image, 0, true)
	if err != nil {
		return nil, fmt.Errorf("unable to attach %v to loop device; %w", image, err)
	}

	source, err := OpenDevice(loopDevice.Path())
	if err != nil {
		if derr := loopDevice.Detach(); derr != nil {
			klog.ErrorS(derr, "unable to detach loop device", "device", loopDevice.Path())
		}
		return nil, err
	}

	klog.V(5).InfoS("image attached", "image", image, "device", loopDevice.Path())
	source.detach = loopDevice.Detach
	return source, nil
}
