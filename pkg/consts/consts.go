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

package consts

const (
	// AppName denotes application/library/plugin/tool name
	AppName = "partscan"

	// AppPrettyName denotes application/library/plugin/tool pretty name
	AppPrettyName = "PartScan"

	// AppCapsName denotes application/library/plugin/tool name in capital letters.
	AppCapsName = "PARTSCAN"

	// BlockSize is the fixed size of one block read from a block source.
	BlockSize = 512

	// MaxChainLinks bounds the number of EBR links followed in one extended partition.
	MaxChainLinks = 128

	// MetricsPort is default metrics port.
	MetricsPort = 10443

	// MetricsPath is default metrics path.
	MetricsPath = "/metrics"

	// ConfigDir is the configuration directory name under user's home.
	ConfigDir = "." + AppName

	// ConfigFile is the default configuration file name.
	ConfigFile = "config.yaml"
)
