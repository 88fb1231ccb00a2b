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

package matcher

import (
	"path/filepath"
	"strings"

	"github.com/mb0/glob"
)

func fmap(slice []string, applyFunc func(string) string) (result []string) {
	for _, value := range slice {
		result = append(result, applyFunc(value))
	}
	return
}

// GlobMatch matches given name in list of glob patterns.
func GlobMatch(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		if matched, _ := glob.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// MatchDevice matches device path or its base name in list of glob patterns.
func MatchDevice(device string, patterns []string) bool {
	return GlobMatch(device, patterns) || GlobMatch(filepath.Base(device), patterns)
}

// FilterDevices returns devices matching any of glob patterns in order.
func FilterDevices(devices, patterns []string) (result []string) {
	for _, device := range devices {
		if MatchDevice(device, patterns) {
			result = append(result, device)
		}
	}
	return result
}

// MatchTypeName matches partition type name case-insensitively in list of glob patterns.
func MatchTypeName(typeName string, patterns []string) bool {
	return GlobMatch(strings.ToLower(typeName), fmap(patterns, strings.ToLower))
}
