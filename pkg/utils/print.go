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

package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var stderr io.Writer = os.Stderr

// Eprintf prints to standard error. Errors are prefixed by red "Error:"
// and nothing is printed if quiet is set.
func Eprintf(quiet, isErr bool, format string, a ...interface{}) {
	if quiet {
		return
	}
	if isErr {
		fmt.Fprint(stderr, color.RedString("Error: "))
	}
	fmt.Fprintf(stderr, format, a...)
}
