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
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

type testObject struct {
	Device string `json:"device"`
	Blocks uint64 `json:"blocks,omitempty"`
}

func TestToYAML(t *testing.T) {
	testCases := []struct {
		obj          interface{}
		expectedYAML string
	}{
		{testObject{Device: "/dev/sda", Blocks: 2048}, "blocks: 2048\ndevice: /dev/sda\n"},
		{testObject{Device: "disk.img"}, "device: disk.img\n"},
		{[]testObject{{Device: "a"}}, "- device: a\n"},
	}

	for i, testCase := range testCases {
		result, err := ToYAML(testCase.obj)
		if err != nil {
			t.Fatalf("case %v: unexpected error: %v", i+1, err)
		}
		if result != testCase.expectedYAML {
			t.Fatalf("case %v: expected: %q, got: %q", i+1, testCase.expectedYAML, result)
		}

		var obj interface{}
		if err := FromYAML([]byte(result), &obj); err != nil {
			t.Fatalf("case %v: unexpected error: %v", i+1, err)
		}
	}

	if _, err := ToYAML(make(chan int)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestToJSON(t *testing.T) {
	result, err := ToJSON(testObject{Device: "/dev/sda"})
	if err != nil {
		t.Fatal(err)
	}
	expected := "{\n  \"device\": \"/dev/sda\"\n}"
	if result != expected {
		t.Fatalf("expected: %q, got: %q", expected, result)
	}

	if _, err := ToJSON(func() {}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEprintf(t *testing.T) {
	noColor, origStderr := color.NoColor, stderr
	color.NoColor = true
	defer func() {
		stderr = origStderr
		color.NoColor = noColor
	}()

	testCases := []struct {
		quiet    bool
		isErr    bool
		expected string
	}{
		{false, false, "probing /dev/sda\n"},
		{false, true, "Error: probing /dev/sda\n"},
		{true, true, ""},
	}

	for i, testCase := range testCases {
		var buf bytes.Buffer
		stderr = &buf
		Eprintf(testCase.quiet, testCase.isErr, "probing %v\n", "/dev/sda")
		if got := buf.String(); got != testCase.expected {
			t.Fatalf("case %v: expected: %q, got: %q", i+1, testCase.expected, got)
		}
		if !testCase.isErr && strings.HasPrefix(buf.String(), "Error") {
			t.Fatalf("case %v: unexpected error prefix", i+1)
		}
	}
}
