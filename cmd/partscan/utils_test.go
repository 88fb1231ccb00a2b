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

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/blockdev/mbr"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/spf13/viper"
)

func TestPrintables(t *testing.T) {
	if s := printableString(""); s != "-" {
		t.Fatalf("expected: -, got: %v", s)
	}
	if s := printableString("Linux"); s != "Linux" {
		t.Fatalf("expected: Linux, got: %v", s)
	}

	testCases := []struct {
		value    uint64
		expected string
	}{
		{0, "-"},
		{512, "512 B"},
		{1024 * 1024, "1.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for i, testCase := range testCases {
		if s := printableBytes(testCase.value); s != testCase.expected {
			t.Fatalf("case %v: expected: %v, got: %v", i+1, testCase.expected, s)
		}
	}
}

func TestGetDevices(t *testing.T) {
	origSysBlockDir, origDevicesArgs := sysBlockDir, devicesArgs
	defer func() {
		sysBlockDir, devicesArgs = origSysBlockDir, origDevicesArgs
	}()

	sysBlockDir = t.TempDir()
	for _, name := range []string{"sda", "ram0", "nvme0n1", "loop3"} {
		if err := os.Mkdir(filepath.Join(sysBlockDir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	testCases := []struct {
		args        []string
		devicesArgs []string
		expected    []string
		expectErr   bool
	}{
		{nil, nil, []string{"/dev/loop3", "/dev/nvme0n1", "/dev/sda"}, false},
		{nil, []string{"sd*", "nvme*"}, []string{"/dev/nvme0n1", "/dev/sda"}, false},
		{[]string{"/dev/sd{a...c}"}, nil, []string{"/dev/sda", "/dev/sdb", "/dev/sdc"}, false},
		{[]string{"/dev/sd{a...c}", "disk.img"}, []string{"sdb", "*.img"}, []string{"/dev/sdb", "disk.img"}, false},
		{[]string{"/dev/sd{a...c}"}, []string{"vd*"}, nil, false},
		{[]string{" "}, nil, nil, true},
		{[]string{"/dev/sd{a..c}"}, nil, nil, true},
	}

	for i, testCase := range testCases {
		devicesArgs = testCase.devicesArgs
		devices, err := getDevices(testCase.args)
		if (err != nil) != testCase.expectErr {
			t.Fatalf("case %v: expected error: %v, got: %v", i+1, testCase.expectErr, err)
		}
		if !reflect.DeepEqual(devices, testCase.expected) {
			t.Fatalf("case %v: expected: %v, got: %v", i+1, testCase.expected, devices)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	defer viper.Set(configFlagName, "")

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte("read-rate: 250\nloop: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	viper.Set(configFlagName, filepath.Join(t.TempDir(), "missing.yaml"))
	if err := loadConfig(); err == nil {
		t.Fatalf("expected error for missing config file")
	}

	viper.Set(configFlagName, configFile)
	if err := loadConfig(); err != nil {
		t.Fatal(err)
	}
	opts := probeOptions()
	if opts.ReadRate != 250 || !opts.Loop {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestFilterByTypes(t *testing.T) {
	results := []*blockdev.Result{
		{
			Device: "/dev/sda",
			Scheme: blockdev.SchemeDOS,
			Partitions: []parttable.Partition{
				parttable.NewPartition(2048, 2048, parttable.TypeLinux),
				parttable.NewPartition(4096, 2048, parttable.TypeLinuxSwap),
				parttable.NewPartition(6144, 2048, parttable.TypeNTFS),
			},
		},
	}

	if filtered := filterByTypes(results, nil); !reflect.DeepEqual(filtered, results) {
		t.Fatalf("expected: %v, got: %v", results, filtered)
	}

	filtered := filterByTypes(results, []string{"linux*"})
	if len(filtered) != 1 || len(filtered[0].Partitions) != 2 {
		t.Fatalf("unexpected result %+v", filtered)
	}
	if len(results[0].Partitions) != 3 {
		t.Fatalf("original result is modified")
	}
}

func TestResultRows(t *testing.T) {
	testCases := []struct {
		result   *blockdev.Result
		expected []table.Row
	}{
		{
			&blockdev.Result{Device: "disk.img", Scheme: blockdev.SchemeGPT, BlockCount: 2048},
			[]table.Row{{"disk.img", "-", "-", "-", "1.0 MiB", "GPT (not parsed)"}},
		},
		{
			&blockdev.Result{Device: "disk.img", Scheme: blockdev.SchemeDOS},
			[]table.Row{{"disk.img", "-", "-", "-", "-", "-"}},
		},
		{
			&blockdev.Result{
				Device:     "/dev/sda",
				Scheme:     blockdev.SchemeDOS,
				Partitions: []parttable.Partition{parttable.NewPartition(2048, 2048, parttable.TypeLinux)},
			},
			[]table.Row{{"/dev/sda", 1, uint64(2048), uint64(4095), "1.0 MiB", "Linux"}},
		},
	}

	for i, testCase := range testCases {
		if rows := resultRows(testCase.result); !reflect.DeepEqual(rows, testCase.expected) {
			t.Fatalf("case %v: expected: %v, got: %v", i+1, testCase.expected, rows)
		}
	}
}

func TestSectorRows(t *testing.T) {
	sector, err := mbr.Parse(
		mbr.NewFakeSector(
			mbr.NewFakeEntry(parttable.TypeLinux, 1, 99),
			mbr.NewFakeEntry(parttable.TypeExtendedLBA, 100, 50),
		),
		1000,
		0,
	)
	if err != nil {
		t.Fatal(err)
	}

	rows := sectorRows(sector)
	if len(rows) != 4 {
		t.Fatalf("expected: 4 rows, got: %v", len(rows))
	}
	expected := table.Row{0, "0x00", "Linux", uint32(1), uint32(99), uint64(1001), uint64(1099)}
	if !reflect.DeepEqual(rows[0], expected) {
		t.Fatalf("expected: %v, got: %v", expected, rows[0])
	}
	if rows[2][5] != "-" || rows[2][6] != "-" {
		t.Fatalf("expected empty range for unused slot, got: %v", rows[2])
	}
}
