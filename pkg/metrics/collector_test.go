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

package metrics

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/blockdev/ebr"
	"github.com/minio/partscan/pkg/blockdev/mbr"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/consts"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getLabelValue(labelPairs []*dto.LabelPair, name string) string {
	for _, lp := range labelPairs {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func getFQNameFromDesc(desc string) string {
	firstPart := strings.Split(desc, ",")[0]
	fqName := strings.Split(firstPart, ":")
	if len(fqName) != 2 {
		panic("cannot parse the fqname")
	}
	return strings.ReplaceAll(strings.TrimSpace(fqName[1]), "\"", "")
}

func createFakeMetricsCollector(devices []string) *metricsCollector {
	mc := newMetricsCollector(devices, blockdev.Options{})
	mc.probe = func(ctx context.Context, device string, opts blockdev.Options) (*blockdev.Result, error) {
		switch device {
		case "/dev/sda":
			return &blockdev.Result{
				Device: device,
				Scheme: blockdev.SchemeDOS,
				Partitions: []parttable.Partition{
					parttable.NewPartition(2048, 1024, parttable.TypeLinux),
					parttable.NewPartition(4097, 1024, parttable.TypeLinuxSwap),
				},
				Report: ebr.Report{Links: 1, Truncated: true, ReadFailures: 2},
			}, nil
		case "/dev/sdb":
			return &blockdev.Result{Device: device, Scheme: blockdev.SchemeGPT}, nil
		default:
			return nil, fmt.Errorf("%w; bad chain", parttable.ErrCorruption)
		}
	}
	return mc
}

func TestCollect(t *testing.T) {
	mc := createFakeMetricsCollector([]string{"/dev/sda", "/dev/sdb", "/dev/sdc"})

	metricCh := make(chan prometheus.Metric, 16)
	mc.Collect(metricCh)
	close(metricCh)

	expected := map[string]float64{
		"partscan_partitions_total/dev/sda":    2,
		"partscan_chain_links/dev/sda":         1,
		"partscan_chain_truncated/dev/sda":     1,
		"partscan_chain_read_failures/dev/sda": 2,
		"partscan_partitions_total/dev/sdb":    0,
		"partscan_chain_links/dev/sdb":         0,
		"partscan_chain_truncated/dev/sdb":     0,
		"partscan_chain_read_failures/dev/sdb": 0,
		"partscan_probe_errors/dev/sdc":        1,
	}

	received := 0
	for metric := range metricCh {
		metricOut := dto.Metric{}
		if err := metric.Write(&metricOut); err != nil {
			t.Fatal(err)
		}

		fqName := getFQNameFromDesc(metric.Desc().String())
		device := getLabelValue(metricOut.GetLabel(), "device")
		value, found := expected[fqName+device]
		if !found {
			t.Fatalf("unexpected metric %v for device %v", fqName, device)
		}
		if got := metricOut.GetGauge().GetValue(); got != value {
			t.Fatalf("%v %v: expected: %v, got: %v", fqName, device, value, got)
		}

		switch fqName {
		case "partscan_partitions_total":
			scheme := getLabelValue(metricOut.GetLabel(), "scheme")
			if (device == "/dev/sda" && scheme != "dos") || (device == "/dev/sdb" && scheme != "gpt") {
				t.Fatalf("%v: unexpected scheme %v", device, scheme)
			}
		case "partscan_probe_errors":
			if kind := getLabelValue(metricOut.GetLabel(), "kind"); kind != "corruption" {
				t.Fatalf("%v: expected: corruption, got: %v", device, kind)
			}
		}
		received++
	}

	if received != len(expected) {
		t.Fatalf("expected: %v metrics, got: %v", len(expected), received)
	}
}

func TestDescribe(t *testing.T) {
	descCh := make(chan *prometheus.Desc, 8)
	newMetricsCollector(nil, blockdev.Options{}).Describe(descCh)
	close(descCh)

	count := 0
	for range descCh {
		count++
	}
	if count != 5 {
		t.Fatalf("expected: 5 descriptors, got: %v", count)
	}
}

func TestErrorKind(t *testing.T) {
	testCases := []struct {
		err          error
		expectedKind string
	}{
		{parttable.ErrInvalidFormat, "invalid_format"},
		{fmt.Errorf("%w; protective MBR", parttable.ErrNotSupported), "not_supported"},
		{fmt.Errorf("/dev/sda: %w", parttable.ErrReadFailure), "read_failure"},
		{parttable.ErrCorruption, "corruption"},
		{parttable.ErrCancelled, "cancelled"},
		{os.ErrNotExist, "unknown"},
	}

	for i, testCase := range testCases {
		if kind := errorKind(testCase.err); kind != testCase.expectedKind {
			t.Fatalf("case %v: expected: %v, got: %v", i+1, testCase.expectedKind, kind)
		}
	}
}

func TestMetricsHandler(t *testing.T) {
	image := filepath.Join(t.TempDir(), "disk.img")
	data := make([]byte, 64*512)
	copy(data, mbr.NewFakeSector(mbr.NewFakeEntry(parttable.TypeLinux, 1, 63)))
	if err := os.WriteFile(image, data, 0o600); err != nil {
		t.Fatal(err)
	}

	recorder := httptest.NewRecorder()
	metricsHandler([]string{image}, blockdev.Options{}).ServeHTTP(recorder, httptest.NewRequest("GET", consts.MetricsPath, nil))

	body := recorder.Body.String()
	expected := fmt.Sprintf(`partscan_partitions_total{device=%q,scheme="dos"} 1`, image)
	if !strings.Contains(body, expected) {
		t.Fatalf("expected %v in response, got: %v", expected, body)
	}
}
