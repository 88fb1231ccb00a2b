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
	"errors"
	"time"

	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/consts"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

const probeTimeout = 30 * time.Second

type probeFunc func(ctx context.Context, device string, opts blockdev.Options) (*blockdev.Result, error)

type metricsCollector struct {
	devices []string
	opts    blockdev.Options
	probe   probeFunc

	partitionsDesc   *prometheus.Desc
	chainLinksDesc   *prometheus.Desc
	truncatedDesc    *prometheus.Desc
	readFailuresDesc *prometheus.Desc
	probeErrorsDesc  *prometheus.Desc
}

func newMetricsCollector(devices []string, opts blockdev.Options) *metricsCollector {
	return &metricsCollector{
		devices: devices,
		opts:    opts,
		probe:   blockdev.Probe,
		partitionsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.AppName, "", "partitions_total"),
			"Number of partitions found in the device",
			[]string{"device", "scheme"}, nil),
		chainLinksDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.AppName, "", "chain_links"),
			"Number of extended boot records followed in the device",
			[]string{"device"}, nil),
		truncatedDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.AppName, "", "chain_truncated"),
			"Whether the extended boot record chain hit the link limit",
			[]string{"device"}, nil),
		readFailuresDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.AppName, "", "chain_read_failures"),
			"Number of unreadable extended boot records skipped",
			[]string{"device"}, nil),
		probeErrorsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(consts.AppName, "", "probe_errors"),
			"Set when the device could not be probed",
			[]string{"device", "kind"}, nil),
	}
}

// Describe sends the super set of all possible descriptors of metrics
func (c *metricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.partitionsDesc
	ch <- c.chainLinksDesc
	ch <- c.truncatedDesc
	ch <- c.readFailuresDesc
	ch <- c.probeErrorsDesc
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, parttable.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, parttable.ErrNotSupported):
		return "not_supported"
	case errors.Is(err, parttable.ErrReadFailure):
		return "read_failure"
	case errors.Is(err, parttable.ErrCorruption):
		return "corruption"
	case errors.Is(err, parttable.ErrCancelled):
		return "cancelled"
	default:
		return "unknown"
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (c *metricsCollector) publishDeviceStats(ctx context.Context, device string, ch chan<- prometheus.Metric) {
	result, err := c.probe(ctx, device, c.opts)
	if err != nil {
		klog.ErrorS(err, "unable to probe device", "device", device)
		ch <- prometheus.MustNewConstMetric(c.probeErrorsDesc, prometheus.GaugeValue, 1, device, errorKind(err))
		return
	}

	ch <- prometheus.MustNewConstMetric(
		c.partitionsDesc, prometheus.GaugeValue, float64(len(result.Partitions)), device, result.Scheme,
	)
	ch <- prometheus.MustNewConstMetric(
		c.chainLinksDesc, prometheus.GaugeValue, float64(result.Report.Links), device,
	)
	ch <- prometheus.MustNewConstMetric(
		c.truncatedDesc, prometheus.GaugeValue, boolToFloat(result.Report.Truncated), device,
	)
	ch <- prometheus.MustNewConstMetric(
		c.readFailuresDesc, prometheus.GaugeValue, float64(result.Report.ReadFailures), device,
	)
}

// Collect is called by Prometheus registry when collecting metrics.
func (c *metricsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancelFunc := context.WithTimeout(context.Background(), probeTimeout)
	defer cancelFunc()

	for _, device := range c.devices {
		c.publishDeviceStats(ctx, device, ch)
	}
}
