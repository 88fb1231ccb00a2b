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
	"net"
	"net/http"

	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/consts"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

func metricsHandler(devices []string, opts blockdev.Options) http.Handler {
	registry := prometheus.NewRegistry()
	if err := registry.Register(newMetricsCollector(devices, opts)); err != nil {
		panic(err)
	}

	return promhttp.InstrumentMetricHandler(
		registry,
		promhttp.HandlerFor(registry,
			promhttp.HandlerOpts{
				ErrorHandling: promhttp.ContinueOnError,
			}),
	)
}

// ServeMetrics serves partition metrics of devices at address until ctx is done.
func ServeMetrics(ctx context.Context, devices []string, opts blockdev.Options, address string) error {
	config := net.ListenConfig{}
	listener, err := config.Listen(ctx, "tcp", address)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(consts.MetricsPath, metricsHandler(devices, opts))
	server := &http.Server{Handler: mux}

	go func() {
		<-ctx.Done()
		if err := server.Close(); err != nil {
			klog.ErrorS(err, "unable to stop metrics server")
		}
	}()

	klog.V(2).InfoS("Starting metrics exporter", "address", listener.Addr().String(), "devices", len(devices))
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
