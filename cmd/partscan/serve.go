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
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/minio/partscan/pkg/consts"
	"github.com/minio/partscan/pkg/metrics"
	"github.com/minio/partscan/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var serveCmd = &cobra.Command{
	Use:           "serve [DEVICE ...]",
	Short:         "Export partition metrics of devices in Prometheus format",
	SilenceUsage:  true,
	SilenceErrors: true,
	Example: strings.ReplaceAll(
		`1. Export metrics of all devices
   $ {APP_NAME} serve

2. Export metrics of specific devices on a custom address
   $ {APP_NAME} serve /dev/sd{a...d} --address 127.0.0.1:9100`,
		`{APP_NAME}`,
		consts.AppName,
	),
	Run: func(c *cobra.Command, args []string) {
		if err := serveMain(c.Context(), args); err != nil {
			utils.Eprintf(viper.GetBool(quietFlagName), true, "%v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	setFlagOpts(serveCmd)

	addDevicesFlag(serveCmd, "Export metrics of matching devices")
	addAddressFlag(serveCmd, fmt.Sprintf("Listen address of metrics server (default \":%v\")", consts.MetricsPort))
	viper.BindPFlag(addressFlagName, serveCmd.Flags().Lookup(addressFlagName))
}

func serveMain(ctx context.Context, args []string) error {
	devices, err := getDevices(args)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return errors.New("no matching devices found")
	}

	address := viper.GetString(addressFlagName)
	if address == "" {
		address = fmt.Sprintf(":%v", consts.MetricsPort)
	}

	klog.InfoS("Serving partition metrics", "address", address, "path", consts.MetricsPath, "devices", devices)
	return metrics.ServeMetrics(ctx, devices, probeOptions(), address)
}
