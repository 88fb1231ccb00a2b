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
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/blockdev/mbr"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/consts"
	"github.com/minio/partscan/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var dumpCmd = &cobra.Command{
	Use:           "dump DEVICE",
	Short:         "Dump boot record slots of a device",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ExactArgs(1),
	Example: strings.ReplaceAll(
		`1. Dump master boot record of a disk
   $ {APP_NAME} dump /dev/sda

2. Dump extended boot record at block 2048 of a disk image
   $ {APP_NAME} dump disk.img --block 2048`,
		`{APP_NAME}`,
		consts.AppName,
	),
	Run: func(c *cobra.Command, args []string) {
		if err := dumpMain(c.Context(), strings.TrimSpace(args[0])); err != nil {
			utils.Eprintf(viper.GetBool(quietFlagName), true, "%v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	setFlagOpts(dumpCmd)

	addBlockFlag(dumpCmd, "Block number of the boot record to dump")
	addNoHeadersFlag(dumpCmd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func sectorRows(sector *mbr.Table) (rows []table.Row) {
	for i, entry := range sector.Entries() {
		row := table.Row{
			i,
			fmt.Sprintf("0x%02x", entry.Status),
			parttable.TypeName(entry.PartitionType),
			entry.FirstLBA,
			entry.NumSectors,
			"-",
			"-",
		}
		if partition, found := sector.Partition(i); found {
			row[5] = partition.StartBlock
			row[6] = partition.EndBlock
		}
		rows = append(rows, row)
	}
	return rows
}

func dumpMain(ctx context.Context, device string) error {
	src, err := blockdev.Open(ctx, device, probeOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			klog.ErrorS(err, "unable to close device", "device", device)
		}
	}()

	sector, err := mbr.TryToInitialize(src, blockArg)
	if err != nil {
		return err
	}

	writer := newTableWriter(
		table.Row{"SLOT", "STATUS", "TYPE", "FIRST LBA", "SECTORS", "START", "END"},
		nil,
		noHeaders,
	)
	for _, row := range sectorRows(sector) {
		writer.AppendRow(row)
	}
	writer.Render()

	signature := color.HiGreenString("0x%04x (valid)", sector.Signature())
	if !sector.IsValid() {
		signature = color.HiRedString("0x%04x (invalid)", sector.Signature())
	}
	fmt.Printf("Signature: %v\n", signature)
	fmt.Printf("Populated slots: %v\n", sector.PartitionsCount())
	fmt.Printf("Protective MBR: %v\n", yesNo(sector.IsProtectiveMBR()))
	fmt.Printf("Links to EBR: %v\n", yesNo(sector.ContainsEBR()))
	return nil
}
