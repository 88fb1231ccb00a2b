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

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/blockdev/source"
	"github.com/minio/partscan/pkg/consts"
	"github.com/minio/partscan/pkg/matcher"
	"github.com/minio/partscan/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

var listCmd = &cobra.Command{
	Use:           "list [DEVICE ...]",
	Aliases:       []string{"ls"},
	Short:         "List partitions of devices",
	SilenceUsage:  true,
	SilenceErrors: true,
	Example: strings.ReplaceAll(
		`1. List partitions of all devices
   $ {APP_NAME} list

2. List partitions of a disk image
   $ {APP_NAME} list disk.img

3. List partitions of specific devices
   $ {APP_NAME} list /dev/sd{a...f}

4. List partitions of NVMe devices only
   $ {APP_NAME} list --devices 'nvme*'

5. List Linux partitions in YAML
   $ {APP_NAME} list --types 'linux*' --output yaml`,
		`{APP_NAME}`,
		consts.AppName,
	),
	Run: func(c *cobra.Command, args []string) {
		quiet := viper.GetBool(quietFlagName)
		if err := validateListArgs(); err != nil {
			utils.Eprintf(quiet, true, "%v\n", err)
			os.Exit(-1)
		}

		if err := listMain(c.Context(), args); err != nil {
			utils.Eprintf(quiet, true, "%v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	setFlagOpts(listCmd)

	addOutputFormatFlag(listCmd, "Output format. One of: json|yaml")
	addNoHeadersFlag(listCmd)
	addDevicesFlag(listCmd, "Filter output by devices")
	addTypesFlag(listCmd, "Filter output by partition type names")
}

func validateListArgs() error {
	outputFormat = strings.ToLower(strings.TrimSpace(outputFormat))
	switch outputFormat {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %v", outputFormat)
	}

	for i := range typesArgs {
		if typesArgs[i] = strings.TrimSpace(typesArgs[i]); typesArgs[i] == "" {
			return errors.New("empty partition type")
		}
	}
	return nil
}

// filterByTypes returns copy of results having partitions matching types.
func filterByTypes(results []*blockdev.Result, types []string) []*blockdev.Result {
	if len(types) == 0 {
		return results
	}

	filtered := make([]*blockdev.Result, 0, len(results))
	for _, result := range results {
		copied := *result
		copied.Partitions = []parttable.Partition{}
		for _, partition := range result.Partitions {
			if matcher.MatchTypeName(partition.TypeName(), types) {
				copied.Partitions = append(copied.Partitions, partition)
			}
		}
		filtered = append(filtered, &copied)
	}
	return filtered
}

func resultRows(result *blockdev.Result) (rows []table.Row) {
	if result.Scheme == blockdev.SchemeGPT {
		return []table.Row{{
			result.Device,
			"-",
			"-",
			"-",
			printableBytes(result.BlockCount * source.BlockSize),
			"GPT (not parsed)",
		}}
	}

	if len(result.Partitions) == 0 {
		return []table.Row{{result.Device, "-", "-", "-", "-", "-"}}
	}

	for i, partition := range result.Partitions {
		rows = append(rows, table.Row{
			result.Device,
			i + 1,
			partition.StartBlock,
			partition.EndBlock,
			printableBytes(partition.Size(source.BlockSize)),
			printableString(partition.TypeName()),
		})
	}
	return rows
}

func listMain(ctx context.Context, args []string) error {
	devices, err := getDevices(args)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return errors.New("no matching devices found")
	}

	quiet := viper.GetBool(quietFlagName)
	results, probeErr := blockdev.ProbeAll(ctx, devices, probeOptions())
	for _, err := range multierr.Errors(probeErr) {
		utils.Eprintf(quiet, true, "%v\n", err)
	}
	results = filterByTypes(results, typesArgs)

	for _, result := range results {
		if result.Report.Truncated {
			utils.Eprintf(quiet, false, "%v\n", color.HiYellowString(
				"%v: extended partition chain is longer than %v links; remaining partitions are not listed",
				result.Device, consts.MaxChainLinks,
			))
		}
		if result.Report.ReadFailures+result.Report.SkippedSlots > 0 {
			utils.Eprintf(quiet, false, "%v\n", color.HiYellowString(
				"%v: %v extended boot records could not be read",
				result.Device, result.Report.ReadFailures+result.Report.SkippedSlots,
			))
		}
	}

	switch outputFormat {
	case "json":
		err = printJSON(results)
	case "yaml":
		err = printYAML(results)
	default:
		writer := newTableWriter(
			table.Row{"DEVICE", "#", "START", "END", "SIZE", "TYPE"},
			nil,
			noHeaders,
		)
		rows := 0
		for _, result := range results {
			for _, row := range resultRows(result) {
				writer.AppendRow(row)
				rows++
			}
		}
		if rows != 0 {
			writer.Render()
		}
	}
	if err != nil {
		return err
	}

	if probeErr != nil {
		return errors.New("unable to probe some devices")
	}
	return nil
}
