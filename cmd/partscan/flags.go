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
	"github.com/spf13/cobra"
)

const (
	configFlagName    = "config"
	quietFlagName     = "quiet"
	readRateFlagName  = "read-rate"
	readBurstFlagName = "read-burst"
	loopFlagName      = "loop"
	addressFlagName   = "address"
)

var (
	outputFormat string   // --output flag
	noHeaders    bool     // --no-headers flag
	devicesArgs  []string // --devices flag
	typesArgs    []string // --types flag
	blockArg     uint64   // --block flag
)

func addConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(configFlagName, "", "Path to the config file (default ~/.partscan/config.yaml)")
}

func addQuietFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(quietFlagName, false, "Suppress printing error messages")
}

func addReadRateFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Float64(readRateFlagName, 0, "Maximum block reads per second; 0 means unlimited")
	cmd.PersistentFlags().Int(readBurstFlagName, 8, "Block reads allowed at once when --read-rate is set")
}

func addLoopFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(loopFlagName, false, "Attach image files to a read-only loop device before reading")
}

func addOutputFormatFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", outputFormat, usage)
}

func addNoHeadersFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noHeaders, "no-headers", noHeaders, "When using the default output, don't print headers")
}

func addDevicesFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringSliceVarP(&devicesArgs, "devices", "d", devicesArgs, usage+"; supports glob pattern e.g. sd*")
}

func addTypesFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringSliceVarP(&typesArgs, "types", "t", typesArgs, usage+"; supports glob pattern e.g. linux*")
}

func addBlockFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().Uint64Var(&blockArg, "block", blockArg, usage)
}

func addAddressFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().String(addressFlagName, "", usage)
}

func setFlagOpts(cmd *cobra.Command) {
	cmd.Flags().SortFlags = false
	cmd.InheritedFlags().SortFlags = false
	cmd.LocalFlags().SortFlags = false
	cmd.LocalNonPersistentFlags().SortFlags = false
	cmd.NonInheritedFlags().SortFlags = false
	cmd.PersistentFlags().SortFlags = false
}
