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
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/minio/partscan/pkg/blockdev"
	"github.com/minio/partscan/pkg/consts"
	"github.com/minio/partscan/pkg/ellipsis"
	"github.com/minio/partscan/pkg/matcher"
	"github.com/minio/partscan/pkg/utils"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var sysBlockDir = "/sys/block"

func getDefaultConfigFile() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return path.Join(homeDir, consts.ConfigDir, consts.ConfigFile), nil
}

// loadConfig reads the config file if it exists. A missing default config
// file is not an error; a missing file given by --config is.
func loadConfig() error {
	configFile := viper.GetString(configFlagName)
	explicit := configFile != ""
	if !explicit {
		var err error
		if configFile, err = getDefaultConfigFile(); err != nil {
			klog.V(3).InfoS("unable to find home directory", "err", err)
			return nil
		}
	}

	if _, err := os.Stat(configFile); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("unable to read config file %v; %w", configFile, err)
	}

	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to load config file %v; %w", configFile, err)
	}
	klog.V(3).InfoS("loaded config file", "path", configFile)
	return nil
}

func probeOptions() blockdev.Options {
	return blockdev.Options{
		Loop:      viper.GetBool(loopFlagName),
		ReadRate:  viper.GetFloat64(readRateFlagName),
		ReadBurst: viper.GetInt(readBurstFlagName),
	}
}

// discoverDevices returns whole disks known to the kernel.
func discoverDevices() ([]string, error) {
	entries, err := os.ReadDir(sysBlockDir)
	if err != nil {
		return nil, fmt.Errorf("unable to discover devices; %w", err)
	}

	var devices []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "ram") {
			continue
		}
		devices = append(devices, "/dev/"+name)
	}
	sort.Strings(devices)
	return devices, nil
}

// getDevices expands ellipses in args, falls back to discovered devices if
// no args are given and applies --devices filter.
func getDevices(args []string) ([]string, error) {
	var devices []string
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg == "" {
			return nil, errors.New("empty device name")
		}
		devices = append(devices, arg)
	}

	var err error
	if len(devices) == 0 {
		if devices, err = discoverDevices(); err != nil {
			return nil, err
		}
	} else if devices, err = ellipsis.ExpandAll(devices); err != nil {
		return nil, err
	}

	return matcher.FilterDevices(devices, devicesArgs), nil
}

func printableString(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printableBytes(value uint64) string {
	if value == 0 {
		return "-"
	}
	return humanize.IBytes(value)
}

func printYAML(obj interface{}) error {
	y, err := utils.ToYAML(obj)
	if err != nil {
		return err
	}
	fmt.Print(y)
	return nil
}

func printJSON(obj interface{}) error {
	j, err := utils.ToJSON(obj)
	if err != nil {
		return err
	}
	fmt.Println(j)
	return nil
}

func newTableWriter(header table.Row, sortBy []table.SortBy, noHeader bool) table.Writer {
	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	if !noHeader {
		writer.AppendHeader(header)
	}
	if sortBy != nil {
		writer.SortBy(sortBy)
	}

	style := table.StyleColoredDark
	style.Color.IndexColumn = text.Colors{text.FgHiBlue, text.BgHiBlack}
	style.Color.Header = text.Colors{text.FgHiBlue, text.BgHiBlack}
	writer.SetStyle(style)

	return writer
}
