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

package blockdev

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/partscan/pkg/blockdev/ebr"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/blockdev/source"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"
)

// Partition table schemes.
const (
	SchemeDOS = "dos"
	SchemeGPT = "gpt"
)

// Options denotes probe options.
type Options struct {
	// Loop attaches the path to a loop device before reading.
	Loop bool
	// ReadRate limits block reads per second; zero disables throttling.
	ReadRate float64
	// ReadBurst is the number of reads allowed at once when throttled.
	ReadBurst int
}

// Result denotes partition table found in a device.
type Result struct {
	Device      string                `json:"device"`
	Scheme      string                `json:"scheme"`
	BlockCount  uint64                `json:"blockCount"`
	Partitions  []parttable.Partition `json:"partitions"`
	Report      ebr.Report            `json:"report"`
	Fingerprint string                `json:"fingerprint,omitempty"`
}

// Open opens device or image file for reading as per options.
func Open(ctx context.Context, device string, opts Options) (source.Source, error) {
	var src source.Source
	if opts.Loop {
		deviceSource, err := source.AttachImage(device)
		if err != nil {
			return nil, err
		}
		src = deviceSource
	} else {
		var err error
		if src, err = source.Open(device); err != nil {
			return nil, err
		}
	}

	if opts.ReadRate > 0 {
		src = source.NewThrottledSource(ctx, src, opts.ReadRate, opts.ReadBurst)
	}
	return src, nil
}

func probe(src source.Source, device string) (*Result, error) {
	table, report, err := ebr.Walk(src)
	result := &Result{
		Device:     device,
		Scheme:     SchemeDOS,
		BlockCount: src.BlockCount(),
		Report:     report,
	}

	switch {
	case err == nil:
	case errors.Is(err, parttable.ErrNotSupported):
		// GPT partitions are read by a GPT reader, not here.
		result.Scheme = SchemeGPT
		result.Partitions = []parttable.Partition{}
		return result, nil
	default:
		return nil, err
	}

	result.Partitions = table.Partitions()
	result.Fingerprint = table.Fingerprint()
	return result, nil
}

// Probe detects and returns partition table in given device or image file.
func Probe(ctx context.Context, device string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w; %v", parttable.ErrCancelled, err)
	}

	src, err := Open(ctx, device, opts)
	if err != nil {
		return nil, err
	}

	type probeResult struct {
		result *Result
		err    error
	}
	resultCh := make(chan probeResult, 1)
	go func() {
		defer func() {
			if err := src.Close(); err != nil {
				klog.ErrorS(err, "unable to close device", "device", device)
			}
		}()
		result, err := probe(src, device)
		resultCh <- probeResult{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w; %v", parttable.ErrCancelled, ctx.Err())
	case r := <-resultCh:
		return r.result, r.err
	}
}

// ProbeAll probes devices one by one. Errors of all failed devices are
// combined; results of successful devices are returned regardless.
func ProbeAll(ctx context.Context, devices []string, opts Options) (results []*Result, err error) {
	for _, device := range devices {
		result, perr := Probe(ctx, device, opts)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%v: %w", device, perr))
			if errors.Is(perr, parttable.ErrCancelled) {
				break
			}
			continue
		}
		results = append(results, result)
	}
	return results, err
}
