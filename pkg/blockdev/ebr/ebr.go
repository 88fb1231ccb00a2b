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

// Package ebr reads DOS partition tables including logical partitions
// chained through extended boot records.
package ebr

import (
	"fmt"

	"github.com/minio/partscan/pkg/blockdev/mbr"
	"github.com/minio/partscan/pkg/blockdev/parttable"
	"github.com/minio/partscan/pkg/blockdev/source"
	"github.com/minio/partscan/pkg/consts"
	"k8s.io/klog/v2"
)

// MaxChainLinks is the number of EBR links followed per extended partition.
const MaxChainLinks = consts.MaxChainLinks

// Report denotes what happened while walking EBR chains.
type Report struct {
	// Links is the number of EBR sectors resolved.
	Links int `json:"links"`
	// Truncated is set if a chain was cut at MaxChainLinks.
	Truncated bool `json:"truncated"`
	// ReadFailures is the number of chains ended by an unreadable next link.
	ReadFailures int `json:"readFailures"`
	// SkippedSlots is the number of primary extended entries whose first EBR was unreadable.
	SkippedSlots int `json:"skippedSlots"`
}

// TryToInitialize reads the partition table of src.
func TryToInitialize(src source.Source) (*parttable.Table, error) {
	table, _, err := Walk(src)
	return table, err
}

// Walk reads the partition table of src and reports how EBR chains were resolved.
func Walk(src source.Source) (*parttable.Table, Report, error) {
	var report Report

	root, err := mbr.TryToInitialize(src, 0)
	if err != nil {
		return nil, report, err
	}

	if root.IsProtectiveMBR() {
		return nil, report, fmt.Errorf("GPT protective MBR found; %w", parttable.ErrNotSupported)
	}

	if !root.IsValid() {
		return nil, report, fmt.Errorf("boot signature %#04x; %w", root.Signature(), parttable.ErrInvalidFormat)
	}

	var partitions []parttable.Partition
	for index, entry := range root.Entries() {
		if !entry.IsPopulated() {
			continue
		}

		if !entry.IsExtended() {
			partition, _ := root.Partition(index)
			partitions = append(partitions, partition)
			continue
		}

		offset := uint64(entry.FirstLBA)
		firstEBR, err := mbr.TryToInitialize(src, offset)
		if err != nil {
			klog.V(3).InfoS("skipping unreadable extended partition", "entry", index, "block", offset, "err", err)
			report.SkippedSlots++
			continue
		}

		if partitions, err = walkChain(src, firstEBR, partitions, &report); err != nil {
			return nil, report, err
		}
	}

	return parttable.New(partitions), report, nil
}

// linkEntry returns the first extended entry after the logical partition entry.
func linkEntry(ebr *mbr.Table) mbr.PartEntry {
	entries := ebr.Entries()
	for _, entry := range entries[1:] {
		if entry.IsExtended() {
			return entry
		}
	}
	return entries[1]
}

// walkChain appends logical partitions of the chain starting at ebr.
// Link offsets accumulate: each next link is at the current link's block
// plus the raw start of its second entry.
func walkChain(src source.Source, ebr *mbr.Table, partitions []parttable.Partition, report *Report) ([]parttable.Partition, error) {
	for links := 1; ; links++ {
		currentOffset := ebr.BlockOffset()

		if count := ebr.PartitionsCount(); count > 2 {
			return nil, fmt.Errorf("EBR at block %v has %v entries; %w", currentOffset, count, parttable.ErrCorruption)
		}

		logical, found := ebr.Partition(0)
		if !found {
			return nil, fmt.Errorf("EBR at block %v has no logical partition; %w", currentOffset, parttable.ErrCorruption)
		}

		partitions = append(partitions, logical)
		report.Links++
		klog.V(5).InfoS("logical partition found", "ebr", currentOffset, "start", logical.StartBlock, "end", logical.EndBlock, "type", logical.Type)

		switch {
		case !ebr.ContainsEBR():
			return partitions, nil
		case links == MaxChainLinks:
			klog.V(3).InfoS("EBR chain truncated", "ebr", currentOffset, "limit", MaxChainLinks)
			report.Truncated = true
			return partitions, nil
		}

		// A zero link start points back at this EBR; the link limit ends such cycles.
		next := currentOffset + uint64(linkEntry(ebr).FirstLBA)
		nextEBR, err := mbr.TryToInitialize(src, next)
		if err != nil {
			// Unreadable next link ends the chain; collected partitions are kept.
			klog.V(3).InfoS("EBR chain ended by read failure", "ebr", currentOffset, "next", next, "err", err)
			report.ReadFailures++
			return partitions, nil
		}
		ebr = nextEBR
	}
}
