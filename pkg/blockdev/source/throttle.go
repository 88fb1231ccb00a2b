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

package source

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledSource limits the rate of block reads of an underlying source.
type ThrottledSource struct {
	ctx     context.Context
	source  Source
	limiter *rate.Limiter
}

// NewThrottledSource wraps source allowing blocksPerSecond reads with given burst.
// Reads waiting on the limiter fail once ctx is done.
func NewThrottledSource(ctx context.Context, source Source, blocksPerSecond float64, burst int) *ThrottledSource {
	if burst < 1 {
		burst = 1
	}
	return &ThrottledSource{
		ctx:     ctx,
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(blocksPerSecond), burst),
	}
}

// ReadBlock waits for the limiter and reads block.
func (t *ThrottledSource) ReadBlock(block uint64) ([]byte, error) {
	if err := t.limiter.Wait(t.ctx); err != nil {
		return nil, readFailure("throttled source", block, err)
	}
	return t.source.ReadBlock(block)
}

// BlockCount returns block count of underlying source.
func (t *ThrottledSource) BlockCount() uint64 {
	return t.source.BlockCount()
}

// Close closes underlying source.
func (t *ThrottledSource) Close() error {
	return t.source.Close()
}
