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

// Package ellipsis expands device name patterns like /dev/sd{a...d} or
// /images/disk{1...8}.img into device lists.
package ellipsis

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	letterRegexp = regexp.MustCompile("^[a-z]+$")

	errNoEllipsis = errors.New("no ellipsis")
)

// letters2num converts base-26 letter sequence to number i.e. a=1, z=26, aa=27.
func letters2num(value string) (n uint64) {
	for _, c := range value {
		n = n*26 + uint64(c-'a'+1)
	}
	return n
}

func num2letters(n uint64) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}

// segment is a literal text when values is empty.
type segment struct {
	text   string
	values []string
}

type bound struct {
	value    uint64
	isLetter bool
}

func parseBound(value string) (b bound, err error) {
	if b.value, err = strconv.ParseUint(value, 10, 64); err == nil {
		return b, nil
	}
	if letterRegexp.MatchString(value) {
		return bound{value: letters2num(value), isLetter: true}, nil
	}
	return b, err
}

func parseRange(pattern string) ([]string, error) {
	tokens := strings.Split(strings.TrimSuffix(strings.TrimPrefix(pattern, "{"), "}"), "...")
	if len(tokens) != 2 {
		return nil, errNoEllipsis
	}

	start, err := parseBound(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("invalid start value '%v'", tokens[0])
	}
	end, err := parseBound(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("invalid end value '%v'", tokens[1])
	}
	if start.isLetter != end.isLetter {
		return nil, errors.New("start/end must be same kind")
	}
	if start.value > end.value {
		start, end = end, start
	}

	var values []string
	for n := start.value; n <= end.value; n++ {
		if start.isLetter {
			values = append(values, num2letters(n))
		} else {
			values = append(values, strconv.FormatUint(n, 10))
		}
		if n == end.value {
			break
		}
	}
	return values, nil
}

func parse(arg string) (segments []segment, err error) {
	textStart, openAt := 0, -1
	for i, c := range arg {
		switch c {
		case '{':
			if openAt >= 0 {
				return nil, fmt.Errorf("%v: nested ellipsis pattern at %v", arg, i+1)
			}
			openAt = i
		case '}':
			if openAt < 0 {
				return nil, fmt.Errorf("%v: invalid ellipsis pattern at %v", arg, i+1)
			}
			values, err := parseRange(arg[openAt : i+1])
			if err != nil {
				return nil, fmt.Errorf("%v: invalid ellipsis %v at %v; %v", arg, arg[openAt:i+1], openAt, err)
			}
			if openAt > textStart {
				segments = append(segments, segment{text: arg[textStart:openAt]})
			}
			segments = append(segments, segment{values: values})
			textStart, openAt = i+1, -1
		}
	}
	if openAt >= 0 {
		return nil, fmt.Errorf("%v: unterminated ellipsis pattern at %v", arg, openAt+1)
	}
	if textStart < len(arg) {
		segments = append(segments, segment{text: arg[textStart:]})
	}
	return segments, nil
}

// Expand expands all ellipses in arg. The rightmost ellipsis varies fastest.
func Expand(arg string) ([]string, error) {
	segments, err := parse(arg)
	if err != nil {
		return nil, err
	}

	result := []string{""}
	for _, seg := range segments {
		if seg.values == nil {
			for i := range result {
				result[i] += seg.text
			}
			continue
		}

		expanded := make([]string, 0, len(result)*len(seg.values))
		for _, prefix := range result {
			for _, value := range seg.values {
				expanded = append(expanded, prefix+value)
			}
		}
		result = expanded
	}
	return result, nil
}

// ExpandAll expands each argument and returns them in order.
func ExpandAll(args []string) (result []string, err error) {
	for _, arg := range args {
		values, err := Expand(arg)
		if err != nil {
			return nil, err
		}
		result = append(result, values...)
	}
	return result, nil
}
