/*
 * scan.go, part of sfio
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package sfio

import (
	"bytes"
	"io"
)

//DefaultChunkSize is the target chunk size of SearchInFile.
const DefaultChunkSize = 1 << 20

// SearchInFile scans the stream chunk by chunk from the seek position,
// looking for the byte patterns. A match is an occurrence of a pattern
// anywhere in a line; the reported offset is where that line begins.
// Returns, per pattern, the ordered de-duplicated offsets, plus the
// stream position reached.
//
// Each chunk read begins longest-pattern-1 bytes before the unresolved
// tail of the previous chunk, so no boundary-spanning match is missed;
// duplicates produced by the overlap are dropped keeping first-seen
// order. Memory use is bounded by the chunk size, which is inflated to a
// multiple exceeding the longest pattern's length.
func SearchInFile(r io.ReadSeeker, patterns [][]byte, seek int64, bufsize int) ([][]int64, int64, error) {
	if bufsize <= 0 {
		bufsize = DefaultChunkSize
	}
	overlap := 0
	for _, p := range patterns {
		if len(p) > overlap {
			overlap = len(p)
		}
	}
	if overlap == 0 {
		return make([][]int64, len(patterns)), seek, nil
	}
	bufsize = bufsize * (overlap/bufsize + 1)

	matches := make([][]int64, len(patterns))
	seen := make([]map[int64]bool, len(patterns))
	for i := range seen {
		seen[i] = make(map[int64]bool)
	}

	if _, err := r.Seek(seek, io.SeekStart); err != nil {
		return nil, seek, err
	}
	buf := make([]byte, bufsize)
	lastStart := seek
	lineStart := seek //start of the line that is open at the chunk boundary
	for {
		n, err := io.ReadFull(r, buf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, lastStart, err
		}
		chunk := buf[:n]
		for pi, pat := range patterns {
			off := 0
			for {
				j := bytes.Index(chunk[off:], pat)
				if j < 0 {
					break
				}
				k := off + j
				var ls int64
				if nl := bytes.LastIndexByte(chunk[:k], '\n'); nl >= 0 {
					ls = lastStart + int64(nl) + 1
				} else {
					ls = lineStart
				}
				if !seen[pi][ls] {
					seen[pi][ls] = true
					matches[pi] = append(matches[pi], ls)
				}
				off = k + 1
			}
		}
		end := lastStart + int64(n)
		nextStart := end - int64(overlap) + 1
		if nextStart <= lastStart {
			return matches, end, nil
		}
		//carry the open line start across the boundary
		cut := int(nextStart - lastStart)
		if nl := bytes.LastIndexByte(chunk[:cut], '\n'); nl >= 0 {
			lineStart = lastStart + int64(nl) + 1
		}
		if _, err := r.Seek(nextStart, io.SeekStart); err != nil {
			return nil, lastStart, err
		}
		lastStart = nextStart
	}
}
