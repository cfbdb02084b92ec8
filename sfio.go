/*
 * sfio.go, part of sfio
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
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// File owns a byte-stream handle, a monotonically advancing scan cursor
// and a registry of named section byte offsets. The registry is populated
// incrementally by a format handler's scan pass. A File is not safe for
// concurrent use without external serialization.
type File struct {
	Name       string
	Scanned    int64 //bytes consumed by the scan pass so far
	AllowCache bool
	Handler    Format

	sections map[string][]int64
	open     func() (io.ReadSeekCloser, error)
}

// NewFile prepares a file for scanning. The opener is selected by the
// filename suffix: .gz and .zst streams are decompressed transparently,
// with forward-seek emulation.
func NewFile(name string) *File {
	f := &File{
		Name:       name,
		AllowCache: true,
		sections:   make(map[string][]int64),
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		f.open = func() (io.ReadSeekCloser, error) {
			return newRewinder(func() (io.ReadCloser, error) { return openGzip(name) }), nil
		}
	case strings.HasSuffix(name, ".zst"):
		f.open = func() (io.ReadSeekCloser, error) {
			return newRewinder(func() (io.ReadCloser, error) { return openZstd(name) }), nil
		}
	default:
		f.open = func() (io.ReadSeekCloser, error) { return os.Open(name) }
	}
	return f
}

// Open returns a fresh handle to the byte stream. Each materialization of
// a Section opens its own handle; no handle is shared across calls.
func (f *File) Open() (io.ReadSeekCloser, error) {
	return f.open()
}

// Size returns the total number of bytes in the (decompressed) stream.
func (f *File) Size() (int64, error) {
	h, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer h.Close()
	return h.Seek(0, io.SeekEnd)
}

// SectionNames lists the registered section names.
func (f *File) SectionNames() []string {
	names := make([]string, 0, len(f.sections))
	for k := range f.sections {
		names = append(names, k)
	}
	return names
}

// Offsets returns a copy of the recorded byte offsets for a section name.
// Even length means all ranges are closed; an odd length means the last
// range is still open and extends to the scan cursor.
func (f *File) Offsets(name string) []int64 {
	src := f.sections[name]
	out := make([]int64, len(src))
	copy(out, src)
	return out
}

func (f *File) restore(scanned int64, sections map[string][]int64) {
	f.Scanned = scanned
	for k, v := range sections {
		f.sections[k] = v
	}
}

// -----------------------------------------------

//transparent decompression, suffix-selected like the stf writers

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openGzip(name string) (io.ReadCloser, error) {
	raw, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(raw)
	if err != nil {
		raw.Close()
		return nil, err
	}
	return &multiCloser{Reader: gz, closers: []io.Closer{gz, raw}}, nil
}

func openZstd(name string) (io.ReadCloser, error) {
	raw, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(raw)
	if err != nil {
		raw.Close()
		return nil, err
	}
	return &multiCloser{Reader: dec.IOReadCloser(), closers: []io.Closer{dec.IOReadCloser(), raw}}, nil
}

// rewinder adds Seek on top of a restartable forward-only stream by
// reopening and discarding. Backward seeks restart the stream; this favors
// random-access correctness over throughput.
type rewinder struct {
	reopen func() (io.ReadCloser, error)
	r      io.ReadCloser
	pos    int64
}

func newRewinder(reopen func() (io.ReadCloser, error)) *rewinder {
	return &rewinder{reopen: reopen}
}

func (rw *rewinder) Read(p []byte) (int, error) {
	if rw.r == nil {
		r, err := rw.reopen()
		if err != nil {
			return 0, err
		}
		rw.r = r
	}
	n, err := rw.r.Read(p)
	rw.pos += int64(n)
	return n, err
}

func (rw *rewinder) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = rw.pos + offset
	case io.SeekEnd:
		//size is only known after draining the stream
		if _, err := io.Copy(io.Discard, rw); err != nil {
			return rw.pos, err
		}
		target = rw.pos + offset
	default:
		return rw.pos, fmt.Errorf("sfio: bad seek whence %d", whence)
	}
	if target < 0 {
		return rw.pos, fmt.Errorf("sfio: negative seek position %d", target)
	}
	if target < rw.pos {
		if rw.r != nil {
			rw.r.Close()
			rw.r = nil
		}
		rw.pos = 0
	}
	if target > rw.pos {
		if _, err := io.CopyN(io.Discard, rw, target-rw.pos); err != nil && err != io.EOF {
			return rw.pos, err
		}
	}
	return rw.pos, nil
}

func (rw *rewinder) Close() error {
	if rw.r == nil {
		return nil
	}
	err := rw.r.Close()
	rw.r = nil
	return err
}

// -----------------------------------------------

//format registry, one entry per supported file format

var formats = map[string]func(string) (Format, error){}

// RegisterFormat maps a format name and its filename extensions to a
// handler constructor. Format packages call this from init.
func RegisterFormat(name string, open func(string) (Format, error), exts ...string) {
	formats[name] = open
	for _, e := range exts {
		formats[e] = open
	}
}

func handlerFor(path, filetype string) (func(string) (Format, error), error) {
	key := strings.ToLower(strings.TrimSpace(filetype))
	if key == "" {
		base := path
		for _, z := range []string{".gz", ".zst"} {
			base = strings.TrimSuffix(base, z)
		}
		key = strings.ToLower(filepath.Ext(base))
	}
	open, ok := formats[key]
	if !ok {
		open, ok = formats["."+key]
	}
	if !ok {
		return nil, newValueError(fmt.Sprintf("unknown filetype '%s'", key))
	}
	return open, nil
}

// Init constructs the handler for a file without scanning it. An empty
// filetype selects the handler by filename extension. The handler is
// attached to its File so sections can delegate parsing back to it.
func Init(path, filetype string) (Format, error) {
	open, err := handlerFor(path, filetype)
	if err != nil {
		return nil, errDecorate(err, "Init")
	}
	h, err := open(path)
	if err != nil {
		return nil, errDecorate(err, "Init")
	}
	h.File().Handler = h
	return h, nil
}

//a scan slower than this gets its section registry cached on disk
const cacheWriteThreshold = 8 * time.Second

// Read constructs the handler for a file and scans it, restoring the
// section registry from a sibling cache file when one is readable, and
// persisting the registry after a scan that was slow enough to be worth
// skipping next time.
func Read(path, filetype string) (Format, error) {
	h, err := Init(path, filetype)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	f := h.File()
	if f.loadCache() {
		log.Printf("sfio: read section registry from cache '%s'", filepath.Base(cachePath(f.Name)))
	}
	t0 := time.Now()
	if err := h.Scan(); err != nil {
		return nil, errDecorate(err, "Read")
	}
	if elapsed := time.Since(t0); elapsed > cacheWriteThreshold && f.AllowCache {
		if err := f.writeCache(); err == nil {
			log.Printf("sfio: scan took %.1fs, wrote cache '%s'",
				elapsed.Seconds(), filepath.Base(cachePath(f.Name)))
		}
	}
	return h, nil
}
