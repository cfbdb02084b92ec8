/*
 * yaml.go, part of sfio
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

/*Package yaml handles YAML files. Small configuration files gain nothing
from lazy sections, so the scan marks the whole file as one "file"
section and parsing decodes it in one go. Caching is off; decoding is
cheaper than reading a cache would be.
*/
package yaml

import (
	"fmt"
	"io"

	"github.com/hyiprc/sfio"
	goyaml "gopkg.in/yaml.v3"
)

func init() {
	sfio.RegisterFormat("yaml",
		func(p string) (sfio.Format, error) { return New(p), nil },
		".yaml", ".yml")
}

// Yaml is the YAML file handler.
type Yaml struct {
	f *sfio.File
}

// New prepares a handler for a yaml file without reading it.
func New(path string) *Yaml {
	y := &Yaml{f: sfio.NewFile(path)}
	y.f.AllowCache = false
	y.f.Handler = y
	return y
}

// File returns the underlying file and its section registry.
func (y *Yaml) File() *sfio.File { return y.f }

// Scan marks the whole file as a single section.
func (y *Yaml) Scan() error {
	if y.f.Scanned > 0 {
		return nil
	}
	size, err := y.f.Size()
	if err != nil {
		return err
	}
	y.f.StartSection("file")
	y.f.Scanned = size
	y.f.EndSection("file")
	return nil
}

// Parse decodes the section as a YAML mapping.
func (y *Yaml) Parse(s *sfio.Section, shape sfio.Shape) (*sfio.Result, error) {
	if shape == sfio.ShapeText {
		return &sfio.Result{Text: s.Text()}, nil
	}
	raw, err := s.Raw()
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := goyaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return &sfio.Result{Map: out}, nil
}

// Write encodes a mapping as YAML.
func Write(w io.Writer, data map[string]any) error {
	enc := goyaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
