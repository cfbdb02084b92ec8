/*
 * cache.go, part of sfio
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
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// cacheData is the on-disk shape of a section registry snapshot.
type cacheData struct {
	Scanned  int64              `json:"scanned"`
	Sections map[string][]int64 `json:"sections"`
}

// cachePath returns the sibling cache file of a scanned file.
func cachePath(name string) string {
	dir, base := filepath.Split(name)
	return filepath.Join(dir, "_"+base+".cache")
}

// loadCache opportunistically restores the registry from the sibling
// cache file. Any read or decode failure is silently ignored and leaves
// the registry empty, which triggers a full rescan.
func (f *File) loadCache() bool {
	raw, err := os.ReadFile(cachePath(f.Name))
	if err != nil {
		return false
	}
	var data cacheData
	if err := json.Unmarshal(raw, &data); err != nil {
		return false
	}
	if data.Sections == nil {
		return false
	}
	f.restore(data.Scanned, data.Sections)
	return true
}

// writeCache persists the registry next to the scanned file.
func (f *File) writeCache() error {
	raw, err := json.Marshal(cacheData{Scanned: f.Scanned, Sections: f.sections})
	if err != nil {
		return err
	}
	return os.WriteFile(cachePath(f.Name), raw, 0o644)
}
