/*
 * doc.go, part of sfio
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

/*Package sfio reads large, semi-structured scientific data files lazily.
A format handler makes one forward pass over a file, marking named byte-range
"sections" (header, box, atoms, frame, ...) in a per-file registry; nothing is
parsed until a section is queried, and queries materialize only the bytes of
the requested range. Multi-frame trajectory files get a sliceable frame view
on top of the registry.

	  f, err := sfio.Read("gold_fcc.dump", "")
	  ...
	  frames := f.File().Frames()
	  last, err := frames.Frame(-1)
	  res, err := last.Parse(sfio.ShapeBox)

Registries survive across runs through a sibling cache file, written after
scans slow enough to be worth skipping, and discarded silently when stale or
unreadable. Format handlers live in the subpackages (lmpdump, lmpdata, dcd,
yaml); the box subpackage models triclinic simulation cells, and fortran
reads length-delimited binary blocks.
*/
package sfio
