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

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/hyiprc/sfio"
	_ "github.com/hyiprc/sfio/dcd"
	_ "github.com/hyiprc/sfio/lmpdata"
	_ "github.com/hyiprc/sfio/lmpdump"
	_ "github.com/hyiprc/sfio/yaml"
)

func scanCmd() *cli.Command {
	var (
		path     string
		filetype string
		verbose  bool
	)

	return &cli.Command{
		Name:  "scan",
		Usage: "Scan a file and show its section registry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the file to scan",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "file type (lmpdump, lmpdata, dcd, yaml); from the extension when omitted",
				Destination: &filetype,
			},
			&cli.BoolFlag{
				Name:        "offsets",
				Usage:       "show the byte offsets of every instance",
				Destination: &verbose,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx
			h, err := sfio.Read(path, filetype)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			f := h.File()

			fmt.Printf("%s  scanned %d bytes\n", f.Name, f.Scanned)
			names := f.SectionNames()
			sort.Strings(names)
			for _, name := range names {
				offs := f.Offsets(name)
				n := (len(offs) + 1) / 2
				fmt.Printf("%-12s %d instance(s)\n", name, n)
				if verbose {
					for i := 0; i+1 < len(offs); i += 2 {
						fmt.Printf("  [%d, %d)\n", offs[i], offs[i+1])
					}
					if len(offs)%2 == 1 {
						fmt.Printf("  [%d, %d)  open\n", offs[len(offs)-1], f.Scanned)
					}
				}
			}

			frames := f.Frames()
			if n := frames.Len(); n > 0 {
				fmt.Printf("%d frame(s)\n", n)
			}
			return nil
		},
	}
}
