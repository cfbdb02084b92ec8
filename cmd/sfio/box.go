/*
 * box.go, part of sfio
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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hyiprc/sfio/box"
)

func boxCmd() *cli.Command {
	var (
		typ    string
		report string
	)

	return &cli.Command{
		Name:      "box",
		Usage:     "Convert a simulation cell between representations",
		ArgsUsage: "VALUES...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "input representation (basis, lattice, dcd, lmpdata, lmpdump, vmd, poscar, vasp); guessed when omitted",
				Destination: &typ,
			},
			&cli.StringFlag{
				Name:        "report",
				Aliases:     []string{"r"},
				Usage:       "output representation, or 'all'",
				Value:       "all",
				Destination: &report,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			_ = ctx
			args := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(args) == "" {
				return cli.Exit("error: no box values given", 1)
			}
			b := box.New()
			applied, err := b.SetString(args, typ)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			fmt.Printf("input (%s): %s\n%s\n", applied, args, b.Report(report))
			return nil
		},
	}
}
