// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"golang.org/x/exp/maps"

	icc "github.com/colorforge-go/icc"
)

var verbose = flag.Bool("v", false, "verbose output")

func main() {
	flag.Parse()
	for _, fname := range flag.Args() {
		if err := show(fname); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fname, err)
		}
	}
}

func show(fname string) error {
	body, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	raw, err := icc.DecodeRawProfile(body)
	if err != nil {
		return err
	}
	if !*verbose {
		fmt.Printf("%-8s %-25s %6d bytes  %s\n", raw.Version, raw.ProfileClass, len(body), fname)
		return nil
	}

	fmt.Printf("Profile: %s\n", fname)
	if raw.PreferredCMMType != 0 {
		fmt.Printf("  PreferredCMMType: %s\n", tag(raw.PreferredCMMType))
	}
	fmt.Printf("  Version: %s\n", raw.Version)
	fmt.Printf("  Class: %s\n", raw.ProfileClass)
	fmt.Printf("  ColorSpace: %s\n", raw.ColorSpace)
	fmt.Printf("  PCS: %s\n", raw.PCS)
	if raw.Platform != 0 {
		fmt.Printf("  Platform: %s\n", tag(raw.Platform))
	}
	if raw.Flags != 0 {
		fmt.Printf("  Flags: %08X\n", raw.Flags)
	}
	if raw.DeviceManufacturer != 0 {
		fmt.Printf("  DeviceManufacturer: %s\n", tag(raw.DeviceManufacturer))
	}
	if raw.DeviceModel != 0 {
		fmt.Printf("  DeviceModel: %s\n", tag(raw.DeviceModel))
	}
	if raw.DeviceAttributes != 0 {
		fmt.Printf("  DeviceAttributes: %08X %08X\n",
			uint32(raw.DeviceAttributes>>32), uint32(raw.DeviceAttributes))
	}
	fmt.Printf("  RenderingIntent: %s\n", raw.RenderingIntent)
	if raw.Creator != 0 {
		fmt.Printf("  Creator: %s\n", tag(raw.Creator))
	}

	fmt.Println()

	tags := maps.Keys(raw.TagTable)
	slices.Sort(tags)
	for _, t := range tags {
		data := raw.TagTable[t]
		if t == icc.TagCopyright {
			fmt.Printf("  %s: (%d bytes)\n", t, len(data))
			mluc, err := icc.DecodeMultiLocalizedUnicode(data)
			if err != nil {
				return err
			}
			for _, lu := range mluc.Records {
				fmt.Printf("    [%s_%s] %s\n", lu.Language, lu.Country, lu.Text)
			}
			continue
		}
		sig := uint32(0)
		if len(data) >= 4 {
			sig = uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		}
		fmt.Printf("  %s: %s (%d bytes)\n", t, tag(sig), len(data))
	}

	profile, err := icc.BuildProfile(raw)
	if err != nil {
		fmt.Printf("\n  (structured profile unavailable: %v)\n", err)
		return nil
	}
	fmt.Println()
	fmt.Printf("  HasFullMatrixShaper: %v\n", profile.HasFullMatrixShaper())
	if profile.HasCICP {
		fmt.Printf("  CICP: primaries=%d transfer=%d matrix=%d full_range=%v\n",
			profile.CICP.Primaries, profile.CICP.Transfer, profile.CICP.Matrix, profile.CICP.FullRange)
	}

	fmt.Println()
	return nil
}

func tag(x uint32) string {
	a := fmt.Sprintf("%08X", x)

	bb := []byte{
		byte(x >> 24),
		byte(x >> 16),
		byte(x >> 8),
		byte(x),
	}
	isASCII := true
	for _, c := range bb {
		if c < 0x20 || c > 0x7E {
			isASCII = false
			break
		}
	}
	if isASCII {
		return fmt.Sprintf("%s %q", a, bb)
	}
	return a
}
