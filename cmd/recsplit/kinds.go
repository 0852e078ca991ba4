package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oy3o/recsplit"
	"github.com/oy3o/recsplit/records"
)

// kind binds a CLI name to one record kind's generic operations.
type kind struct {
	name   string
	usage  string
	length func(*recsplit.Registry) (int, error)
	split  func(*recsplit.Registry, []byte, io.Writer) error
	encode func(*recsplit.Registry, []string) ([]byte, error)
}

func newKind[T any, PT recsplit.Record[T]](name, usage string, parse func(string) (T, error)) kind {
	return kind{
		name:   name,
		usage:  usage,
		length: recsplit.EncodedLength[T, PT],
		split: func(r *recsplit.Registry, buf []byte, w io.Writer) error {
			res, err := recsplit.Split[T, PT](r, buf)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "record size: %d\n", res.EncodedLength)
			fmt.Fprintf(w, "remainder: %s\n", recsplit.Preview(res.Remainder))
			fmt.Fprintf(w, "records: %d\n", len(res.Records))
			for i, rec := range res.Records {
				fmt.Fprintf(w, "%d: %v\n", i, rec)
			}
			return nil
		},
		encode: func(r *recsplit.Registry, args []string) ([]byte, error) {
			recs := make([]T, 0, len(args))
			for _, arg := range args {
				rec, err := parse(arg)
				if err != nil {
					return nil, fmt.Errorf("parse %q as %s: %w", arg, name, err)
				}
				recs = append(recs, rec)
			}
			return recsplit.Join[T, PT](r, recs)
		},
	}
}

var kinds = map[string]kind{
	"point": newKind[records.Point]("point", "x,y,z,thickness", parsePoint),
	"beat":  newKind[records.Beat]("beat", "slice,tempo,atMillis[,flags]", parseBeat),
	"u32":   newKind[recsplit.Fixed[uint32]]("u32", "unsigned 32-bit integer", parseUint[uint32](32)),
	"u64":   newKind[recsplit.Fixed[uint64]]("u64", "unsigned 64-bit integer", parseUint[uint64](64)),
}

func lookupKind(name string) (kind, error) {
	k, ok := kinds[name]
	if !ok {
		return kind{}, fmt.Errorf("unknown kind %q (known: %s)", name, strings.Join(kindNames(), ", "))
	}
	return k, nil
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newKindsCmd(reg func() *recsplit.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List known record kinds and their encoded length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range kindNames() {
				k := kinds[name]
				n, err := k.length(reg())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-6s %3d bytes  %s\n", name, n, k.usage)
			}
			return nil
		},
	}
}

func parsePoint(s string) (records.Point, error) {
	f, err := parseFloats(s, 4)
	if err != nil {
		return records.Point{}, err
	}
	p := records.Point{X: f[0], Y: f[1], Z: f[2], Thickness: f[3]}
	return p, p.Validate()
}

func parseBeat(s string) (records.Beat, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return records.Beat{}, fmt.Errorf("want 3 or 4 fields, got %d", len(parts))
	}
	slice, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 16)
	if err != nil {
		return records.Beat{}, err
	}
	tempo, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return records.Beat{}, err
	}
	at, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return records.Beat{}, err
	}
	var flags uint64
	if len(parts) == 4 {
		if flags, err = strconv.ParseUint(strings.TrimSpace(parts[3]), 0, 16); err != nil {
			return records.Beat{}, err
		}
	}
	return records.NewBeat(uint16(slice), float32(tempo), at, uint16(flags)), nil
}

func parseUint[U uint32 | uint64](bits int) func(string) (recsplit.Fixed[U], error) {
	return func(s string) (recsplit.Fixed[U], error) {
		v, err := strconv.ParseUint(strings.TrimSpace(s), 0, bits)
		if err != nil {
			return recsplit.Fixed[U]{}, err
		}
		return recsplit.Fixed[U]{Payload: U(v)}, nil
	}
}

func parseFloats(s string, fields int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != fields {
		return nil, fmt.Errorf("want %d fields, got %d", fields, len(parts))
	}
	out := make([]float32, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
