package table

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Fingerprint returns a 64-bit xxh3 digest over the schema and every cell of
// t, in order. Two tables with the same columns, kinds and values hash equal.
//
// Each value is written with a one-byte type tag so that, e.g., int64(1) and
// "1" do not collide.
func Fingerprint(t *Table) uint64 {
	h := xxh3.New()
	var num [8]byte

	for _, c := range t.Columns {
		h.WriteString(c.Name)
		h.Write([]byte{0, byte(c.Kind)})
	}
	for _, row := range t.Rows {
		h.Write([]byte{'\n'})
		for _, v := range row {
			switch x := v.(type) {
			case nil:
				h.Write([]byte{'n'})
			case int64:
				h.Write([]byte{'i'})
				binary.LittleEndian.PutUint64(num[:], uint64(x))
				h.Write(num[:])
			case float64:
				h.Write([]byte{'f'})
				binary.LittleEndian.PutUint64(num[:], math.Float64bits(x))
				h.Write(num[:])
			case bool:
				if x {
					h.Write([]byte{'t'})
				} else {
					h.Write([]byte{'F'})
				}
			case string:
				h.Write([]byte{'s'})
				binary.LittleEndian.PutUint64(num[:], uint64(len(x)))
				h.Write(num[:])
				h.WriteString(x)
			default:
				h.Write([]byte{'?'})
			}
		}
	}
	return h.Sum64()
}
