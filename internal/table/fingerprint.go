package table

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Cell type tags for the canonical row encoding.
const (
	tagMissing byte = iota
	tagInt
	tagFloat
	tagString
	tagOther
)

// AppendKey appends a canonical, unambiguous encoding of row to dst. Two rows
// produce the same key exactly when RowsEqual reports them equal.
func AppendKey(dst []byte, row []any) []byte {
	for _, v := range row {
		if IsMissing(v) {
			dst = append(dst, tagMissing)
			continue
		}
		switch x := v.(type) {
		case int64:
			dst = append(dst, tagInt)
			dst = binary.LittleEndian.AppendUint64(dst, uint64(x))
		case float64:
			if x == 0 {
				x = 0 // fold -0 into +0
			}
			dst = append(dst, tagFloat)
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(x))
		case string:
			dst = append(dst, tagString)
			dst = binary.AppendUvarint(dst, uint64(len(x)))
			dst = append(dst, x...)
		default:
			s := Format(x)
			dst = append(dst, tagOther)
			dst = binary.AppendUvarint(dst, uint64(len(s)))
			dst = append(dst, s...)
		}
	}
	return dst
}

// Fingerprint hashes a row's canonical encoding with xxh3-128. buf is scratch
// space that is reused across calls; the grown buffer is returned.
func Fingerprint(buf []byte, row []any) (xxh3.Uint128, []byte) {
	buf = AppendKey(buf[:0], row)
	return xxh3.Hash128(buf), buf
}

// RowsEqual reports whether two rows hold the same values cell by cell.
// Missing cells compare equal to each other.
func RowsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		am, bm := IsMissing(a[i]), IsMissing(b[i])
		if am || bm {
			if am != bm {
				return false
			}
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
