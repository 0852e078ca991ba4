package recsplit

import (
	"strconv"
	"strings"
)

// PREVIEW_LIMIT is the last byte index rendered by Preview.
const PREVIEW_LIMIT = 101

// Preview renders b for diagnostics as "[N bytes] 0: b0|1: b1|...".
// Buffers longer than PREVIEW_LIMIT+1 bytes are cut short with " ...".
func Preview(b []byte) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(strconv.Itoa(len(b)))
	sb.WriteString(" bytes]")

	for i, c := range b {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte('|')
		}
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(": ")
		sb.WriteString(strconv.Itoa(int(c)))

		if i >= PREVIEW_LIMIT && i < len(b)-1 {
			sb.WriteString(" ...")
			break
		}
	}
	return sb.String()
}
