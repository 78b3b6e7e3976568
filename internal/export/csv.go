package export

import (
	"bytes"
	"io"
	"strings"
)

// CSV renders the flattened pairs as a header line and one data line, each
// terminated by "\n". Every data field is quoted with embedded quotes
// doubled. Header keys are quoted only when they would otherwise break the row.
func CSV(pairs []Pair) []byte {
	var buf bytes.Buffer
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if strings.ContainsAny(p.Key, ",\"\r\n") {
			buf.WriteString(quote(p.Key))
		} else {
			buf.WriteString(p.Key)
		}
	}
	buf.WriteByte('\n')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quote(p.Value))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// WriteCSV writes CSV(Flatten(n)) to w.
func WriteCSV(w io.Writer, n Node) error {
	_, err := w.Write(CSV(Flatten(n)))
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
