package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSON renders n with two-space indentation and a trailing newline.
func JSON(n Node) ([]byte, error) {
	compact, err := n.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent report: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteJSON writes JSON(n) to w.
func WriteJSON(w io.Writer, n Node) error {
	data, err := JSON(n)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
