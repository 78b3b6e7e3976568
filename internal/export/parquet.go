package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// Row is one flattened key/value pair in the Parquet export.
type Row struct {
	Key   string `parquet:"key"`
	Value string `parquet:"value"`
}

// WriteParquet writes one row per flattened key, in header order.
func WriteParquet(w io.Writer, n Node) error {
	pairs := Flatten(n)
	rows := make([]Row, len(pairs))
	for i, p := range pairs {
		rows[i] = Row{Key: p.Key, Value: p.Value}
	}

	writer := parquet.NewGenericWriter[Row](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ReadParquet reads back every row written by WriteParquet.
func ReadParquet(r io.ReaderAt, size int64) ([]Row, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	rows := make([]Row, pf.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}
