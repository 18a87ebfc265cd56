// Package csv はデバイスとRADIUSクライアントのCSV入出力を提供する。
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// layout はCSVファイルの列構成。
// 先頭required列は必須で、以降の列は省略できる。
type layout struct {
	header   []string
	required int
	// keyName は重複検出に使う列の表示名。
	keyName string
}

// row は1行分のレコード。欠けている任意列は空文字として読める。
type row []string

func (r row) col(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

func (l layout) checkHeader(header []string) error {
	if len(header) < l.required {
		return fmt.Errorf("invalid header: expected at least %d columns (%s)",
			l.required, strings.Join(l.header[:l.required], ", "))
	}
	for i, got := range header {
		if i >= len(l.header) {
			break
		}
		if strings.ToLower(strings.TrimSpace(got)) != l.header[i] {
			return fmt.Errorf("invalid header: expected '%s' at column %d, got '%s'", l.header[i], i+1, got)
		}
	}
	return nil
}

// parseAll はヘッダーを検証した上で全行をparseに渡す。
// 不正な行はエラーに積んで読み飛ばし、有効な行だけを返す。
// keyが同じ行は最初の行だけを採用する。
func parseAll[T any](r io.Reader, l layout, parse func(row) (T, []error), key func(T) string) ([]T, []error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}
	if err := l.checkHeader(header); err != nil {
		return nil, []error{err}
	}

	var items []T
	var errs []error
	seen := make(map[string]int)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(record) < l.required {
			errs = append(errs, fmt.Errorf("line %d: expected at least %d columns, got %d", line, l.required, len(record)))
			continue
		}

		item, rowErrs := parse(row(record))
		if len(rowErrs) > 0 {
			for _, e := range rowErrs {
				errs = append(errs, fmt.Errorf("line %d: %w", line, e))
			}
			continue
		}

		k := key(item)
		if first, ok := seen[k]; ok {
			errs = append(errs, fmt.Errorf("line %d: duplicate %s %s (first seen on line %d)", line, l.keyName, k, first))
			continue
		}
		seen[k] = line
		items = append(items, item)
	}

	return items, errs
}

// writeAll はヘッダーとitemsをCSVとして書き込む。
func writeAll[T any](w io.Writer, l layout, items []T, record func(T) []string, key func(T) string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(l.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, item := range items {
		if err := writer.Write(record(item)); err != nil {
			return fmt.Errorf("failed to write record for %s %s: %w", l.keyName, key(item), err)
		}
	}

	writer.Flush()
	return writer.Error()
}
