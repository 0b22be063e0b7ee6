package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// header matches the layout produced by the original spreadsheet workflow,
// so existing logs keep loading.
var header = []string{
	"タイムスタンプ",
	"ユーザーID",
	"ユーザー名",
	"メッセージタイプ",
	"メッセージ内容",
	"返信ステータス",
	"マネタイズ機会",
	"備考",
}

// CSVRecorder persists records to an append-only CSV file.
// A single mutex serializes appends so concurrent events cannot
// interleave rows; the header is written once, before the first row.
type CSVRecorder struct {
	path string
	mu   sync.Mutex
}

func NewCSVRecorder(path string) (*CSVRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure data dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to init csv file: %w", err)
	}
	_ = f.Close()
	return &CSVRecorder{path: path}, nil
}

// Path returns the location of the underlying CSV file.
func (r *CSVRecorder) Path() string { return r.path }

func (r *CSVRecorder) Append(record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(record.row()); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (r *CSVRecorder) LoadAll() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open read: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		if first[i] != col {
			return nil, fmt.Errorf("unexpected header column %d: %q", i, first[i])
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rec, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (rec Record) row() []string {
	return []string{
		rec.Timestamp.Format(timeLayout),
		rec.UserID,
		rec.UserName,
		rec.EventKind,
		rec.Content,
		string(rec.ReplyStatus),
		string(rec.Monetization),
		rec.Note,
	}
}

func fromRow(row []string) (Record, error) {
	ts, err := time.ParseInLocation(timeLayout, row[0], time.Local)
	if err != nil {
		return Record{}, fmt.Errorf("parse timestamp %q: %w", row[0], err)
	}
	return Record{
		Timestamp:    ts,
		UserID:       row[1],
		UserName:     row[2],
		EventKind:    row[3],
		Content:      row[4],
		ReplyStatus:  ReplyStatus(row[5]),
		Monetization: Monetization(row[6]),
		Note:         row[7],
	}, nil
}
