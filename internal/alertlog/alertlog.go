// Package alertlog persists generated alerts in alerts/alerts.csv and keeps
// a recently raised alert from being stored again.
package alertlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caixa-dev/caixa/internal/model"
)

// ErrNotFound is returned by MarkRead for unknown alert IDs.
var ErrNotFound = errors.New("alert not found")

// Record is one stored alert.
type Record struct {
	ID         string
	BusinessID string
	Type       model.AlertType
	Severity   model.Severity
	Message    string
	IsRead     bool
	CreatedAt  time.Time
}

// Header is the CSV header for alerts.csv.
const Header = "id,business_id,type,severity,message,is_read,created_at"

const (
	numFields    = 7
	logFile      = "alerts/alerts.csv"
	colID        = 0
	colBusiness  = 1
	colType      = 2
	colSeverity  = 3
	colMessage   = 4
	colIsRead    = 5
	colCreatedAt = 6
)

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r Record) []string {
	row := make([]string, numFields)
	row[colID] = r.ID
	row[colBusiness] = r.BusinessID
	row[colType] = string(r.Type)
	row[colSeverity] = string(r.Severity)
	row[colMessage] = r.Message
	row[colIsRead] = strconv.FormatBool(r.IsRead)
	row[colCreatedAt] = r.CreatedAt.Format(time.RFC3339)
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(record []string) (Record, error) {
	if len(record) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	isRead, err := strconv.ParseBool(record[colIsRead])
	if err != nil {
		return Record{}, fmt.Errorf("parsing is_read %q: %w", record[colIsRead], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colCreatedAt])
	if err != nil {
		return Record{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	return Record{
		ID:         record[colID],
		BusinessID: record[colBusiness],
		Type:       model.AlertType(record[colType]),
		Severity:   model.Severity(record[colSeverity]),
		Message:    record[colMessage],
		IsRead:     isRead,
		CreatedAt:  ts,
	}, nil
}

// Append writes records to <repoRoot>/alerts/alerts.csv, creating the file
// and header if needed.
func Append(repoRoot string, records []Record) error {
	path := filepath.Join(repoRoot, logFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating alerts dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening alert log: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("checking alert log: %w", err)
	}
	return writeRecords(f, records, fi.Size() == 0)
}

// Read returns all records from <repoRoot>/alerts/alerts.csv, or nil if the
// file does not exist.
func Read(repoRoot string) ([]Record, error) {
	f, err := os.Open(filepath.Join(repoRoot, logFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening alert log: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func rewrite(repoRoot string, records []Record) error {
	path := filepath.Join(repoRoot, logFile)
	tmp, err := os.CreateTemp(filepath.Dir(path), ".alerts-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp alert log: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRecords(tmp, records, true); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp alert log: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing alert log: %w", err)
	}
	return nil
}

func writeRecords(w io.Writer, records []Record, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing alert %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func readRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading alert log CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var records []Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Store applies the deduplication window on top of the alert log.
type Store struct {
	repoRoot string
	window   time.Duration
}

// NewStore creates a Store. A non-positive window means 24 hours.
func NewStore(repoRoot string, window time.Duration) *Store {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Store{repoRoot: repoRoot, window: window}
}

// Save stores each alert unless one of the same business and type was
// created within the window before now. It returns the stored records.
func (s *Store) Save(businessID string, alerts []model.Alert, now time.Time) ([]Record, error) {
	existing, err := Read(s.repoRoot)
	if err != nil {
		return nil, err
	}

	cutoff := now.Add(-s.window)
	recent := make(map[model.AlertType]bool)
	for _, r := range existing {
		if r.BusinessID == businessID && !r.CreatedAt.Before(cutoff) {
			recent[r.Type] = true
		}
	}

	var fresh []Record
	for _, a := range alerts {
		if recent[a.Type] {
			continue
		}
		recent[a.Type] = true
		fresh = append(fresh, Record{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			Type:       a.Type,
			Severity:   a.Severity,
			Message:    a.Message,
			CreatedAt:  now.Truncate(time.Second),
		})
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	if err := Append(s.repoRoot, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Unread returns unread records, newest first.
func (s *Store) Unread() ([]Record, error) {
	records, err := Read(s.repoRoot)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, r := range records {
		if !r.IsRead {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// MarkRead flags the record with the given ID as read.
func (s *Store) MarkRead(alertID string) error {
	records, err := Read(s.repoRoot)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(records, func(r Record) bool { return r.ID == alertID })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, alertID)
	}
	if records[i].IsRead {
		return nil
	}
	records[i].IsRead = true
	return rewrite(s.repoRoot, records)
}
