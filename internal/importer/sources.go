package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caixa-dev/caixa/internal/model"
)

// TextSource reads one utterance per line, as written by speech-to-text
// tools. Blank lines and lines starting with '#' are skipped.
type TextSource struct{}

// Format returns the source name.
func (s *TextSource) Format() string { return "text" }

// Read returns the utterances in r. Lines of any length are returned so
// that an oversized one is rejected on its own rather than failing the file.
func (s *TextSource) Read(r io.Reader) ([]Utterance, error) {
	br := bufio.NewReader(r)
	var out []Utterance
	for line := 1; ; line++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading text import: %w", err)
		}
		text := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
		if text != "" && !strings.HasPrefix(text, "#") {
			out = append(out, Utterance{Line: line, Text: text, Method: model.MethodVoice})
		}
		if err != nil {
			return out, nil
		}
	}
}

// CSVSource reads rows of date,input[,method]. Dates are DD/MM/YYYY and
// may be empty. Method defaults to voice. A header row starting with
// "date" is skipped.
type CSVSource struct{}

const (
	csvDateFormat = "02/01/2006"
	csvColDate    = 0
	csvColInput   = 1
	csvColMethod  = 2
)

// Format returns the source name.
func (s *CSVSource) Format() string { return "csv" }

// Read returns the utterances in r.
func (s *CSVSource) Read(r io.Reader) ([]Utterance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []Utterance
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv import: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if line == 1 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			if strings.EqualFold(strings.TrimSpace(rec[0]), "date") {
				continue
			}
		}
		u, err := parseCSVRow(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		u.Line = line
		out = append(out, u)
	}
	return out, nil
}

func parseCSVRow(rec []string) (Utterance, error) {
	if len(rec) < 2 || len(rec) > 3 {
		return Utterance{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(rec))
	}

	u := Utterance{
		Text:   strings.TrimSpace(rec[csvColInput]),
		Method: model.MethodVoice,
	}

	if d := strings.TrimSpace(rec[csvColDate]); d != "" {
		date, err := time.Parse(csvDateFormat, d)
		if err != nil {
			return Utterance{}, fmt.Errorf("parsing date %q: %w", d, err)
		}
		u.Date = date
	}

	if len(rec) == 3 {
		if m := model.Method(strings.ToLower(strings.TrimSpace(rec[csvColMethod]))); m != "" {
			if !m.Valid() {
				return Utterance{}, fmt.Errorf("unknown method %q", rec[csvColMethod])
			}
			u.Method = m
		}
	}
	return u, nil
}
