package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/caixa-dev/caixa/internal/model"
)

const (
	numFields  = 4
	colName    = 0
	colType    = 1
	colUsage   = 2
	colDefault = 3
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "type", "usage_count", "is_default"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colName] = cat.Name
	row[colType] = string(cat.Type)
	row[colUsage] = strconv.Itoa(cat.UsageCount)
	row[colDefault] = strconv.FormatBool(cat.IsDefault)
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ := model.TxnType(record[colType])
	if !typ.Valid() {
		return model.Category{}, fmt.Errorf("unknown category type %q", record[colType])
	}

	usage, err := strconv.Atoi(record[colUsage])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing usage_count %q: %w", record[colUsage], err)
	}

	isDefault, err := strconv.ParseBool(record[colDefault])
	if err != nil {
		return model.Category{}, fmt.Errorf("parsing is_default %q: %w", record[colDefault], err)
	}

	return model.Category{
		Name:       record[colName],
		Type:       typ,
		UsageCount: usage,
		IsDefault:  isDefault,
	}, nil
}
