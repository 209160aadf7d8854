package currency

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/shoplist/pkg/currency"
)

//go:embed meta.csv
var metaCSV string

var header = []string{"code", "name", "symbol", "decimals", "symbol_position", "active"}

// LoadCurrencyMetaCSV loads currency metadata from a CSV file or embedded content.
// If path is empty, it uses the embedded CSV content.
func LoadCurrencyMetaCSV(path string) ([]currency.Meta, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	} else {
		r = strings.NewReader(metaCSV)
	}

	return parseCurrencyMetaCSV(r)
}

func parseCurrencyMetaCSV(r io.Reader) ([]currency.Meta, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	if len(records[0]) < len(header) {
		return nil, fmt.Errorf(
			"invalid CSV format: expected at least %d columns, got %d",
			len(header),
			len(records[0]),
		)
	}

	metas := make([]currency.Meta, 0, len(records)-1)
	for _, rec := range records[1:] {
		// Skip malformed rows
		if len(rec) < len(header) {
			continue
		}
		decimals, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil {
			decimals = currency.DefaultDecimals
		}
		metas = append(metas, currency.Meta{
			Code:         strings.TrimSpace(rec[0]),
			Name:         strings.TrimSpace(rec[1]),
			Symbol:       strings.TrimSpace(rec[2]),
			Decimals:     decimals,
			SymbolBefore: strings.EqualFold(strings.TrimSpace(rec[4]), "before"),
			Active:       strings.EqualFold(strings.TrimSpace(rec[5]), "true"),
		})
	}
	return metas, nil
}
