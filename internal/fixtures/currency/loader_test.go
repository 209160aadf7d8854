package currency_test

import (
	"os"
	"testing"

	"github.com/amirasaad/shoplist/internal/fixtures/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCurrencyMetaCSV(t *testing.T) {
	csvContent := `code,name,symbol,decimals,symbol_position,active
USD,US Dollar,$,2,before,true
EUR,Euro,€,2,after,true
BAD,Broken
XTS,Test,T,x,after,false`

	tmpFile, err := os.CreateTemp("", "test_currency_*.csv")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()

	_, err = tmpFile.WriteString(csvContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	metas, err := currency.LoadCurrencyMetaCSV(tmpFile.Name())
	require.NoError(t, err)
	require.Len(t, metas, 3)

	usd := metas[0]
	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, "$", usd.Symbol)
	assert.True(t, usd.SymbolBefore)
	assert.True(t, usd.Active)

	eur := metas[1]
	assert.Equal(t, "€", eur.Symbol)
	assert.False(t, eur.SymbolBefore)

	xts := metas[2]
	assert.Equal(t, 2, xts.Decimals, "garbled decimals fall back to the default")
	assert.False(t, xts.Active)
}

func TestLoadCurrencyMetaCSV_Embedded(t *testing.T) {
	metas, err := currency.LoadCurrencyMetaCSV("")
	require.NoError(t, err)
	assert.NotEmpty(t, metas)
}

func TestLoadCurrencyMetaCSV_InvalidHeader(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "test_currency_*.csv")
	require.NoError(t, err)
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()
	_, err = tmpFile.WriteString("code,name\nUSD,US Dollar\n")
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	_, err = currency.LoadCurrencyMetaCSV(tmpFile.Name())
	assert.Error(t, err)
}

func TestLoadCurrencyMetaCSV_MissingFile(t *testing.T) {
	_, err := currency.LoadCurrencyMetaCSV("/nonexistent/meta.csv")
	assert.Error(t, err)
}
