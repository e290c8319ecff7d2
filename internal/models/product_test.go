package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.String())

	d, err = ParseDate("2024-03-05T22:10:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.String())

	_, err = ParseDate("05.03.2024")
	assert.Error(t, err)
}

func TestProductJSONDate(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Apple","date":"2023-12-31"}`), &p))
	assert.Equal(t, "2023-12-31", p.Date.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date":"2023-12-31"`)

	err = json.Unmarshal([]byte(`{"date":12}`), &p)
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10 руб.", FormatPrice(10, "руб."))
	assert.Equal(t, "1499.5 руб.", FormatPrice(1499.5, "руб."))
	assert.Equal(t, "3.25", FormatPrice(3.25, ""))
}

func TestNewCartLine(t *testing.T) {
	p := Product{ID: 7, Name: "Bread", Price: 5, Category: "bakery", Image: "bread.png", Rating: 4}
	line := NewCartLine(p)
	assert.Equal(t, CartLine{ID: 7, Name: "Bread", Price: 5, Category: "bakery", Image: "bread.png", Quantity: 1}, line)
}
