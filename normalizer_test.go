package main

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/segpro/complaints_analyzer/domain/models"
)

func complaintTable() models.Table {
	return models.Table{
		Headers: []string{"fecha", "cliente", "producto", "descripcion", "respuesta"},
		Rows: [][]string{
			{"2024-03-01", "Ana Torres", "Guante Multi Flex", "Producto defectuoso, talla incorrecta", "Caso resuelto y cerrado"},
			{"2024-03-02", "", "", "Los zapatos harder llegaron con el empaque dañado", "Estamos revisando el caso"},
			{"fecha inválida", "Luis Paz", "Cono Naranja", "", ""},
		},
	}
}

func TestNormalizeTable(t *testing.T) {
	table := complaintTable()
	records := NormalizeTable(table, ResolveColumns(table.Headers))

	if len(records) != len(table.Rows) {
		t.Fatalf("got %d records, want %d", len(records), len(table.Rows))
	}

	first := records[0]
	assert.NotNil(t, first.Date)
	assert.Equal(t, "2024-03-01", first.Date.Format(dayLayout))
	assert.Equal(t, "Ana Torres", first.Customer)
	assert.Equal(t, ProductGuante, first.Product)
	// First matching rule wins: defect beats size.
	assert.Equal(t, ErrorDefective, first.ErrorType)
	assert.Equal(t, StateResolved, first.State)
	if assert.NotNil(t, first.SatisfactionFinal) {
		assert.Equal(t, 3, *first.SatisfactionFinal)
	}

	second := records[1]
	assert.Equal(t, PlaceholderCustomer, second.Customer)
	// Product falls back to the description when the product cell is blank.
	assert.Equal(t, ProductZapato, second.Product)
	assert.Equal(t, ErrorTransport, second.ErrorType)
	assert.Equal(t, StateInProgress, second.State)
	assert.Nil(t, second.SatisfactionFinal)

	third := records[2]
	assert.Nil(t, third.Date, "unparseable date must become absent, not an error")
	assert.Equal(t, PlaceholderDescription, third.Description)
	assert.Equal(t, PlaceholderResponse, third.Response)
	assert.Equal(t, ErrorUnclassified, third.ErrorType)
	assert.Equal(t, StatePending, third.State)
	assert.Equal(t, 2, third.SatisfactionInitial)
}

func TestNormalizeTableAbsentRoles(t *testing.T) {
	table := models.Table{
		Headers: []string{"fecha", "detalle"},
		Rows:    [][]string{{"2024-01-15", "falta una pieza del casco"}},
	}
	records := NormalizeTable(table, ResolveColumns(table.Headers))

	record := records[0]
	assert.Equal(t, "Cliente 1", record.Customer)
	assert.Equal(t, PlaceholderEmail, record.Email)
	assert.Equal(t, PlaceholderResponse, record.Response)
	assert.Equal(t, StatePending, record.State)
	assert.Equal(t, ErrorMissingPiece, record.ErrorType)
	// No product column: the description doubles as the product source.
	assert.Equal(t, "Falta Una Pieza Del Casco", record.Product)
}

func TestNormalizeTableDeterministic(t *testing.T) {
	table := complaintTable()
	roles := ResolveColumns(table.Headers)

	first := NormalizeTable(table, roles)
	second := NormalizeTable(table, roles)
	if !reflect.DeepEqual(first, second) {
		t.Error("NormalizeTable is not deterministic for the same inputs")
	}
}

func TestTryParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2024-03-01", "2024-03-01", true},
		{"2024-03-01 10:30:00", "2024-03-01", true},
		{"15/04/2024", "2024-04-15", true},
		{"15.04.2024", "2024-04-15", true},
		{"2024/04/15", "2024-04-15", true},
		{"", "", false},
		{"no es fecha", "", false},
		{"99/99/9999", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := tryParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("tryParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got.Format(dayLayout) != tt.want {
				t.Errorf("tryParseDate(%q) = %s, want %s", tt.input, got.Format(dayLayout), tt.want)
			}
		})
	}
}
