package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/segpro/complaints_analyzer/domain/models"
)

func TestParseCriteria(t *testing.T) {
	records := filterFixture()
	values := url.Values{
		"desde":  []string{"2024-03-01"},
		"hasta":  []string{"2024-03-05"},
		"tipo":   []string{ErrorDefective},
		"estado": []string{StateResolved, StatePending},
	}

	criteria, dateEnabled := parseCriteria(values, records)
	assert.True(t, dateEnabled)
	if assert.NotNil(t, criteria.From) {
		assert.Equal(t, "2024-03-01", criteria.From.Format(dayLayout))
	}
	if assert.NotNil(t, criteria.To) {
		assert.Equal(t, "2024-03-05", criteria.To.Format(dayLayout))
	}
	assert.Equal(t, []string{ErrorDefective}, criteria.ErrorTypes)
	assert.Len(t, criteria.States, 2)
	assert.Nil(t, criteria.Products)
}

func TestParseCriteriaNoValidDates(t *testing.T) {
	records := []models.Record{
		{ErrorType: ErrorOther, State: StatePending, Product: ProductNone},
	}
	values := url.Values{"desde": []string{"2024-01-01"}}

	criteria, dateEnabled := parseCriteria(values, records)
	assert.False(t, dateEnabled, "date filter must be disabled when no record has a date")
	assert.Nil(t, criteria.From)
	assert.Nil(t, criteria.To)

	// With the boundary ignored, every row stays eligible.
	assert.Len(t, FilterRecords(records, criteria), len(records))
}

func TestColumnOverrides(t *testing.T) {
	form := url.Values{
		"col_fecha":    []string{"fecha_registro"},
		"col_producto": []string{""},
		"col_cliente":  []string{"nombre"},
	}
	r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	overrides := columnOverrides(r)
	assert.Equal(t, map[models.ColumnRole]string{
		models.RoleDate:     "fecha_registro",
		models.RoleCustomer: "nombre",
	}, overrides)
}

func TestHandleSummaryAPI(t *testing.T) {
	setWebRecords(filterFixture())

	r := httptest.NewRequest(http.MethodGet, "/api/summary?tipo="+url.QueryEscape(ErrorDefective), nil)
	w := httptest.NewRecorder()
	handleSummaryAPI(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var response summaryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Summary.Total)
	assert.True(t, response.DateFilterEnabled)
	// Options reflect the unfiltered universe.
	assert.Len(t, response.Options.ErrorTypes, 3)
}

func TestHandleExportCSV(t *testing.T) {
	setWebRecords(filterFixture())

	r := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
	w := httptest.NewRecorder()
	handleExportCSV(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "quejas_segpro")
	parsed, err := ParseRecordsCSV(w.Body.Bytes())
	assert.NoError(t, err)
	assert.Len(t, parsed, len(filterFixture()))
}
