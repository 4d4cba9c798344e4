package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/segpro/complaints_analyzer/domain/models"
)

func day(value string) *time.Time {
	parsed, err := time.Parse(dayLayout, value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func filterFixture() []models.Record {
	return []models.Record{
		{Date: day("2024-03-01"), ErrorType: ErrorDefective, State: StateResolved, Product: ProductGuante},
		{Date: day("2024-03-05"), ErrorType: ErrorSize, State: StatePending, Product: ProductZapato},
		{Date: day("2024-03-10"), ErrorType: ErrorDefective, State: StateInProgress, Product: ProductGuante},
		{Date: nil, ErrorType: ErrorOther, State: StatePending, Product: ProductNone},
	}
}

func TestFilterRecordsDateRange(t *testing.T) {
	records := filterFixture()

	got := FilterRecords(records, models.Criteria{From: day("2024-03-01"), To: day("2024-03-05")})
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2 (range is inclusive)", len(got))
	}

	// A record without a date fails once any boundary is active.
	got = FilterRecords(records, models.Criteria{From: day("2020-01-01")})
	for _, record := range got {
		if record.Date == nil {
			t.Error("record without date passed an active date filter")
		}
	}

	// No boundaries: every record passes, dated or not.
	got = FilterRecords(records, models.Criteria{})
	assert.Len(t, got, len(records))
}

func TestFilterRecordsCategories(t *testing.T) {
	records := filterFixture()

	got := FilterRecords(records, models.Criteria{ErrorTypes: []string{ErrorDefective}})
	assert.Len(t, got, 2)

	got = FilterRecords(records, models.Criteria{States: []string{StatePending}, Products: []string{ProductNone}})
	assert.Len(t, got, 1)

	got = FilterRecords(records, models.Criteria{ErrorTypes: []string{}})
	assert.Len(t, got, 0, "empty selection matches nothing")
}

// Filtering by the full available universe returns the original set.
func TestFilterRecordsFullUniverseIsIdentity(t *testing.T) {
	records := filterFixture()
	errorTypes, states, products := FilterOptions(records)

	got := FilterRecords(records, models.Criteria{ErrorTypes: errorTypes, States: states, Products: products})
	if !reflect.DeepEqual(got, records) {
		t.Errorf("full-universe filter changed the set: %v", got)
	}
}

// Sequential filters compose like the intersection of their criteria.
func TestFilterRecordsNarrowing(t *testing.T) {
	records := filterFixture()
	c1 := models.Criteria{ErrorTypes: []string{ErrorDefective, ErrorSize}}
	c2 := models.Criteria{States: []string{StateResolved, StatePending}}
	combined := models.Criteria{ErrorTypes: c1.ErrorTypes, States: c2.States}

	sequential := FilterRecords(FilterRecords(records, c1), c2)
	direct := FilterRecords(records, combined)
	if !reflect.DeepEqual(sequential, direct) {
		t.Errorf("sequential = %v, direct = %v", sequential, direct)
	}
}

func TestDateBounds(t *testing.T) {
	records := filterFixture()
	min, max, ok := DateBounds(records)
	assert.True(t, ok)
	assert.Equal(t, "2024-03-01", min.Format(dayLayout))
	assert.Equal(t, "2024-03-10", max.Format(dayLayout))

	_, _, ok = DateBounds([]models.Record{{Date: nil}, {Date: nil}})
	assert.False(t, ok, "a set with no valid dates disables the date filter")
}

func TestFilterOptions(t *testing.T) {
	errorTypes, states, products := FilterOptions(filterFixture())
	assert.Equal(t, []string{ErrorSize, ErrorOther, ErrorDefective}, errorTypes)
	assert.Equal(t, []string{StateInProgress, StatePending, StateResolved}, states)
	assert.Equal(t, []string{ProductGuante, ProductNone, ProductZapato}, products)
}
