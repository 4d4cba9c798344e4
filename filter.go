// filter.go
package main

import (
	"sort"
	"time"

	"github.com/pivolan/go_utils"
	"github.com/segpro/complaints_analyzer/domain/models"
)

// FilterRecords returns the subset matching every active predicate. Records
// without a date pass while no date boundary is set; once either boundary is
// set they fail the date predicate, the comparison is undefined for a
// missing value and ghost rows must not reappear under a date filter.
func FilterRecords(records []models.Record, criteria models.Criteria) []models.Record {
	result := make([]models.Record, 0, len(records))
	for _, record := range records {
		if !matchesDate(record.Date, criteria.From, criteria.To) {
			continue
		}
		if criteria.ErrorTypes != nil && !go_utils.InArray(record.ErrorType, criteria.ErrorTypes) {
			continue
		}
		if criteria.States != nil && !go_utils.InArray(record.State, criteria.States) {
			continue
		}
		if criteria.Products != nil && !go_utils.InArray(record.Product, criteria.Products) {
			continue
		}
		result = append(result, record)
	}
	return result
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// matchesDate compares at day granularity, inclusive at both ends.
func matchesDate(date, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date == nil {
		return false
	}
	day := truncateToDay(*date)
	if from != nil && day.Before(truncateToDay(*from)) {
		return false
	}
	if to != nil && day.After(truncateToDay(*to)) {
		return false
	}
	return true
}

// DateBounds returns the minimum and maximum record dates. ok is false when
// no record carries a date at all: callers then disable the date filter
// entirely instead of comparing against nothing.
func DateBounds(records []models.Record) (min, max time.Time, ok bool) {
	for _, record := range records {
		if record.Date == nil {
			continue
		}
		d := *record.Date
		if !ok {
			min, max = d, d
			ok = true
			continue
		}
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, ok
}

// FilterOptions lists the distinct values per filterable dimension, sorted.
// The multiselect universe is always derived from the current record set.
func FilterOptions(records []models.Record) (errorTypes, states, products []string) {
	return distinctValues(records, func(r models.Record) string { return r.ErrorType }),
		distinctValues(records, func(r models.Record) string { return r.State }),
		distinctValues(records, func(r models.Record) string { return r.Product })
}

func distinctValues(records []models.Record, pick func(models.Record) string) []string {
	seen := map[string]bool{}
	values := []string{}
	for _, record := range records {
		value := pick(record)
		if !seen[value] {
			seen[value] = true
			values = append(values, value)
		}
	}
	sort.Strings(values)
	return values
}
