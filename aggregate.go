// aggregate.go
package main

import (
	"sort"

	"github.com/segpro/complaints_analyzer/domain/models"
)

const dayLayout = "2006-01-02"

// Summarize recomputes the whole aggregate snapshot over a record set.
// Stateless: nothing is cached between calls, a filter change just calls
// this again on the narrowed set.
func Summarize(records []models.Record) models.Summary {
	summary := models.Summary{Total: len(records)}

	byErrorType := map[string]int{}
	byState := map[string]int{}
	byProduct := map[string]int{}
	byDay := map[string]int{}
	sumInitial := 0
	sumFinal := 0

	for _, record := range records {
		byErrorType[record.ErrorType]++
		byState[record.State]++
		byProduct[record.Product]++

		switch record.State {
		case StateResolved:
			summary.Resolved++
		case StateInProgress:
			summary.InProgress++
		default:
			summary.Pending++
		}

		if record.Date != nil {
			byDay[record.Date.Format(dayLayout)]++
		}

		sumInitial += record.SatisfactionInitial
		if record.SatisfactionFinal != nil {
			sumFinal += *record.SatisfactionFinal
			summary.FinalScored++
		}
	}

	// Rate and means guard against the empty set, never a division fault.
	if summary.Total > 0 {
		summary.ResolutionRate = float64(summary.Resolved) / float64(summary.Total) * 100
		summary.AvgSatisfactionInitial = float64(sumInitial) / float64(summary.Total)
	}
	if summary.FinalScored > 0 {
		summary.AvgSatisfactionFinal = float64(sumFinal) / float64(summary.FinalScored)
	}

	summary.ByErrorType = sortedCounts(byErrorType, summary.Total)
	summary.ByState = sortedCounts(byState, summary.Total)
	summary.ByProduct = sortedCounts(byProduct, summary.Total)
	summary.ByDay = sortedDayCounts(byDay)
	return summary
}

// sortedCounts orders by count descending, label ascending on ties.
func sortedCounts(counts map[string]int, total int) []models.ValueCount {
	result := make([]models.ValueCount, 0, len(counts))
	for value, count := range counts {
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total) * 100
		}
		result = append(result, models.ValueCount{Value: value, Count: count, Percent: percent})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result
}

func sortedDayCounts(counts map[string]int) []models.DateCount {
	result := make([]models.DateCount, 0, len(counts))
	for day, count := range counts {
		result = append(result, models.DateCount{Date: day, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

// CountScores tallies satisfaction scores 1..5 for the score chart.
func CountScores(records []models.Record, final bool) map[int]int {
	counts := map[int]int{}
	for _, record := range records {
		if final {
			if record.SatisfactionFinal != nil {
				counts[*record.SatisfactionFinal]++
			}
			continue
		}
		counts[record.SatisfactionInitial]++
	}
	return counts
}
