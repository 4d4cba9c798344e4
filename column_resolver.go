// column_resolver.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/segpro/complaints_analyzer/domain/models"
)

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

// AnalyzeHeaders inspects the first row of a spreadsheet and decides whether
// it is a header row or already data. Header names are normalized either way.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:        make([]string, len(firstRow)),
		FirstRowIsData: false,
		FirstDataRow:   firstRow,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

// isLikelyHeader reports whether a cell value looks like a column name
// rather than data (numbers and dates are data).
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}

	datePatterns := []string{
		`^\d{4}-\d{2}-\d{2}$`,
		`^\d{2}/\d{2}/\d{4}$`,
		`^\d{2}\.\d{2}\.\d{4}$`,
		`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`,
	}
	for _, pattern := range datePatterns {
		if matched, _ := regexp.MatchString(pattern, text); matched {
			return false
		}
	}

	letters := 0
	digits := 0
	specials := 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		case unicode.IsSpace(r):
		default:
			specials++
		}
	}

	totalChars := letters + digits + specials
	if totalChars == 0 {
		return false
	}
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// cleanHeaderName normalizes a header the way the dashboard matches it:
// trimmed, lower-cased, spaces to underscores. Accents are preserved on
// purpose, the role keyword sets are accent-sensitive.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	cleaned := strings.ToLower(header)
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	return cleaned
}

// ValidateHeaders suffixes duplicate header names so every column keeps a
// distinct identity.
func ValidateHeaders(headers []string) []string {
	seen := map[string]int{}
	result := make([]string, len(headers))

	for i, header := range headers {
		originalHeader := header
		counter := 1
		for {
			if count, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = count + 1
				break
			}
		}
		result[i] = header
	}
	return result
}

// roleRule matches a role against header names: every token in allOf must be
// present, or any token in anyOf. Rules run in priority order and the first
// header (in schema order) satisfying a rule wins that role.
type roleRule struct {
	role  models.ColumnRole
	anyOf []string
	allOf []string
}

var roleRules = []roleRule{
	{role: models.RoleDate, anyOf: []string{"fecha", "date"}},
	{role: models.RoleCustomer, anyOf: []string{"cliente", "nombre"}},
	{role: models.RoleEmail, anyOf: []string{"correo", "email", "mail"}},
	{role: models.RoleProduct, anyOf: []string{"producto", "item"}},
	{role: models.RoleErrorType, anyOf: []string{"categoria"}, allOf: []string{"tipo", "error"}},
	{role: models.RoleDescription, anyOf: []string{"descripcion", "detalle", "queja", "reclamo", "asunto", "mensaje"}},
	{role: models.RoleResponse, anyOf: []string{"respuesta", "solucion", "resolucion"}},
}

func (r roleRule) matches(header string) bool {
	if len(r.allOf) > 0 {
		all := true
		for _, token := range r.allOf {
			if !strings.Contains(header, token) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	for _, token := range r.anyOf {
		if strings.Contains(header, token) {
			return true
		}
	}
	return false
}

// ResolveColumns guesses which column serves each role. Matching is
// case-insensitive (headers are already lower-cased) and accent-preserving.
// A column claimed by one role may still be examined for other roles. Every
// role with no match maps to absent, except the date role, which falls back
// to the first column with the Fallback flag set: the pipeline always needs
// a date selection, even a heuristically wrong one, and downstream parsing
// tolerates an unrelated column there.
func ResolveColumns(headers []string) models.RoleMap {
	roles := models.RoleMap{}
	for _, rule := range roleRules {
		resolved := models.ResolvedColumn{Index: -1}
		for i, header := range headers {
			if rule.matches(header) {
				resolved = models.ResolvedColumn{Column: header, Index: i, Present: true}
				break
			}
		}
		roles[rule.role] = resolved
	}

	if date := roles[models.RoleDate]; !date.Present && len(headers) > 0 {
		roles[models.RoleDate] = models.ResolvedColumn{
			Column:   headers[0],
			Index:    0,
			Present:  true,
			Fallback: true,
		}
	}
	return roles
}

// ApplyOverrides replaces heuristic guesses with explicit user selections.
// An override naming a column that does not exist in the schema is ignored
// and the guess stands.
func ApplyOverrides(roles models.RoleMap, overrides map[models.ColumnRole]string, headers []string) models.RoleMap {
	if len(overrides) == 0 {
		return roles
	}
	result := models.RoleMap{}
	for role, resolved := range roles {
		result[role] = resolved
	}
	for role, column := range overrides {
		for i, header := range headers {
			if header == column {
				result[role] = models.ResolvedColumn{Column: header, Index: i, Present: true}
				break
			}
		}
	}
	return result
}
