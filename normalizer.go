// normalizer.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/segpro/complaints_analyzer/domain/models"
)

// Placeholders for absent text fields. A placeholder is never confused with
// a present-but-blank source value: blank cells get the same placeholder.
const (
	PlaceholderCustomer    = "Sin especificar"
	PlaceholderEmail       = "Sin correo"
	PlaceholderDescription = "Sin descripción"
	PlaceholderResponse    = "Sin respuesta"
	PlaceholderDate        = "Sin fecha"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
}

// tryParseDate parses a date cell against the known layouts. Failures are
// reported with ok=false and never as an error, a row with a broken date is
// still a valid complaint.
func tryParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// roleCell returns the raw cell mapped to a role, ok=false when the role is
// absent from the role map.
func roleCell(roles models.RoleMap, role models.ColumnRole, row []string) (string, bool) {
	resolved, exists := roles[role]
	if !exists || !resolved.Present {
		return "", false
	}
	if resolved.Index < 0 || resolved.Index >= len(row) {
		return "", true
	}
	return strings.TrimSpace(row[resolved.Index]), true
}

// NormalizeTable turns every raw row into exactly one normalized record.
// Deterministic and side-effect free: the same table and role map always
// produce the same records.
func NormalizeTable(t models.Table, roles models.RoleMap) []models.Record {
	records := make([]models.Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		records = append(records, normalizeRow(roles, row, i))
	}
	return records
}

func normalizeRow(roles models.RoleMap, row []string, index int) models.Record {
	record := models.Record{}

	if rawDate, ok := roleCell(roles, models.RoleDate, row); ok {
		if parsed, valid := tryParseDate(rawDate); valid {
			record.Date = &parsed
		}
	}

	customer, hasCustomer := roleCell(roles, models.RoleCustomer, row)
	switch {
	case !hasCustomer:
		record.Customer = fmt.Sprintf("Cliente %d", index+1)
	case customer == "":
		record.Customer = PlaceholderCustomer
	default:
		record.Customer = customer
	}

	email, _ := roleCell(roles, models.RoleEmail, row)
	if email == "" {
		email = PlaceholderEmail
	}
	record.Email = email

	description, _ := roleCell(roles, models.RoleDescription, row)
	if description == "" {
		record.Description = PlaceholderDescription
	} else {
		record.Description = description
	}

	// Classifier inputs use the raw cell values, not the placeholders, so
	// an absent field classifies as absent.
	productSource, hasProduct := roleCell(roles, models.RoleProduct, row)
	if !hasProduct || productSource == "" {
		productSource = description
	}
	record.Product = NormalizeProduct(productSource)

	errorSource, hasErrorType := roleCell(roles, models.RoleErrorType, row)
	if !hasErrorType || errorSource == "" {
		errorSource = description
	}
	record.ErrorType = ClassifyErrorType(errorSource)

	response, _ := roleCell(roles, models.RoleResponse, row)
	record.State = ClassifyState(response)
	if response == "" {
		record.Response = PlaceholderResponse
	} else {
		record.Response = response
	}

	record.SatisfactionInitial = ScoreSatisfaction(description, true)
	if record.State == StateResolved {
		final := ScoreSatisfaction(response, false)
		record.SatisfactionFinal = &final
	}
	return record
}
