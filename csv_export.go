// csv_export.go
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"

	"github.com/segpro/complaints_analyzer/domain/models"
)

var exportHeaders = []string{
	"fecha", "cliente", "correo", "producto", "tipo_error",
	"descripcion", "respuesta", "estado",
	"satisfaccion_inicial", "satisfaccion_final",
}

// WriteRecordsCSV serializes records in a fixed column order, UTF-8.
// A nil date becomes "Sin fecha" and a missing final score an empty cell.
func WriteRecordsCSV(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, record := range records {
		date := PlaceholderDate
		if record.Date != nil {
			date = record.Date.Format(dayLayout)
		}
		final := ""
		if record.SatisfactionFinal != nil {
			final = strconv.Itoa(*record.SatisfactionFinal)
		}
		row := []string{
			date,
			record.Customer,
			record.Email,
			record.Product,
			record.ErrorType,
			record.Description,
			record.Response,
			record.State,
			strconv.Itoa(record.SatisfactionInitial),
			final,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func RecordsCSV(records []models.Record) []byte {
	buffer := &bytes.Buffer{}
	// Writing to a buffer cannot fail.
	_ = WriteRecordsCSV(buffer, records)
	return buffer.Bytes()
}

// ParseRecordsCSV reads back an export produced by WriteRecordsCSV.
func ParseRecordsCSV(data []byte) ([]models.Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = SEPARATOR
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("CSV sin encabezado: %v", err)
	}
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := []models.Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV malformado: %v", err)
		}

		record := models.Record{
			Customer:    field(row, "cliente"),
			Email:       field(row, "correo"),
			Product:     field(row, "producto"),
			ErrorType:   field(row, "tipo_error"),
			Description: field(row, "descripcion"),
			Response:    field(row, "respuesta"),
			State:       field(row, "estado"),
		}
		if parsed, ok := tryParseDate(field(row, "fecha")); ok {
			record.Date = &parsed
		}
		if score, err := strconv.Atoi(field(row, "satisfaccion_inicial")); err == nil {
			record.SatisfactionInitial = score
		}
		if score, err := strconv.Atoi(field(row, "satisfaccion_final")); err == nil {
			record.SatisfactionFinal = &score
		}
		records = append(records, record)
	}
	return records, nil
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify produces an ASCII file-name fragment from an accented label.
func slugify(input string) string {
	ascii := strings.ToLower(unidecode.Unidecode(input))
	return strings.Trim(slugCleaner.ReplaceAllString(ascii, "_"), "_")
}

// ExportFileName builds a download name carrying the export timestamp.
func ExportFileName(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", slugify(prefix), time.Now().Format("20060102-150405"))
}
