// loader.go
package main

import (
	"bytes"
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/segpro/complaints_analyzer/domain/models"
)

const SEPARATOR = ','

const (
	loadTimeout      = 30 * time.Second
	tableCacheTTL    = 60 * time.Second
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var xlsxMagic = []byte("PK\x03\x04")

type cacheEntry struct {
	table    models.Table
	loadedAt time.Time
}

// tableCache avoids re-parsing the same source on rapid re-requests. Purely
// an optimization, entries expire after tableCacheTTL and the sweeper in
// main drops them.
var (
	tableCache   = map[string]cacheEntry{}
	tableCacheMu sync.Mutex
)

func cachedTable(key string) (models.Table, bool) {
	tableCacheMu.Lock()
	defer tableCacheMu.Unlock()
	entry, ok := tableCache[key]
	if !ok || time.Since(entry.loadedAt) > tableCacheTTL {
		return models.Table{}, false
	}
	return entry.table, true
}

func storeTable(key string, t models.Table) {
	tableCacheMu.Lock()
	defer tableCacheMu.Unlock()
	tableCache[key] = cacheEntry{table: t, loadedAt: time.Now()}
}

func sweepTableCache(now time.Time) {
	tableCacheMu.Lock()
	defer tableCacheMu.Unlock()
	for key, entry := range tableCache {
		if now.Sub(entry.loadedAt) > tableCacheTTL {
			delete(tableCache, key)
		}
	}
}

func getMD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// LoadTable reads a local spreadsheet, unpacking zip/gzip/lz4 archives
// first. CSV and XLSX are supported.
func LoadTable(filePath string) (models.Table, error) {
	cacheKey := getMD5String("file:" + filePath)
	if table, ok := cachedTable(cacheKey); ok {
		return table, nil
	}

	unpackedPath, err := unpackArchive(filePath)
	if err != nil {
		return models.Table{}, fmt.Errorf("error al descomprimir el archivo: %v", err)
	}
	if unpackedPath != "" {
		filePath = unpackedPath
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Table{}, fmt.Errorf("error al leer el archivo: %v", err)
	}

	table, err := ParseTableBytes(data, filepath.Ext(filePath))
	if err != nil {
		return models.Table{}, err
	}
	storeTable(cacheKey, table)
	return table, nil
}

// ConvertShareLink turns a SharePoint/OneDrive sharing URL into a direct
// download one: query parameters are stripped and download=1 appended.
func ConvertShareLink(rawURL string) string {
	base, _, _ := strings.Cut(rawURL, "?")
	return base + "?download=1"
}

// LoadFromURL fetches a remote spreadsheet with a bounded timeout and a
// browser-like user agent, following redirects. Any failure comes back as a
// human-readable error value, never a panic.
func LoadFromURL(rawURL string) (models.Table, error) {
	cacheKey := getMD5String("url:" + rawURL)
	if table, ok := cachedTable(cacheKey); ok {
		return table, nil
	}

	request, err := http.NewRequest(http.MethodGet, ConvertShareLink(rawURL), nil)
	if err != nil {
		return models.Table{}, fmt.Errorf("URL inválida: %v", err)
	}
	request.Header.Set("User-Agent", browserUserAgent)

	client := &http.Client{Timeout: loadTimeout}
	response, err := client.Do(request)
	if err != nil {
		return models.Table{}, fmt.Errorf("error al descargar el archivo: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return models.Table{}, fmt.Errorf("descarga fallida: HTTP %d %s", response.StatusCode, http.StatusText(response.StatusCode))
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return models.Table{}, fmt.Errorf("error al leer la respuesta: %v", err)
	}

	table, err := ParseTableBytes(data, "")
	if err != nil {
		return models.Table{}, err
	}
	storeTable(cacheKey, table)
	return table, nil
}

// ParseTableBytes parses spreadsheet bytes, choosing the format by extension
// or by sniffing the zip magic (an xlsx is a zip container).
func ParseTableBytes(data []byte, ext string) (models.Table, error) {
	if strings.EqualFold(ext, ".xlsx") || bytes.HasPrefix(data, xlsxMagic) {
		return parseXLSX(data)
	}
	return parseCSV(data)
}

func parseCSV(data []byte) (models.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = SEPARATOR
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows := [][]string{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Table{}, fmt.Errorf("CSV malformado: %v", err)
		}
		rows = append(rows, row)
	}
	return buildTable(rows)
}

func parseXLSX(data []byte) (models.Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Table{}, fmt.Errorf("XLSX malformado: %v", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return models.Table{}, fmt.Errorf("el archivo XLSX no contiene hojas")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return models.Table{}, fmt.Errorf("error al leer la hoja %q: %v", sheets[0], err)
	}
	return buildTable(rows)
}

// buildTable runs header analysis on the first row and pads every data row
// to the header width.
func buildTable(rows [][]string) (models.Table, error) {
	if len(rows) == 0 {
		return models.Table{}, fmt.Errorf("el archivo no contiene filas")
	}

	analysis := AnalyzeHeaders(rows[0])
	if analysis == nil {
		return models.Table{}, fmt.Errorf("el archivo no contiene columnas")
	}

	dataRows := rows
	if !analysis.FirstRowIsData {
		dataRows = rows[1:]
	}

	table := models.Table{Headers: analysis.Headers, Rows: make([][]string, 0, len(dataRows))}
	width := len(analysis.Headers)
	for _, row := range dataRows {
		padded := make([]string, width)
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}
	return table, nil
}
