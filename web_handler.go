// web_handler.go
package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/segpro/complaints_analyzer/domain/models"
)

const uploadHTML = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>SEGPRO - Quejas y Reclamos</title></head>
<body>
<h1>📊 Análisis de Quejas y Reclamos</h1>
<form action="/upload" method="post" enctype="multipart/form-data">
	<input type="hidden" name="uuid" value="{{.}}">
	<p><input type="file" name="file" accept=".csv,.xlsx,.zip,.gz,.lz4"></p>
	<details>
		<summary>Mapeo de columnas (opcional, deja vacío para autodetectar)</summary>
		<p><label>Fecha <input name="col_fecha"></label></p>
		<p><label>Cliente <input name="col_cliente"></label></p>
		<p><label>Producto <input name="col_producto"></label></p>
		<p><label>Tipo de error <input name="col_tipo_error"></label></p>
		<p><label>Descripción <input name="col_descripcion"></label></p>
		<p><label>Respuesta <input name="col_respuesta"></label></p>
	</details>
	<p><button type="submit">Analizar</button></p>
</form>
<p>Luego consulta <a href="/api/summary">/api/summary</a> o descarga <a href="/export.csv">/export.csv</a></p>
</body>
</html>`

var uploadTemplate = template.Must(template.New("upload").Parse(uploadHTML))

// webRecords is the record set behind /api/summary and /export.csv: the
// last successful web upload. One dashboard session at a time.
var (
	webRecords   []models.Record
	webRecordsMu sync.Mutex
)

func setWebRecords(records []models.Record) {
	webRecordsMu.Lock()
	defer webRecordsMu.Unlock()
	webRecords = records
}

func getWebRecords() []models.Record {
	webRecordsMu.Lock()
	defer webRecordsMu.Unlock()
	return webRecords
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := uploadTemplate.Execute(w, id); err != nil {
		http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
	}
}

func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sessionID := r.FormValue("uuid")
	dirName := sessionID
	if dirName == "" {
		dirName = "web"
	}

	os.MkdirAll(filepath.Join("uploads", dirName), 0755)
	filePath := filepath.Join("uploads", dirName, header.Filename)
	dst, err := os.Create(filePath)
	if err != nil {
		http.Error(w, "Error saving file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()
	if _, err = io.Copy(dst, file); err != nil {
		http.Error(w, "Error saving file", http.StatusInternalServerError)
		return
	}

	records, err := processComplaintFile(filePath, columnOverrides(r))
	if err != nil {
		http.Error(w, "❌ "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	setWebRecords(records)

	// A session id links this upload back to the bot chat that asked for it.
	if chatID, ok := sessionChat(sessionID); ok {
		rememberRecords(chatID, records)
		go sendReport(chatID, records, bot)
	}

	fmt.Fprintf(w, "Archivo procesado: %d registros. Consulta /api/summary o /export.csv", len(records))
}

// columnOverrides reads explicit role→column selections from the upload
// form, fields named col_<role>. Empty values mean "keep the guess".
func columnOverrides(r *http.Request) map[models.ColumnRole]string {
	overrides := map[models.ColumnRole]string{}
	roles := []models.ColumnRole{
		models.RoleDate, models.RoleCustomer, models.RoleEmail,
		models.RoleProduct, models.RoleErrorType, models.RoleDescription,
		models.RoleResponse,
	}
	for _, role := range roles {
		if column := r.FormValue("col_" + string(role)); column != "" {
			overrides[role] = column
		}
	}
	return overrides
}

// summaryResponse is the dashboard payload: the aggregate snapshot plus the
// distinct-value universe for each filter control.
type summaryResponse struct {
	Summary models.Summary `json:"summary"`
	Options struct {
		ErrorTypes []string `json:"tipos"`
		States     []string `json:"estados"`
		Products   []string `json:"productos"`
	} `json:"options"`
	DateFilterEnabled bool `json:"date_filter_enabled"`
}

func handleSummaryAPI(w http.ResponseWriter, r *http.Request) {
	records := getWebRecords()
	criteria, dateEnabled := parseCriteria(r.URL.Query(), records)
	filtered := FilterRecords(records, criteria)

	response := summaryResponse{Summary: Summarize(filtered), DateFilterEnabled: dateEnabled}
	response.Options.ErrorTypes, response.Options.States, response.Options.Products = FilterOptions(records)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(response)
}

func handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records := getWebRecords()
	criteria, _ := parseCriteria(r.URL.Query(), records)
	filtered := FilterRecords(records, criteria)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName("quejas_segpro")))
	if err := WriteRecordsCSV(w, filtered); err != nil {
		http.Error(w, "Error writing CSV", http.StatusInternalServerError)
	}
}

// parseCriteria maps the query parameters desde/hasta/tipo/estado/producto
// onto filter criteria. When no record carries a valid date the date filter
// is disabled wholesale and desde/hasta are ignored, so rows with broken
// dates never vanish behind a date widget.
func parseCriteria(values url.Values, records []models.Record) (models.Criteria, bool) {
	criteria := models.Criteria{}
	_, _, dateEnabled := DateBounds(records)
	if dateEnabled {
		if from, ok := tryParseDate(values.Get("desde")); ok {
			criteria.From = &from
		}
		if to, ok := tryParseDate(values.Get("hasta")); ok {
			criteria.To = &to
		}
	}
	if tipos := values["tipo"]; len(tipos) > 0 {
		criteria.ErrorTypes = tipos
	}
	if estados := values["estado"]; len(estados) > 0 {
		criteria.States = estados
	}
	if productos := values["producto"]; len(productos) > 0 {
		criteria.Products = productos
	}
	return criteria, dateEnabled
}
