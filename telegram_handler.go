// telegram_handler.go
package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	uuid "github.com/satori/go.uuid"

	"github.com/segpro/complaints_analyzer/config"
	"github.com/segpro/complaints_analyzer/domain/models"
)

var toDelete = map[string]time.Time{}

// currentRecords keeps the last processed record set per chat so graph and
// table commands can re-render without another upload.
var (
	currentRecords   = map[int64][]models.Record{}
	currentRecordsMu sync.Mutex
)

func rememberRecords(chatID int64, records []models.Record) {
	currentRecordsMu.Lock()
	defer currentRecordsMu.Unlock()
	currentRecords[chatID] = records
}

func chatRecords(chatID int64) ([]models.Record, bool) {
	currentRecordsMu.Lock()
	defer currentRecordsMu.Unlock()
	records, ok := currentRecords[chatID]
	return records, ok
}

const helpText = `Hola! 👋

Analizo quejas y reclamos de clientes SEGPRO.

Qué puedo hacer:
- Procesar archivos CSV o Excel (xlsx) con quejas, también comprimidos (zip, gzip, lz4)
- Cargar un archivo desde un link de SharePoint/OneDrive (pega el link en el chat)
- Clasificar una queja suelta (escríbela directamente en el chat)
- Generar métricas, tablas por categoría, gráficos y el CSV procesado

Comandos después de cargar datos:
/graph_tipo /graph_estado /graph_producto /graph_fechas /graph_satisfaccion
/tabla - detalle de quejas
/csv - descarga del CSV procesado`

func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message
	text := strings.TrimSpace(message.Text)

	// A message containing a link is a remote load request.
	if url := extractURL(text); url != "" {
		msg := tgbotapi.NewMessage(message.Chat.ID, "🌐 Descargando el archivo...")
		bot.Send(msg)

		table, err := LoadFromURL(url)
		if err != nil {
			bot.Send(tgbotapi.NewMessage(message.Chat.ID, "❌ "+err.Error()))
			return
		}
		records := NormalizeTable(table, ResolveColumns(table.Headers))
		rememberRecords(message.Chat.ID, records)
		sendReport(message.Chat.ID, records, bot)
		return
	}

	// Any other text is treated as one loose complaint and classified on
	// the spot, plus a web-upload link for bigger files.
	classification := ClassifyComplaintText(text)
	reply := FormatClassification(classification)

	uid := uuid.NewV4()
	sessionsMu.Lock()
	users[uid.String()] = message.Chat.ID
	toDelete[uid.String()] = time.Now()
	sessionsMu.Unlock()
	reply += fmt.Sprintf("\nPara analizar un archivo completo súbelo aquí: %s/?id=%s", config.GetConfig().UploadBaseURL, uid.String())

	bot.Send(tgbotapi.NewMessage(message.Chat.ID, reply))
}

func extractURL(text string) string {
	for _, field := range strings.Fields(text) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}

func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		bot.Send(tgbotapi.NewMessage(message.Chat.ID, "❌ No pude descargar el archivo, intenta de nuevo"))
		return
	}

	filePath := filepath.Join("uploads", strconv.Itoa(message.From.ID), message.Document.FileName)
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	defer file.Close()
	if _, err = io.Copy(file, resp.Body); err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	go func() {
		records, err := processComplaintFile(filePath, nil)
		if err != nil {
			bot.Send(tgbotapi.NewMessage(message.Chat.ID, "❌ "+err.Error()))
			return
		}
		rememberRecords(message.Chat.ID, records)
		sendReport(message.Chat.ID, records, bot)
	}()
}

// processComplaintFile runs the whole pipeline on a local file: load,
// resolve columns (explicit overrides win over the heuristic guess),
// normalize.
func processComplaintFile(filePath string, overrides map[models.ColumnRole]string) ([]models.Record, error) {
	table, err := LoadTable(filePath)
	if err != nil {
		return nil, err
	}
	roles := ApplyOverrides(ResolveColumns(table.Headers), overrides, table.Headers)
	if roles[models.RoleDate].Fallback {
		log.Printf("no date column detected in %v, falling back to %q", table.Headers, roles[models.RoleDate].Column)
	}
	return NormalizeTable(table, roles), nil
}

// sendReport delivers the full analysis: summary metrics, category
// breakdowns, charts and the processed CSV.
func sendReport(chatID int64, records []models.Record, bot *tgbotapi.BotAPI) {
	summary := Summarize(records)

	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+GenerateSummaryTable(summary)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	bot.Send(msg)

	breakdowns := strings.Join(GenerateBreakdownTables(summary), "\n\n")
	stamp := time.Now().Format("20060102-150405")
	doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{
		Name:  "resumen_" + stamp + ".txt",
		Bytes: []byte(breakdowns),
	})
	doc.Caption = "Conteos por tipo de error, estado y producto"
	bot.Send(doc)

	sendSummaryGraphs(chatID, summary, bot)

	csvDoc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{
		Name:  ExportFileName("quejas_segpro"),
		Bytes: RecordsCSV(records),
	})
	csvDoc.Caption = "Datos procesados. Comandos: /graph_tipo /graph_estado /graph_producto /graph_fechas /tabla"
	bot.Send(csvDoc)
}
