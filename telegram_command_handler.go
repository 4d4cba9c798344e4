// telegram_command_handler.go
package main

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/segpro/complaints_analyzer/domain/models"
	"github.com/segpro/complaints_analyzer/plot"
)

func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	fullCommand := update.Message.Command()
	graphPrefix := "graph_"

	switch {
	case strings.HasPrefix(fullCommand, graphPrefix):
		dimension := strings.TrimPrefix(fullCommand, graphPrefix)
		if dimension == "" {
			api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Indica la dimensión: /graph_tipo /graph_estado /graph_producto /graph_fechas /graph_satisfaccion"))
			return
		}
		handleGraphCommand(api, update, dimension)

	case fullCommand == "tabla":
		handleTableCommand(api, update)

	case fullCommand == "csv":
		handleCSVCommand(api, update)

	case fullCommand == "start" || fullCommand == "ayuda":
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, helpText))

	default:
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Comando desconocido. Usa /ayuda para ver las opciones"))
	}
}

func handleGraphCommand(api *tgbotapi.BotAPI, update tgbotapi.Update, dimension string) {
	chatID := update.Message.Chat.ID
	records, exists := chatRecords(chatID)
	if !exists {
		api.Send(tgbotapi.NewMessage(chatID, "Primero carga un archivo de quejas"))
		return
	}
	summary := Summarize(records)

	var graph []byte
	var err error
	switch dimension {
	case "tipo", "tipos":
		graph, err = drawCategoryGraph("tipo de error", summary.ByErrorType)
	case "estado", "estados":
		graph, err = drawCategoryGraph("estado", summary.ByState)
	case "producto", "productos":
		graph, err = drawCategoryGraph("producto", summary.ByProduct)
	case "fechas":
		graph, err = drawDailyGraph(summary.ByDay)
		dimension = "fechas"
	case "satisfaccion":
		graph, err = drawScoreGraph(records)
	default:
		api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Dimensión desconocida %q. Usa tipo, estado, producto, fechas o satisfaccion", dimension)))
		return
	}
	if err != nil {
		api.Send(tgbotapi.NewMessage(chatID, "No hay datos suficientes para ese gráfico"))
		return
	}
	sendGraphVisualization(graph, dimension, chatID, api)
}

// drawScoreGraph renders the distribution of initial satisfaction scores.
func drawScoreGraph(records []models.Record) ([]byte, error) {
	counts := CountScores(records, false)
	if len(counts) == 0 {
		return nil, fmt.Errorf("no scored records")
	}
	scores := make([]int, 0, len(counts))
	for score := range counts {
		scores = append(scores, score)
	}
	sort.Ints(scores)

	labels := make([]string, len(scores))
	values := make([]float64, len(scores))
	for i, score := range scores {
		labels[i] = fmt.Sprintf("%d", score)
		values[i] = float64(counts[score])
	}
	data := plot.NewCategoryData(labels, values, "Cantidad", "Satisfacción inicial (1-5)")
	return plot.DrawPlotBar(data)
}

func handleTableCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	records, exists := chatRecords(chatID)
	if !exists {
		api.Send(tgbotapi.NewMessage(chatID, "Primero carga un archivo de quejas"))
		return
	}
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+GenerateRecordsTable(records, 30)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	api.Send(msg)
}

func handleCSVCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	records, exists := chatRecords(chatID)
	if !exists {
		api.Send(tgbotapi.NewMessage(chatID, "Primero carga un archivo de quejas"))
		return
	}
	doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{
		Name:  ExportFileName("quejas_segpro"),
		Bytes: RecordsCSV(records),
	})
	doc.Caption = "Datos procesados"
	api.Send(doc)
}
