// telegram_send_graph.go
package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/segpro/complaints_analyzer/domain/models"
	"github.com/segpro/complaints_analyzer/plot"
)

// Telegram re-compresses photos above this size badly, bigger charts go out
// as documents instead.
const maxSizePhoto = 150000

// sendGraphVisualization sends one rendered chart with a caption.
func sendGraphVisualization(graph []byte, dimension string, chatID int64, api *tgbotapi.BotAPI) {
	fileName := fmt.Sprintf("grafico_%s_%s.png", slugify(dimension), time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{Name: fileName, Bytes: graph}
	caption := generateGraphDescription(dimension)

	var err error
	if len(graph) < maxSizePhoto {
		photoMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photoMsg.Caption = caption
		_, err = api.Send(photoMsg)
	} else {
		docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		docMsg.Caption = caption
		_, err = api.Send(docMsg)
	}
	if err != nil {
		log.Printf("error sending %s chart: %v", dimension, err)
		api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("No pude enviar el gráfico de %s: %v", dimension, err)))
	}
}

func generateGraphDescription(dimension string) string {
	switch dimension {
	case "fechas":
		return "Tendencia temporal: quejas por día"
	case "satisfaccion":
		return "Distribución de satisfacción inicial (1-5)"
	default:
		return fmt.Sprintf("Quejas por %s", dimension)
	}
}

// sendSummaryGraphs renders the default chart set for a fresh load.
func sendSummaryGraphs(chatID int64, summary models.Summary, api *tgbotapi.BotAPI) {
	dimensions := []struct {
		name   string
		counts []models.ValueCount
	}{
		{"tipo de error", summary.ByErrorType},
		{"estado", summary.ByState},
		{"producto", summary.ByProduct},
	}
	for _, dimension := range dimensions {
		graph, err := drawCategoryGraph(dimension.name, dimension.counts)
		if err != nil {
			log.Printf("error rendering %s chart: %v", dimension.name, err)
			continue
		}
		sendGraphVisualization(graph, dimension.name, chatID, api)
	}

	if graph, err := drawDailyGraph(summary.ByDay); err == nil {
		sendGraphVisualization(graph, "fechas", chatID, api)
	} else {
		log.Printf("error rendering daily chart: %v", err)
	}
}

func drawCategoryGraph(title string, counts []models.ValueCount) ([]byte, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("no data for %s", title)
	}
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, count := range counts {
		labels[i] = count.Value
		values[i] = float64(count.Count)
	}
	data := plot.NewCategoryData(labels, values, "Cantidad", "Quejas por "+title)
	return plot.DrawPlotBar(data)
}

func drawDailyGraph(byDay []models.DateCount) ([]byte, error) {
	if len(byDay) == 0 {
		return nil, fmt.Errorf("no rows with valid dates")
	}
	times := make([]time.Time, 0, len(byDay))
	values := make([]float64, 0, len(byDay))
	for _, day := range byDay {
		parsed, err := time.Parse(dayLayout, day.Date)
		if err != nil {
			continue
		}
		times = append(times, parsed)
		values = append(values, float64(day.Count))
	}
	data := plot.NewDateData(times, values, "Cantidad", "Quejas por día", "day")
	return plot.DrawPlotBar(data)
}
