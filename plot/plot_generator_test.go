package plot

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBarDimensions(t *testing.T) {
	tests := []struct {
		name        string
		barCount    int
		minBarWidth float64
		wantWidth   int
		wantHeight  int
	}{
		{"sin barras", 0, 100, 0, 0},
		{"ancho invalido", 5, 0, 0, 0},
		{"una barra", 1, 100, 2300, 1293},
		{"pocas barras", 4, 100, 1840, 1035},
		{"muchas barras", 20, 100, 2850, 1603},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height := calculateBarDimensions(tt.barCount, tt.minBarWidth)
			if width != tt.wantWidth || height != tt.wantHeight {
				t.Errorf("calculateBarDimensions(%d, %v) = (%d, %d), want (%d, %d)",
					tt.barCount, tt.minBarWidth, width, height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestFindMaxValue(t *testing.T) {
	assert.Equal(t, 0.0, findMaxValue(nil))
	assert.Equal(t, 7.0, findMaxValue([]float64{3, 7, 1}))
}

func TestDrawPlotBarCategory(t *testing.T) {
	data := NewCategoryData(
		[]string{"Producto defectuoso", "Error de talla", "Pieza faltante"},
		[]float64{12, 5, 3},
		"Cantidad",
		"Quejas por tipo de error",
	)
	png, err := DrawPlotBar(data)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected PNG output")
}

func TestDrawPlotBarDate(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	data := NewDateData(
		[]time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)},
		[]float64{4, 2, 6},
		"Cantidad",
		"Quejas por día",
		"day",
	)
	png, err := DrawPlotBar(data)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected PNG output")
}

func TestDateLabelsByPeriod(t *testing.T) {
	times := []time.Time{time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)}
	tests := []struct {
		period string
		want   string
	}{
		{"year", "2024"},
		{"month", "2024-03"},
		{"day", "2024-03-07"},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			data := NewDateData(times, []float64{1}, "", "", tt.period)
			labels := data.getDateLabels()
			if labels[0] != tt.want {
				t.Errorf("period %q label = %q, want %q", tt.period, labels[0], tt.want)
			}
		})
	}
}
