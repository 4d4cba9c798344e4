package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyErrorType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty input", "", ErrorUnclassified},
		{"Whitespace only", "   ", ErrorUnclassified},
		{"Defective product", "El producto llegó defectuoso", ErrorDefective},
		{"Falla keyword", "Tiene una falla en la costura", ErrorDefective},
		{"Defect wins over size", "Producto defectuoso, talla incorrecta", ErrorDefective},
		{"Size error", "Pedí talla M y llegó S", ErrorSize},
		{"Tamaño keyword", "El tamaño no es el esperado", ErrorSize},
		{"Missing piece", "Llegó incompleto, falta una pieza", ErrorMissingPiece},
		{"Color", "El color no es el que pedí", ErrorColor},
		{"Wrong product", "Me enviaron otro producto", ErrorMismatch},
		{"Incorrecto keyword", "El modelo es incorrecto", ErrorMismatch},
		{"Transport damage", "La caja llegó golpeada por el transporte", ErrorTransport},
		{"Empaque keyword", "El empaque venía roto", ErrorTransport},
		{"Factory fault", "Viene mal de fábrica", ErrorFactory},
		{"No match", "Solo quería dejar un comentario", ErrorOther},
		{"Upper case input", "PRODUCTO DEFECTUOSO", ErrorDefective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyErrorType(tt.input); got != tt.want {
				t.Errorf("ClassifyErrorType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyErrorTypeClosedSet(t *testing.T) {
	labels := map[string]bool{}
	for _, label := range ErrorTypeLabels() {
		labels[label] = true
	}

	inputs := []string{
		"", "defecto", "talla", "pieza", "color", "incorrecto",
		"transporte", "fábrica", "xyz", "una queja cualquiera sin palabras clave",
	}
	for _, input := range inputs {
		if got := ClassifyErrorType(input); !labels[got] {
			t.Errorf("ClassifyErrorType(%q) = %q, not in the closed label set", input, got)
		}
	}
}

func TestNormalizeProduct(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty input", "", ProductNone},
		{"Pair match", "Guante multi-flex talla M", ProductGuante},
		{"Guante fallback token", "el guante llegó roto", ProductGuante},
		{"Harder pair", "Zapatos Harder número 42", ProductZapato},
		{"Harder fallback", "los harder no me quedaron", ProductZapato},
		{"Cono pair", "cono naranja de seguridad", ProductCono},
		{"Cono fallback", "el cono llegó partido", ProductCono},
		{"Unknown product title cased", "casco industrial", "Casco Industrial"},
		{"Single multi token misses pair", "producto multiusos", "Producto Multiusos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeProduct(tt.input); got != tt.want {
				t.Errorf("NormalizeProduct(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeProductTruncates(t *testing.T) {
	long := strings.Repeat("descripción larguísima ", 10)
	got := NormalizeProduct(long)
	assert.LessOrEqual(t, len([]rune(got)), 50)
}

func TestClassifyState(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Empty response", "", StatePending},
		{"Blank response", "   ", StatePending},
		{"Resolved", "Caso resuelto y cerrado", StateResolved},
		{"Solucionado", "Ya fue solucionado", StateResolved},
		{"Atendido", "Atendido por el área de calidad", StateResolved},
		{"In progress", "Estamos gestionando el reclamo", StateInProgress},
		{"Revisando", "El equipo está revisando el caso", StateInProgress},
		{"Resolved wins over in progress", "Proceso terminado, caso cerrado", StateResolved},
		{"No keyword", "Gracias por escribirnos", StatePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyState(tt.input); got != tt.want {
				t.Errorf("ClassifyState(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// The canonical labels re-classify to themselves, re-running the pipeline
// over its own output is safe.
func TestClassifyStateIdempotent(t *testing.T) {
	for _, label := range StateLabels() {
		if label == StateInProgress {
			// "En Proceso" matches the proceso keyword.
			assert.Equal(t, StateInProgress, ClassifyState(label))
			continue
		}
		assert.Equal(t, label, ClassifyState(label))
	}
}

func TestScoreSatisfaction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		initial bool
		want    int
	}{
		{"Empty initial defaults to 2", "", true, 2},
		{"Empty final defaults to 3", "", false, 3},
		{"Terrible", "un servicio horrible", true, 1},
		{"Malo", "muy malo todo", true, 2},
		{"Regular", "me parece aceptable", true, 3},
		{"Bueno on a complaint", "bueno, dentro de todo", true, 3},
		{"Bueno on a response", "quedó bueno el cambio", false, 4},
		{"Excelente on a complaint", "excelente producto pero llegó roto", true, 4},
		{"Excelente on a response", "excelente atención", false, 5},
		{"No keyword initial", "llegó el martes", true, 2},
		{"No keyword final", "se entregó el repuesto", false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreSatisfaction(tt.input, tt.initial); got != tt.want {
				t.Errorf("ScoreSatisfaction(%q, %v) = %d, want %d", tt.input, tt.initial, got, tt.want)
			}
		})
	}
}

func TestClassifyComplaintText(t *testing.T) {
	got := ClassifyComplaintText("El guante multi flex llegó defectuoso, pésimo servicio")
	assert.Equal(t, ErrorDefective, got.ErrorType)
	assert.Equal(t, ProductGuante, got.Product)
	assert.Equal(t, StatePending, got.State)
	assert.Equal(t, 1, got.Satisfaction)
}
