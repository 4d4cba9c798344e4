// classifier.go
package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical labels. The classifiers only ever return values from these
// closed sets, plus the free-form product fallback text.
const (
	ErrorUnclassified = "Sin clasificar"
	ErrorDefective    = "Producto defectuoso"
	ErrorSize         = "Error de talla"
	ErrorMissingPiece = "Pieza faltante"
	ErrorColor        = "Color incorrecto"
	ErrorMismatch     = "Producto no coincide con lo solicitado"
	ErrorTransport    = "Daño por transporte"
	ErrorFactory      = "Producto con fallas de fábrica"
	ErrorOther        = "Otros"

	StatePending    = "Pendiente"
	StateInProgress = "En Proceso"
	StateResolved   = "Resuelto"

	ProductGuante = "Guante Multi Flex"
	ProductZapato = "Zapatos Harder"
	ProductCono   = "Cono Naranja"
	ProductNone   = "Sin especificar"
)

const maxProductLabelLen = 50

type labelRule struct {
	label    string
	keywords []string
}

// errorTypeRules is evaluated top to bottom and the first matching rule
// wins, so "falla" always lands on Producto defectuoso even though the
// factory-fault rule would also accept it. Do not reorder.
var errorTypeRules = []labelRule{
	{ErrorDefective, []string{"defectuoso", "defecto", "falla"}},
	{ErrorSize, []string{"talla", "tamaño", "número"}},
	{ErrorMissingPiece, []string{"faltante", "falta", "incompleto", "pieza"}},
	{ErrorColor, []string{"color"}},
	{ErrorMismatch, []string{"no coincide", "equivocado", "otro producto", "incorrecto"}},
	{ErrorTransport, []string{"transporte", "dañado", "empaque", "golpeado"}},
	{ErrorFactory, []string{"fábrica"}},
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ClassifyErrorType maps free complaint text onto the SEGPRO error taxonomy.
// Empty input yields Sin clasificar, unmatched input yields Otros.
func ClassifyErrorType(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ErrorUnclassified
	}
	for _, rule := range errorTypeRules {
		if containsAny(text, rule.keywords) {
			return rule.label
		}
	}
	return ErrorOther
}

// productRule requires both pair tokens to co-occur, with one distinctive
// fallback token to catch mentions like "el guante llegó roto".
type productRule struct {
	label    string
	pair     [2]string
	fallback string
}

var productRules = []productRule{
	{ProductGuante, [2]string{"multi", "flex"}, "guante"},
	{ProductZapato, [2]string{"zapato", "harder"}, "harder"},
	{ProductCono, [2]string{"cono", "naranja"}, "cono"},
}

// NormalizeProduct canonicalizes a product mention. Unrecognized products
// keep their own text, title-cased and truncated so long descriptions do
// not blow up display layouts.
func NormalizeProduct(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ProductNone
	}
	lower := strings.ToLower(trimmed)
	for _, rule := range productRules {
		pairMatch := strings.Contains(lower, rule.pair[0]) && strings.Contains(lower, rule.pair[1])
		if pairMatch || strings.Contains(lower, rule.fallback) {
			return rule.label
		}
	}
	return truncateRunes(cases.Title(language.Spanish).String(lower), maxProductLabelLen)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var resolvedKeywords = []string{"resuelto", "solucionado", "cerrado", "completado", "atendido"}
var inProgressKeywords = []string{"proceso", "gestionando", "revisando", "evaluando"}

// ClassifyState derives the resolution state from the response text. The
// resolved check runs before the in-process one, a response mentioning both
// counts as resolved.
func ClassifyState(response string) string {
	text := strings.ToLower(strings.TrimSpace(response))
	if text == "" {
		return StatePending
	}
	if containsAny(text, resolvedKeywords) {
		return StateResolved
	}
	if containsAny(text, inProgressKeywords) {
		return StateInProgress
	}
	return StatePending
}

type satisfactionBand struct {
	keywords []string
	initial  int
	final    int
}

// The same words score lower on an initial complaint than on a resolution
// response: "bueno" in a complaint is grudging, in a response it is praise.
var satisfactionBands = []satisfactionBand{
	{[]string{"pésimo", "horrible", "terrible"}, 1, 1},
	{[]string{"malo", "insatisfecho", "molesto"}, 2, 2},
	{[]string{"regular", "aceptable"}, 3, 3},
	{[]string{"bueno", "satisfecho", "bien"}, 3, 4},
	{[]string{"excelente", "perfecto", "genial"}, 4, 5},
}

// ScoreSatisfaction estimates a 1-5 satisfaction score from sentiment
// keywords. Defaults to 2 for initial complaints and 3 for final responses.
func ScoreSatisfaction(text string, initial bool) int {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower != "" {
		for _, band := range satisfactionBands {
			if containsAny(lower, band.keywords) {
				if initial {
					return band.initial
				}
				return band.final
			}
		}
	}
	if initial {
		return 2
	}
	return 3
}

// TextClassification is the result of classifying one loose complaint text,
// used for direct chat messages that are not files or URLs.
type TextClassification struct {
	ErrorType    string
	Product      string
	State        string
	Satisfaction int
}

func ClassifyComplaintText(text string) TextClassification {
	return TextClassification{
		ErrorType:    ClassifyErrorType(text),
		Product:      NormalizeProduct(text),
		State:        ClassifyState(text),
		Satisfaction: ScoreSatisfaction(text, true),
	}
}

// ErrorTypeLabels returns the closed error-type label set in rule order.
func ErrorTypeLabels() []string {
	labels := []string{ErrorUnclassified}
	for _, rule := range errorTypeRules {
		labels = append(labels, rule.label)
	}
	return append(labels, ErrorOther)
}

// StateLabels returns the closed resolution-state label set.
func StateLabels() []string {
	return []string{StatePending, StateInProgress, StateResolved}
}
