package veridoc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/veridoc/extract"
	"github.com/tsawler/veridoc/model"
	"github.com/tsawler/veridoc/summary"
)

const contractText = `CONTRAT DE PRESTATION DE SERVICES

Le présent contrat est conclu entre la société ACME SARL,
représentée par Monsieur Jean Dupont, et le client.

ARTICLE 3 - PRIX ET DURÉE
Le montant total de la prestation est fixé à 1500€.
La durée du contrat est de 12 mois à compter du 15/03/2024.
`

func TestProcessPlainText(t *testing.T) {
	engine := New()
	defer engine.Close()

	doc, err := engine.Process(context.Background(), []byte(contractText), "contrat.txt")
	require.NoError(t, err)

	assert.Equal(t, model.MethodPlainText, doc.Method)
	assert.Equal(t, extract.StateNormalized, doc.State)
	assert.Equal(t, 0.0, doc.OCRConfidence)

	assert.Contains(t, doc.Doc.FactsOfType(model.FactAmount), "1500€")
	assert.Contains(t, doc.Doc.FactsOfType(model.FactDuration), "12 mois")
	assert.Contains(t, doc.Doc.FactsOfType(model.FactDate), "15/03/2024")
	assert.Contains(t, doc.Doc.FactsOfType(model.FactParty), "ACME SARL")
}

func TestProcessHTML(t *testing.T) {
	html := "<html><body><h1>Contrat</h1><p>" + strings.ReplaceAll(contractText, "\n", " ") + "</p></body></html>"

	engine := New()
	defer engine.Close()

	doc, err := engine.Process(context.Background(), []byte(html), "contrat.html")
	require.NoError(t, err)

	assert.Equal(t, model.MethodHTML, doc.Method)
	assert.Contains(t, doc.Doc.FullText(), "1500€")
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := New()
	defer engine.Close()

	_, err := engine.Process(ctx, []byte("trop court"), "note.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidateFlow(t *testing.T) {
	engine := New()
	defer engine.Close()

	doc, err := engine.Process(context.Background(), []byte(contractText), "contrat.txt")
	require.NoError(t, err)

	sum := &summary.Summary{
		Title: "Contrat de prestation",
		Meta: summary.Meta{
			DateSigned: "15/03/2024",
			Amount:     "1500€",
			Duration:   "12 mois",
		},
	}

	res, err := engine.Validate(context.Background(), sum, doc.Doc)
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, 3, rep.TotalFactsChecked)
	assert.Equal(t, 3, rep.FactsVerified)
	assert.True(t, rep.ValidationPassed)
	assert.Equal(t, 0.0, rep.CitationErrorRate)
}

func TestValidateJSONFlow(t *testing.T) {
	engine := New()
	defer engine.Close()

	doc, err := engine.Process(context.Background(), []byte(contractText), "contrat.txt")
	require.NoError(t, err)

	raw := []byte(`{
		"title": "Contrat de prestation",
		"meta": {"amount": "1500€", "duration": "12 mois", "date_signed": "15/03/2024"},
		"tldr": [],
		"clauses": [],
		"red_flags": []
	}`)

	res, err := engine.ValidateJSON(context.Background(), raw, doc.Doc)
	require.NoError(t, err)
	assert.True(t, res.Report.ValidationPassed)
}

func TestValidateJSONRejectsInvalid(t *testing.T) {
	engine := New()
	defer engine.Close()

	doc, err := engine.Process(context.Background(), []byte(contractText), "contrat.txt")
	require.NoError(t, err)

	_, err = engine.ValidateJSON(context.Background(), []byte(`{"title": ""}`), doc.Doc)
	assert.Error(t, err)
}
