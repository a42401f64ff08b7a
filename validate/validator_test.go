package validate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/veridoc/facts"
	"github.com/tsawler/veridoc/model"
	"github.com/tsawler/veridoc/summary"
)

// contractDoc processes a one-page contract whose elements carry
// positions, so both the checker and the citation engine engage.
func contractDoc() *model.ProcessedDocument {
	lines := []string{
		"ARTICLE 3 - PRIX ET DURÉE",
		"Le contrat est conclu entre ACME SARL et Jean Dupont",
		"pour un montant de 1500€",
		"sur une durée de 12 mois au total, signé le 15/03/2024.",
	}
	page := model.Page{
		Number: 1,
		Width:  612,
		Height: 792,
		Text:   strings.Join(lines, "\n"),
		Method: model.MethodLayout,
	}
	for i, l := range lines {
		page.Elements = append(page.Elements, model.TextElement{
			Text:   l,
			Page:   1,
			X:      72,
			Y:      95 + float64(i)*15,
			Width:  400,
			Height: 12,
		})
	}
	return facts.NewExtractor(nil).Process([]model.Page{page})
}

func TestValidatePasses(t *testing.T) {
	sum := &summary.Summary{
		Title: "Contrat de prestation",
		Meta: summary.Meta{
			Amount:   "1500€",
			Duration: "12 mois",
			Parties:  []string{"ACME SARL"},
		},
	}

	res, err := New(nil, nil, nil).Validate(context.Background(), sum, contractDoc(), 0.95, 0.01)
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, 3, rep.TotalFactsChecked)
	assert.Equal(t, 3, rep.FactsVerified)
	assert.Equal(t, 100.0, rep.AccuracyPercentage)
	assert.Equal(t, 0.0, rep.CitationErrorRate)
	assert.Equal(t, 100.0, rep.CitationAccuracy)
	assert.True(t, rep.ValidationPassed)
	assert.Empty(t, rep.CriticalErrors)
	assert.Empty(t, rep.Warnings)

	for _, f := range res.Facts {
		require.NotNil(t, f.Citation, "fact %q has no citation", f.Fact)
	}
	assert.Contains(t, rep.Render(), "Status: PASSED")
}

func TestValidateHallucinationFails(t *testing.T) {
	sum := &summary.Summary{
		Meta: summary.Meta{Amount: "9999€"},
	}

	res, err := New(nil, nil, nil).Validate(context.Background(), sum, contractDoc(), 0.95, 0.01)
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, 1, rep.TotalFactsChecked)
	assert.Equal(t, 1, rep.Hallucinations)
	assert.Equal(t, 0.0, rep.AccuracyPercentage)
	assert.Equal(t, 100.0, rep.CitationErrorRate)
	assert.False(t, rep.ValidationPassed)
	require.Len(t, rep.CriticalErrors, 1)
	assert.Equal(t, "hallucination detected: 9999€", rep.CriticalErrors[0])
	assert.Contains(t, rep.Render(), "Status: FAILED")
}

func TestValidateReportInvariant(t *testing.T) {
	sum := &summary.Summary{
		Meta: summary.Meta{
			Amount:   "montant flou",
			Duration: "12 mois",
		},
		KeyPoints: []string{
			"La prolongation dure 36 mois.",
			"Une pénalité de 8888€ s'applique.",
		},
		Clauses: []summary.Clause{
			{Name: "durée exceptionnelle", Importance: summary.ImportanceHigh},
		},
	}

	res, err := New(nil, nil, nil).Validate(context.Background(), sum, contractDoc(), 0.95, 0.01)
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, 1, rep.FactsVerified)
	assert.Equal(t, 1, rep.FactsMissing)
	assert.Equal(t, 1, rep.FactsModified)
	assert.Equal(t, 1, rep.Hallucinations)
	// Malformed facts stay out of the denominator.
	assert.Equal(t, rep.TotalFactsChecked,
		rep.FactsVerified+rep.FactsMissing+rep.FactsModified+rep.Hallucinations)

	assert.Equal(t, 25.0, rep.AccuracyPercentage)
	// Two of the four counted facts are citable but uncited; the clause
	// entry is not a citation candidate.
	assert.Equal(t, 50.0, rep.CitationErrorRate)
	assert.Equal(t, 50.0, rep.CitationAccuracy)
	assert.False(t, rep.ValidationPassed)

	assert.Contains(t, rep.Warnings, "malformed fact: montant flou")
	assert.Contains(t, rep.Warnings, "fact not found: 36 mois")
	assert.Contains(t, rep.Warnings, "modified fact: Clause: durée exceptionnelle")
	assert.Contains(t, rep.CriticalErrors, "hallucination detected: 8888€")
}

func TestValidateVerbatimClausePasses(t *testing.T) {
	sum := &summary.Summary{
		Meta: summary.Meta{
			DateSigned: "15/03/2024",
			Amount:     "1500€",
			Duration:   "12 mois",
			Parties:    []string{"ACME SARL"},
		},
		Clauses: []summary.Clause{
			{Name: "prix", Importance: summary.ImportanceHigh},
		},
	}

	res, err := New(nil, nil, nil).Validate(context.Background(), sum, contractDoc(), 0.95, 0.01)
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, 5, rep.TotalFactsChecked)
	assert.Equal(t, 5, rep.FactsVerified)
	assert.Equal(t, 100.0, rep.AccuracyPercentage)
	// The clause-existence entry is checked against the section map, not
	// cited, and must not count against the citation gate.
	assert.Equal(t, 0.0, rep.CitationErrorRate)
	assert.True(t, rep.ValidationPassed)
}

func TestValidateEmptySummary(t *testing.T) {
	res, err := New(nil, nil, nil).Validate(context.Background(), &summary.Summary{}, contractDoc(), 0.95, 0.01)
	require.NoError(t, err)

	rep := res.Report
	assert.Equal(t, 0, rep.TotalFactsChecked)
	assert.Equal(t, 0.0, rep.AccuracyPercentage)
	// Nothing checkable means nothing cited.
	assert.Equal(t, 100.0, rep.CitationErrorRate)
	assert.False(t, rep.ValidationPassed)
	require.NotNil(t, res.Enriched)
	assert.Empty(t, res.Enriched.KeyPoints)
}

func TestValidateEnrichment(t *testing.T) {
	sum := &summary.Summary{
		Title: "Contrat",
		Meta:  summary.Meta{Amount: "1500€"},
		KeyPoints: []string{
			"Le montant total est de 1500€.",
			"Aucune clause de sortie.",
		},
		Clauses: []summary.Clause{
			{Name: "prix", Text: "Le prix est de 1500€ sur 12 mois.", Importance: summary.ImportanceHigh},
		},
		RiskFlags: []string{"Le montant de 1500€ est élevé."},
	}

	res, err := New(nil, nil, nil).Validate(context.Background(), sum, contractDoc(), 0.95, 0.01)
	require.NoError(t, err)

	en := res.Enriched
	require.NotNil(t, en)
	assert.Equal(t, "Contrat", en.Title)

	amountRef := "p.1 §3 (x:72, y:125)"
	durationRef := "p.1 §3 (x:72, y:140)"

	// First cited fact contained in the text wins; texts mentioning no
	// cited fact pass through unchanged.
	require.Len(t, en.KeyPoints, 2)
	assert.Equal(t, "Le montant total est de 1500€. ["+amountRef+"]", en.KeyPoints[0])
	assert.Equal(t, "Aucune clause de sortie.", en.KeyPoints[1])

	require.Len(t, en.RiskFlags, 1)
	assert.Equal(t, "Le montant de 1500€ est élevé. ["+amountRef+"]", en.RiskFlags[0])

	// Clauses collect every supporting reference.
	require.Len(t, en.Clauses, 1)
	assert.Equal(t, []string{amountRef, durationRef}, en.Clauses[0].References)

	assert.Equal(t, amountRef, en.Citations["1500€"])
	assert.Equal(t, durationRef, en.Citations["12 mois"])
}

func TestValidateDeterministic(t *testing.T) {
	sum := &summary.Summary{
		Meta:      summary.Meta{Amount: "1500€", Duration: "12 mois"},
		KeyPoints: []string{"Contrat de 12 mois signé le 15/03/2024."},
	}
	doc := contractDoc()

	first, err := New(nil, nil, nil).Validate(context.Background(), sum, doc, 0.95, 0.01)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := New(nil, nil, nil).Validate(context.Background(), sum, doc, 0.95, 0.01)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestValidateDefaultThresholds(t *testing.T) {
	sum := &summary.Summary{
		Meta: summary.Meta{Amount: "1500€"},
	}

	res, err := New(nil, nil, nil).Validate(context.Background(), sum, contractDoc(), 0, 0)
	require.NoError(t, err)
	assert.True(t, res.Report.ValidationPassed)
}

func TestValidateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, nil, nil).Validate(ctx, &summary.Summary{}, contractDoc(), 0.95, 0.01)
	assert.ErrorIs(t, err, context.Canceled)
}
