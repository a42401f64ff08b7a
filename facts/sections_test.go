package facts

import (
	"strings"
	"testing"
)

func TestExtractSections(t *testing.T) {
	text := Clean(`CONTRAT DE PRESTATION DE SERVICES

ARTICLE 1 - OBJET
Le présent contrat a pour objet la fourniture de prestations de conseil.

ARTICLE 2 - DURÉE
Le contrat est conclu pour une durée de 12 mois à compter de sa signature.

ARTICLE 3 - PRIX
Le montant total est fixé à 1500 euros hors taxes.

ARTICLE 4 - RÉSILIATION
Chaque partie peut résilier le contrat avec un préavis de 30 jours.

Fait à Paris, le 15/03/2024.
Signatures des parties.`)

	sections := ExtractSections(text)

	wantContains := map[string]string{
		"objet":       "a pour objet",
		"duree":       "durée de 12 mois",
		"prix":        "1500 euros",
		"resiliation": "préavis de 30 jours",
		"signatures":  "Fait à",
	}
	for name, fragment := range wantContains {
		section, ok := sections[name]
		if !ok {
			t.Errorf("section %q not found", name)
			continue
		}
		if !strings.Contains(section, fragment) {
			t.Errorf("section %q = %q, want it to contain %q", name, section, fragment)
		}
	}

	if _, ok := sections["confidentialite"]; ok {
		t.Error("section confidentialite should be absent")
	}
	if _, ok := sections["propriete"]; ok {
		t.Error("section propriete should be absent")
	}
}

func TestExtractSectionsWindow(t *testing.T) {
	text := strings.Repeat("x", 200) + " durée du contrat " + strings.Repeat("y", 800)

	sections := ExtractSections(text)
	section, ok := sections["duree"]
	if !ok {
		t.Fatal("section duree not found")
	}
	if !strings.Contains(section, "durée") {
		t.Errorf("section window lost the heading: %q", section)
	}
	// 50 chars of left context, the match, up to 500 chars after.
	if len(section) > 50+len("durée")+500+4 {
		t.Errorf("window too large: %d bytes", len(section))
	}
	if strings.HasPrefix(section, strings.Repeat("x", 160)) {
		t.Error("window includes too much left context")
	}
}

func TestExtractSectionsUTF8Boundaries(t *testing.T) {
	// Multibyte runes right at the window edges must not be split.
	text := strings.Repeat("é", 100) + " résiliation " + strings.Repeat("à", 400)

	sections := ExtractSections(text)
	section, ok := sections["resiliation"]
	if !ok {
		t.Fatal("section resiliation not found")
	}
	if !strings.Contains(section, "résiliation") {
		t.Errorf("section = %q", section)
	}
	for _, r := range section {
		if r == '�' {
			t.Fatal("window split a multibyte rune")
		}
	}
}

func TestExtractSectionsEmpty(t *testing.T) {
	if got := ExtractSections(""); len(got) != 0 {
		t.Errorf("ExtractSections(\"\") = %v, want empty", got)
	}
}
