package completion

import (
	"context"

	"github.com/colonyops/skrive/internal/core/suggest"
)

// Mock returns MockResult regardless of the submitted text.
type Mock struct{}

// Complete returns the built-in structured payload.
func (Mock) Complete(ctx context.Context, _ string) (suggest.Payload, error) {
	if err := ctx.Err(); err != nil {
		return suggest.Payload{}, err
	}
	return suggest.Structured(MockResult()), nil
}

// MockText is a document the mock suggestions apply to.
const MockText = "Denne intervjuguiden er designet for bruk i en bacheloroppgave som undersøker innovasjonskultur i en organisasjon. " +
	"Spørsmålene er semistrukturerte, noe som betyr at de er ment å veilede samtalen, men intervjueren bør være fleksibel og tilpasse spørsmålene etter behov. " +
	"Hvert spørsmål er basert på elementer fra Competing Values Framework (CVF) og Dobni's rammeverk for innovasjonsberedskap."

// MockResult returns a fresh copy of the built-in suggestions.
func MockResult() *suggest.Result {
	return &suggest.Result{
		Suggestions: []suggest.Suggestion{
			{
				Original: "Denne intervjuguiden er designet for bruk i en bacheloroppgave som undersøker innovasjonskultur i en organisasjon.",
				Improved: "Intervjuguiden skal brukes i en bacheloroppgave. Oppgaven undersøker innovasjonskultur i en organisasjon.",
				Rules: []string{
					"Det er ingen skam å sette punktum",
					"Sløs ikke med ord og bokstaver",
				},
				Comment: "Jeg har delt opp den lange setningen og gjort den mer direkte.",
			},
			{
				Original: "Spørsmålene er semistrukturerte, noe som betyr at de er ment å veilede samtalen, men intervjueren bør være fleksibel og tilpasse spørsmålene etter behov.",
				Improved: "Spørsmålene er semistrukturerte. De skal veilede samtalen. Intervjueren må likevel være fleksibel og tilpasse spørsmålene.",
				Rules:    []string{"Det er ingen skam å sette punktum"},
				Comment:  "Nok en lang setning delt opp for bedre flyt.",
				Annotations: []suggest.Annotation{
					{Kind: "underline", Text: "noe som betyr at"},
				},
			},
			{
				Original: "Hvert spørsmål er basert på elementer fra Competing Values Framework (CVF) og Dobni's rammeverk for innovasjonsberedskap.",
				Improved: "Spørsmålene bygger på elementer fra Competing Values Framework (CVF) og Dobni's rammeverk for innovasjonsberedskap.",
				Rules:    []string{"Sløs ikke med ord og bokstaver"},
				Comment:  "Forenklet formuleringen litt.",
			},
		},
		OverallComment: "Teksten er grei, men kan bli enda bedre med kortere setninger og litt mindre omstendelige formuleringer. Husk å tenke på leseren!",
	}
}
