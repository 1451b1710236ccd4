package app

import (
	"bytes"
	"encoding/json"
	"strings"
)

// responseSchema описание ответа, которое показывается модели.
// Порядок полей важен: он попадает в промпт как есть.
type responseSchema struct {
	InputType  string `json:"input_type"`
	PlaceGuess struct {
		Name    string `json:"name"`
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"place_guess"`
	Confidence   string   `json:"confidence"`
	WhatISee     []string `json:"what_i_see"`
	Significance []string `json:"significance"`
	Response     string   `json:"response"`
}

const promptTemplate = `
You are a careful image analyst. The user provides ONLY a photo.

Task:
1) Decide if this photo is a PLACE or NOT A PLACE (object/person/food/document/etc.) or AMBIGUOUS.
2) If it is a place, guess the most likely location (name/city/country) and explain the evidence.
3) If you cannot identify confidently, say ambiguous and do NOT invent details.
4) Provide significance ONLY when you are confident it’s a real identified place.
5) Output MUST be valid JSON matching this schema exactly:
{{schema}}

No extra keys. No markdown. Output only JSON.
`

var placePrompt = buildPrompt()

// BuildPrompt возвращает фиксированный промпт аналитика.
func BuildPrompt() string {
	return placePrompt
}

func buildPrompt() string {
	s := responseSchema{
		InputType:  "place_photo | not_a_place | ambiguous",
		Confidence: "number between 0 and 1",
		WhatISee:   []string{"bullet strings of visible evidence"},
		Significance: []string{
			"If place_photo and confident: factual significance bullets (history/culture/architecture). " +
				"If not_a_place or ambiguous: explain why significance can't be determined.",
		},
		Response: "one friendly paragraph summary",
	}
	s.PlaceGuess.Name = "string | null"
	s.PlaceGuess.City = "string | null"
	s.PlaceGuess.Country = "string | null"

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		panic(err)
	}

	return strings.Replace(promptTemplate, "{{schema}}", strings.TrimSuffix(buf.String(), "\n"), 1)
}
