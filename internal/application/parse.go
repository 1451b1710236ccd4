package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"place-lens/internal/domain/entity"
)

// ParseAnalysis разбирает ответ модели. Обёртку ```json ... ``` прощаем,
// лишние ключи нет.
func ParseAnalysis(raw string) (*entity.PlaceAnalysis, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", entity.ErrInvalidAnalysis)
	}

	if err := checkRequiredKeys(body); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()

	var a entity.PlaceAnalysis
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidAnalysis, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON object", entity.ErrInvalidAnalysis)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return &a, nil
}

// ключи схемы, которые обязаны присутствовать; null допустим только у place_guess.*
var (
	requiredKeys      = []string{"input_type", "place_guess", "confidence", "what_i_see", "significance", "response"}
	requiredGuessKeys = []string{"name", "city", "country"}
)

func checkRequiredKeys(body string) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidAnalysis, err)
	}
	if err := missingKeys(top, requiredKeys, ""); err != nil {
		return err
	}

	var guess map[string]json.RawMessage
	if err := json.Unmarshal(top["place_guess"], &guess); err != nil {
		return fmt.Errorf("%w: place_guess: %v", entity.ErrInvalidAnalysis, err)
	}
	return missingKeys(guess, requiredGuessKeys, "place_guess.")
}

func missingKeys(obj map[string]json.RawMessage, keys []string, prefix string) error {
	if obj == nil {
		return fmt.Errorf("%w: expected a JSON object", entity.ErrInvalidAnalysis)
	}

	var missing []string
	for _, k := range keys {
		v, ok := obj[k]
		if !ok || (prefix == "" && bytes.Equal(bytes.TrimSpace(v), []byte("null"))) {
			missing = append(missing, prefix+k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing keys %s", entity.ErrInvalidAnalysis, strings.Join(missing, ", "))
	}
	return nil
}

// PrettyJSON переформатирует разобранный ответ с отступами.
func PrettyJSON(a *entity.PlaceAnalysis) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
