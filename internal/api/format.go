package telegram

import (
	"fmt"
	"strings"

	app "place-lens/internal/application"
	"place-lens/internal/domain/entity"
)

// лимит Telegram на длину сообщения в символах
const maxMessageRunes = 4096

// FormatAnalysis превращает ответ модели в сообщение для чата.
// Если ответ не разобрался, отдаём сырой текст.
func FormatAnalysis(out *app.AnalysisOutput) string {
	if out.Parsed == nil {
		return truncate(out.Raw)
	}
	a := out.Parsed

	var sb strings.Builder
	switch {
	case a.IsPlace():
		loc := a.PlaceGuess.Location()
		if loc == "" {
			loc = "место без названия"
		}
		fmt.Fprintf(&sb, "📍 %s (уверенность %.0f%%)\n", loc, a.Confidence*100)
	case a.InputType == entity.InputNotAPlace:
		sb.WriteString("🚫 Похоже, это не место\n")
	default:
		fmt.Fprintf(&sb, "🤔 Не могу уверенно определить место (уверенность %.0f%%)\n", a.Confidence*100)
	}

	writeList(&sb, "👀 Что видно:", a.WhatISee)
	writeList(&sb, "🏛 Значимость:", a.Significance)

	if a.Response != "" {
		sb.WriteString("\n")
		sb.WriteString(a.Response)
	}

	return truncate(strings.TrimRight(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("• ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageRunes {
		return s
	}
	return string(r[:maxMessageRunes-1]) + "…"
}
