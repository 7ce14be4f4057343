// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package mood

import (
	"strings"

	"github.com/moodvie/moodvie/internal/genre"
	"github.com/moodvie/moodvie/internal/llm"
	"github.com/moodvie/moodvie/internal/models"
)

const (
	// historyTurnLimit bounds how many recent turns enter the prompt.
	historyTurnLimit = 10
	// historyTurnMaxChars bounds each quoted turn, in runes.
	historyTurnMaxChars = 300
)

const systemPrompt = "Kamu adalah asisten analisis mood untuk rekomendasi film. " +
	"Jawab HANYA dengan JSON yang diminta, tanpa penjelasan tambahan."

// buildMessages renders the analysis prompt for one user turn.
func buildMessages(text string, history []models.ChatMessage) []llm.Message {
	var b strings.Builder

	b.WriteString("Analisis mood dari teks berikut dan kembalikan HANYA JSON (tanpa markdown atau komentar):\n\n")

	if block := historyBlock(history); block != "" {
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	b.WriteString("Teks pengguna: ")
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(`Format JSON yang harus dikembalikan:
{
    "detected_moods": ["mood1", "mood2"],
    "intensity_score": 0-100,
    "emotion_type": "positive/neutral/negative",
    "summary": "ringkasan empati 1-2 kalimat dalam bahasa Indonesia",
    "recommended_genres": ["Genre1", "Genre2", "Genre3"]
}

Panduan:
- detected_moods: pilih 1-3 mood dari: `)
	b.WriteString(strings.Join(models.MoodTags, ", "))
	b.WriteString("\n- intensity_score: 0 (sangat ringan) sampai 100 (sangat kuat)")
	b.WriteString("\n- emotion_type: pilih salah satu: positive, neutral, atau negative")
	b.WriteString("\n- summary: respon yang empati dan hangat dalam bahasa Indonesia")
	b.WriteString("\n- recommended_genres: 2-4 genre dari: ")
	b.WriteString(strings.Join(genre.Recommendable(), ", "))
	b.WriteString("\n\nPENTING: Kembalikan HANYA JSON tanpa markdown atau text tambahan!")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: b.String()},
	}
}

// historyBlock renders recent conversation turns so follow-up messages
// ("yang lain dong") are judged in context. Assistant turns are cut at the
// recommendation marker; the movie list itself tells the model nothing
// about the user's mood.
func historyBlock(history []models.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}

	turns := history
	if len(turns) > historyTurnLimit {
		turns = turns[len(turns)-historyTurnLimit:]
	}

	divider := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("Konteks percakapan sebelumnya:\n")
	b.WriteString(divider)
	b.WriteByte('\n')
	for _, msg := range turns {
		content := msg.Content
		label := "User"
		if msg.Role == models.RoleAssistant {
			label = "Assistant"
			if idx := strings.Index(content, models.RecommendationMarker); idx >= 0 {
				content = content[:idx]
			}
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(truncateRunes(content, historyTurnMaxChars))
		b.WriteByte('\n')
	}
	b.WriteString(divider)
	b.WriteString("\n\nGunakan konteks percakapan sebelumnya untuk memahami follow-up question atau perubahan mood pengguna.")
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
