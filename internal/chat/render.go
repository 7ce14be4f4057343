// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moodvie/moodvie/internal/genre"
	"github.com/moodvie/moodvie/internal/models"
)

// overviewLimit bounds the synopsis quoted per movie, in runes.
const overviewLimit = 250

const welcomeMessage = "Selamat datang di MoodVie! Ceritakan bagaimana perasaan Anda hari ini, " +
	"dan saya akan mencarikan film yang cocok dengan mood Anda.\n\n" +
	"Contoh: \"Saya sedang sedih hari ini\" atau \"Saya merasa senang dan ingin menonton film lucu\"."

const declineMessage = "Baik, tidak masalah. Jika Anda ingin melihat rekomendasi film nanti, silakan beri tahu saya!"

const changeMessage = "Baik, genre apa yang ingin Anda tonton? Silakan sebutkan genre atau mood yang Anda inginkan."

const noMoviesMessage = "Maaf, saya tidak menemukan film yang sesuai dengan mood Anda. " +
	"Coba beri tahu saya lebih spesifik tentang genre atau mood yang Anda inginkan!"

// noReviewsMessage stands in for a review summary when the catalog
// record carries no reviews at all.
const noReviewsMessage = "Belum ada review dari netizen"

// confirmationMessage renders the mood judgment and the genre offer as
// one assistant message. It carries no recommendation marker, so mood
// inference sees it whole when the transcript is fed back as context.
func confirmationMessage(judgment models.MoodJudgment, genres []string) string {
	var b strings.Builder
	b.WriteString("**Analisis Mood:**\n")
	b.WriteString("Mood terdeteksi: ")
	b.WriteString(strings.Join(judgment.DetectedMoods, ", "))
	b.WriteString("\nIntensitas: ")
	b.WriteString(strconv.Itoa(judgment.Intensity))
	b.WriteString("%\n\n")
	b.WriteString(judgment.Summary)
	b.WriteString("\n\nBerdasarkan mood Anda, saya bisa merekomendasikan film dengan genre: ")
	b.WriteString(strings.Join(genres, ", "))
	b.WriteString(". Apakah Anda ingin melihat rekomendasi film?")
	return b.String()
}

// resultsMessage renders the served movies as a markdown list under the
// recommendation marker.
func resultsMessage(movies []models.RankedMovie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Saya menemukan %d film yang cocok untuk Anda! 🎬\n\n", len(movies))
	b.WriteString(models.RecommendationMarker)
	b.WriteByte('\n')

	for i, m := range movies {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%d. **%s**", i+1, m.Title)
		if m.ReleaseYear > 0 {
			fmt.Fprintf(&b, " (%d)", m.ReleaseYear)
		}
		b.WriteByte('\n')
		fmt.Fprintf(&b, "Rating: %s/10 (%d votes) | Skor: %s\n", formatScore(m.Rating), m.VoteCount, formatScore(m.Score))
		if names := genre.IDsToNames(m.GenreIDs); len(names) > 0 {
			fmt.Fprintf(&b, "Genre: %s\n", strings.Join(names, ", "))
		}
		if m.Overview != "" {
			fmt.Fprintf(&b, "Sinopsis: %s\n", truncateOverview(m.Overview))
		}
		fmt.Fprintf(&b, "Netizen: %s\n", m.ReviewSummary)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncateOverview(s string) string {
	runes := []rune(s)
	if len(runes) <= overviewLimit {
		return s
	}
	return string(runes[:overviewLimit]) + "..."
}
