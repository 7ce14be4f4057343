// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package chat is the conversation gate. Each user turn either states a
// mood, which yields a genre offer and a confirmation question, or
// answers a pending offer with yes, no, change, or a new-search
// override.
//
// Override phrases are tested once per turn, before the confirmation
// keyword rules; the rules never re-test them. A matched override
// clears the offer and the turn re-enters mood inference.
package chat
