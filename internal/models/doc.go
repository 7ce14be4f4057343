// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

/*
Package models defines the data structures shared across the service.

It is the single source of truth for the pipeline's data model:

  - MoodJudgment: structured result of analyzing one user turn (moods,
    intensity, polarity, recommended genres, summary)
  - MovieCandidate / RankedMovie: catalog records before and after scoring
  - Session / ChatMessage / PendingOffer: per-conversation state

Two invariants live here because every consumer depends on them:

 1. Intensity is always clamped to [0,100] (ClampIntensity).
 2. A MovieCandidate is recommendable only while it carries its untouched
    store record (HasRawPayload) - the provenance check the ranking engine
    enforces.

CandidateFromRecord is the validating decoder between opaque store
records and typed candidates; it tolerates missing keys and numeric type
drift and never trusts the shape of upstream data.

All types are plain data with value-semantics helpers; no internal
locking. The session store serializes access to Session instances.
*/
package models
