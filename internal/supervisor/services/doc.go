// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

// Package services adapts the application's long-running components to
// the suture.Service interface.
//
// Each wrapper declares a minimal local interface for its dependency
// instead of importing the owning package, takes the dependency in its
// constructor, and implements Serve(ctx) plus a String() name suture
// uses in supervision logs.
package services
