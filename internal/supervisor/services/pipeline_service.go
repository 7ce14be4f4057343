// MoodVie - Mood-Driven Movie Recommendation Service
// Copyright 2026 MoodVie Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moodvie/moodvie

package services

import (
	"context"
)

// PipelineRunner matches *events.Pipeline's Run method.
type PipelineRunner interface {
	Run(ctx context.Context) error
}

// PipelineService runs the event pipeline's consumer router under
// supervision. Construction and final Shutdown of the pipeline stay
// with the caller; the service owns only the run loop.
type PipelineService struct {
	pipeline PipelineRunner
	name     string
}

// NewPipelineService creates an event pipeline service wrapper.
func NewPipelineService(pipeline PipelineRunner) *PipelineService {
	return &PipelineService{
		pipeline: pipeline,
		name:     "event-pipeline",
	}
}

// Serve implements suture.Service. Blocks in the router until the
// context is canceled or the pipeline fails.
func (p *PipelineService) Serve(ctx context.Context) error {
	return p.pipeline.Run(ctx)
}

// String implements fmt.Stringer for supervision logs.
func (p *PipelineService) String() string {
	return p.name
}
