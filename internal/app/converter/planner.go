package converter

import (
	"context"

	"speech2text/internal/app/chunker"
	"speech2text/internal/app/model"
)

// Planner computes the window plan of a recording without slicing or
// transcribing anything.
type Planner struct {
	prober  Prober
	chunker *chunker.Chunker
}

func NewPlanner(prober Prober, chunk *chunker.Chunker) *Planner {
	return &Planner{prober: prober, chunker: chunk}
}

// Plan probes sourcePath and returns the windows it would be split into.
func (p *Planner) Plan(ctx context.Context, sourcePath string) (model.AudioSource, []model.Window, error) {
	duration, err := p.prober.Probe(ctx, sourcePath)
	if err != nil {
		return model.AudioSource{}, nil, err
	}
	windows, err := p.chunker.Plan(duration)
	if err != nil {
		return model.AudioSource{}, nil, err
	}
	return model.AudioSource{Path: sourcePath, DurationSeconds: duration}, windows, nil
}

// PlanDuration returns the windows for a recording of the given length.
func (p *Planner) PlanDuration(duration float64) ([]model.Window, error) {
	return p.chunker.Plan(duration)
}
