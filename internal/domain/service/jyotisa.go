package service

import (
	"context"

	"Jyotisa/internal/domain/models"
)

// ChartBuilder builds a natal chart from raw birth input.
type ChartBuilder interface {
	Build(ctx context.Context, in models.BirthInput) (*models.Chart, error)
}

// StrengthEstimator scores the seven classical planets of a chart.
type StrengthEstimator interface {
	Estimate(ctx context.Context, chart *models.Chart) (models.StrengthTable, error)
}

// TransitAnalyzer computes present-moment positions.
type TransitAnalyzer interface {
	Current(ctx context.Context, at models.Moment) (*models.Transits, error)
}
