package summary

import "context"

// SummaryService generates short opportunity summaries via a hosted text model.
type SummaryService interface {
	Generate(ctx context.Context, req GenerateSummaryRequest) (SummaryResponse, error)
}
