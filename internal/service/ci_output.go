package service

import "context"

// CIOutputService publishes run results to the invoking pipeline.

type CIOutputService interface {
	EmitTag(ctx context.Context, name string) error
	EmitTagList(ctx context.Context, names []string) error
}
