package engine

import (
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// columnResolver resolves logical fields against one table's headers.
type columnResolver struct {
	feed    string
	headers []string
}

func (c columnResolver) optional(candidates []string) string {
	h, _ := schema.ResolveHeader(c.headers, candidates)
	return h
}

func (c columnResolver) required(field string, candidates []string) (string, error) {
	if h, ok := schema.ResolveHeader(c.headers, candidates); ok {
		return h, nil
	}
	return "", c.missing(field, candidates)
}

func (c columnResolver) missing(field string, candidates []string) *MissingColumnError {
	return &MissingColumnError{
		Feed:       c.feed,
		Field:      field,
		Candidates: candidates,
		Suggestion: schema.SuggestHeader(c.headers, candidates),
	}
}
