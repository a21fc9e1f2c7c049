package pipeline

import (
	"errors"

	"hubstat/internal/dataset"
	"hubstat/internal/feed"
)

// ErrorKind classifies why a pipeline run produced no table.
type ErrorKind string

const (
	KindNone    ErrorKind = ""
	KindNetwork ErrorKind = "network"
	KindHTTP    ErrorKind = "http"
	KindParse   ErrorKind = "parse"
	KindSchema  ErrorKind = "schema"
	KindUnknown ErrorKind = "unknown"
)

// KindOf maps an error from the fetch or extract stages to its kind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, feed.ErrNetwork):
		return KindNetwork
	case errors.Is(err, feed.ErrHTTP):
		return KindHTTP
	case errors.Is(err, feed.ErrParse):
		return KindParse
	case errors.Is(err, dataset.ErrSchema):
		return KindSchema
	default:
		return KindUnknown
	}
}

// Hint returns operator guidance for a failure kind.
func (k ErrorKind) Hint() string {
	switch k {
	case KindNetwork:
		return "check network connectivity and feed.url"
	case KindHTTP:
		return "the feed endpoint rejected the request; check its status page"
	case KindParse:
		return "the feed returned a body that is not JSON"
	case KindSchema:
		return "the feed JSON has no 'data' array of objects"
	case KindNone:
		return ""
	default:
		return "check logs for details"
	}
}

// Outcome is the metrics label for the kind: "success" or the kind itself.
func (k ErrorKind) Outcome() string {
	if k == KindNone {
		return "success"
	}
	return string(k)
}
