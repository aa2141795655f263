package internal

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrymomot/googleauth"

// Span attribute keys. Never attach codes or tokens, only metadata.
const (
	attrProvider = "oauth.provider"
	attrOutcome  = "googleauth.outcome"
)

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
