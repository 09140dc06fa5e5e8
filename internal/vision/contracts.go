// Package vision defines the boundary to the external image-recognition
// capability: the request/response contract and the failure taxonomy. The
// capability is opaque and metered; adapters make a single bounded attempt
// with no internal retry or backoff.
package vision

import "context"

// Request carries the image plus extraction hints for the remote capability.
type Request struct {
	Image           []byte
	ContentType     string
	TransactionType string // "income" | "expense"
	Classification  string // "personal" | "business"
	DefaultCurrency string // ISO 4217, used in the prompt only
}

// Output is a discriminated union: exactly one of Text or Structured is
// populated. Never mutated after creation.
type Output struct {
	Text       string
	Structured map[string]any
}

// PlainText wraps a free-text transcript.
func PlainText(transcript string) Output {
	return Output{Text: transcript}
}

// StructuredPayload wraps a typed JSON payload returned by the capability.
// Numbers inside the map must be json.Number so amounts survive without a
// binary floating-point intermediate.
func StructuredPayload(fields map[string]any) Output {
	return Output{Structured: fields}
}

func (o Output) IsStructured() bool {
	return o.Structured != nil
}

// Recognizer is the adapter interface the pipeline depends on.
type Recognizer interface {
	Recognize(ctx context.Context, req Request) (Output, error)
}
