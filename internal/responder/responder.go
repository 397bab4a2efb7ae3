package responder

import (
	"context"
	"fmt"
)

// Responder turns a user message plus the bound document asset into a
// reply. Implementations must be deterministic per (assetId, message) as
// far as their backing model allows.
type Responder interface {
	Respond(ctx context.Context, assetId string, userMessage string) (string, error)
}

// EchoResponder is the default stand-in for a future retrieval-augmented
// generator: the reply is derived from the message alone.
type EchoResponder struct{}

func NewEcho() EchoResponder {
	return EchoResponder{}
}

func (EchoResponder) Respond(ctx context.Context, assetId string, userMessage string) (string, error) {
	return fmt.Sprintf("ECHO: %s", userMessage), nil
}
