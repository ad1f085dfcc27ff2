package describe

import "context"

// MaxTokens bounds the length of a description.
const MaxTokens = 1234

// Describer describes an image, steered by an instruction.
type Describer interface {
	Describe(ctx context.Context, image []byte, instruction string) (string, error)
}
