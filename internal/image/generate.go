package image

import "context"

// Params are the fixed request settings of an image generation call.
type Params struct {
	Model   string
	Size    string
	Quality string
}

// Generator turns a text prompt into image bytes.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
