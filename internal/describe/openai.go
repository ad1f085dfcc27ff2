package describe

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dmorgan81/convergence/internal/log"
	"github.com/dmorgan81/convergence/internal/remote"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"
)

const service = "describe"

type OpenAIDescriber struct {
	Client *openai.Client
	Model  string
}

func NewOpenAIDescriber(i *do.Injector) (Describer, error) {
	return &OpenAIDescriber{
		Client: do.MustInvoke[*openai.Client](i),
		Model:  do.MustInvokeNamed[string](i, "describe_model"),
	}, nil
}

func (d *OpenAIDescriber) Describe(ctx context.Context, image []byte, instruction string) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("describer").With("model", d.Model, "bytes", len(image))
	log.Info("describing image")

	resp, err := d.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     d.Model,
		MaxTokens: MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    DataURL(image),
						Detail: openai.ImageURLDetailAuto,
					}},
				},
			},
		},
	})
	if err != nil {
		return "", remote.Wrap(service, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", remote.Wrap(service, remote.ErrEmptyResponse)
	}

	text := resp.Choices[0].Message.Content
	log.Info("received description", "chars", len(text), "finish_reason", resp.Choices[0].FinishReason)
	return text, nil
}

// DataURL inlines image as a base64 data URL. The MIME type is sniffed from the
// bytes; anything unrecognised is sent as JPEG.
func DataURL(image []byte) string {
	mime := http.DetectContentType(image)
	mime = lo.Ternary(strings.HasPrefix(mime, "image/"), mime, "image/jpeg")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}
