package image

import (
	"context"

	"github.com/dmorgan81/convergence/internal/log"
	"github.com/dmorgan81/convergence/internal/remote"
	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const service = "generate"

type OpenAIGenerator struct {
	Client     *openai.Client
	Downloader *Downloader
	Params     Params
}

func NewOpenAIGenerator(i *do.Injector) (Generator, error) {
	return &OpenAIGenerator{
		Client:     do.MustInvoke[*openai.Client](i),
		Downloader: do.MustInvoke[*Downloader](i),
		Params:     DefaultParams(do.MustInvokeNamed[string](i, "generate_model")),
	}, nil
}

// DefaultParams requests one standard quality 1024x1024 image from model.
func DefaultParams(model string) Params {
	return Params{
		Model:   model,
		Size:    openai.CreateImageSize1024x1024,
		Quality: openai.CreateImageQualityStandard,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("generator").With("params", g.Params)
	log.Info("generating image")

	resp, err := g.Client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.Params.Model,
		N:              1,
		Size:           g.Params.Size,
		Quality:        g.Params.Quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return nil, remote.Wrap(service, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, remote.Wrap(service, remote.ErrEmptyResponse)
	}

	if revised := resp.Data[0].RevisedPrompt; revised != "" {
		log.Debug("prompt revised by service", "revised_prompt", revised)
	}
	return g.Downloader.Download(ctx, resp.Data[0].URL)
}
