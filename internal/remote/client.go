package remote

import (
	"net/http"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

// NewClient builds the OpenAI client shared by the describe and generate
// services. An empty base_url keeps the public endpoint.
func NewClient(i *do.Injector) (*openai.Client, error) {
	key := do.MustInvokeNamed[string](i, "api_key")
	baseURL := do.MustInvokeNamed[string](i, "base_url")
	client := do.MustInvoke[*http.Client](i)

	return openai.NewClientWithConfig(Config(key, baseURL, client)), nil
}

func Config(key, baseURL string, client *http.Client) openai.ClientConfig {
	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = client
	return cfg
}
