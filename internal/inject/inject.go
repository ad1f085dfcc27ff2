package inject

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/convergence/internal/config"
	"github.com/dmorgan81/convergence/internal/describe"
	"github.com/dmorgan81/convergence/internal/handler"
	"github.com/dmorgan81/convergence/internal/image"
	"github.com/dmorgan81/convergence/internal/log"
	"github.com/dmorgan81/convergence/internal/param"
	"github.com/dmorgan81/convergence/internal/remote"
	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

// Setup registers every service of a run. Providers are lazy, so AWS is only
// configured when the credential lives in Parameter Store.
func Setup(ctx context.Context, cfg config.Config, stdout io.Writer) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, &http.Client{Timeout: cfg.Timeout})

	do.Provide[param.Fetcher](injector, func(i *do.Injector) (param.Fetcher, error) {
		if strings.HasPrefix(cfg.KeySource, param.SSMPrefix) {
			return param.NewParameterStoreFetcher(i)
		}
		return &param.FileFetcher{}, nil
	})
	do.ProvideNamed[string](injector, "api_key", func(i *do.Injector) (string, error) {
		return param.FetchCredential(ctx, do.MustInvoke[param.Fetcher](i), cfg.KeySource)
	})
	do.ProvideNamedValue[string](injector, "base_url", cfg.BaseURL)
	do.ProvideNamedValue[string](injector, "describe_model", cfg.DescribeModel)
	do.ProvideNamedValue[string](injector, "generate_model", cfg.GenerateModel)

	do.Provide[*openai.Client](injector, remote.NewClient)
	do.Provide[describe.Describer](injector, describe.NewOpenAIDescriber)
	do.Provide[*image.Downloader](injector, image.NewDownloader)
	do.Provide[image.Generator](injector, image.NewOpenAIGenerator)
	do.ProvideValue[handler.Reporter](injector, &handler.TextReporter{W: stdout})

	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}
