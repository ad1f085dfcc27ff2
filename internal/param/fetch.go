package param

import (
	"context"
	"errors"
	"strings"
)

// SSMPrefix marks a credential source as an SSM Parameter Store path.
const SSMPrefix = "ssm:"

var ErrEmptyCredential = errors.New("credential is empty")

type Fetcher interface {
	Fetch(context.Context, string) (string, error)
}

// FetchCredential reads the API token named by source and rejects blank values.
func FetchCredential(ctx context.Context, f Fetcher, source string) (string, error) {
	value, err := f.Fetch(ctx, strings.TrimPrefix(source, SSMPrefix))
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrEmptyCredential
	}
	return value, nil
}
