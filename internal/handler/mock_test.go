package handler

import (
	"context"
	"fmt"
)

type mockDescriber struct {
	DescribeFunc func(ctx context.Context, image []byte, instruction string) (string, error)
}

func (m *mockDescriber) Describe(ctx context.Context, image []byte, instruction string) (string, error) {
	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, image, instruction)
	}
	return "", nil
}

type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) ([]byte, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return nil, nil
}

type mockReporter struct {
	resumes []Resume
	reports []Report
}

func (m *mockReporter) Resume(r Resume) error {
	m.resumes = append(m.resumes, r)
	return nil
}

func (m *mockReporter) Report(r Report) error {
	m.reports = append(m.reports, r)
	return nil
}

// recorder fakes both services. Each generated image's bytes are the prompt it
// came from, and each description names the image it describes, so the chain
// can be followed through the files.
type recorder struct {
	calls        []string
	describeErr  error
	generateErr  error
	failDescribe int
}

func (r *recorder) describer() *mockDescriber {
	return &mockDescriber{DescribeFunc: func(_ context.Context, image []byte, instruction string) (string, error) {
		r.calls = append(r.calls, "describe:"+string(image))
		if r.describeErr != nil && len(r.describes()) > r.failDescribe {
			return "", r.describeErr
		}
		return fmt.Sprintf("description of [%s]", image), nil
	}}
}

func (r *recorder) generator() *mockGenerator {
	return &mockGenerator{GenerateFunc: func(_ context.Context, prompt string) ([]byte, error) {
		r.calls = append(r.calls, "generate:"+prompt)
		if r.generateErr != nil {
			return nil, r.generateErr
		}
		return []byte(prompt), nil
	}}
}

func (r *recorder) describes() []string {
	var out []string
	for _, c := range r.calls {
		if len(c) > 9 && c[:9] == "describe:" {
			out = append(out, c)
		}
	}
	return out
}
