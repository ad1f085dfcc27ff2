package handler

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/dmorgan81/convergence/internal/describe"
	"github.com/dmorgan81/convergence/internal/image"
	"github.com/dmorgan81/convergence/internal/log"
	"github.com/dmorgan81/convergence/internal/store"
	"github.com/samber/do"
)

type Input struct {
	Folder         string
	GeneratePrompt string
	DescribePrompt string
	Iterations     int
}

// Output reports the span of a run: Start is the first index this invocation
// wrote and Next is where the following invocation will resume.
type Output struct {
	Folder string
	Start  int
	Next   int
	Seeded bool
}

type Handler struct {
	describer describe.Describer
	generator image.Generator
	reporter  Reporter
	now       func() time.Time
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		describer: do.MustInvoke[describe.Describer](i),
		generator: do.MustInvoke[image.Generator](i),
		reporter:  do.MustInvoke[Reporter](i),
		now:       time.Now,
	}, nil
}

func New(describer describe.Describer, generator image.Generator, reporter Reporter) *Handler {
	return &Handler{describer, generator, reporter, time.Now}
}

// Handle continues the run in input.Folder for input.Iterations iterations,
// seeding it first when the folder is empty.
func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("handler").With("folder", input.Folder)
	log.Info("starting convergence run", "iterations", input.Iterations)

	run, err := store.Open(ctx, input.Folder)
	if err != nil {
		return Output{}, &StageError{Stage: StageOpen, Err: err}
	}

	out := Output{Folder: run.Folder, Start: run.Start, Next: run.Start}
	if run.Start > 0 {
		if err := h.reporter.Resume(Resume{Folder: run.Folder, Files: run.Files, Start: run.Start}); err != nil {
			return out, err
		}
	} else {
		if err := h.seed(ctx, run, input.GeneratePrompt); err != nil {
			return out, err
		}
		out.Seeded = true
		out.Next = 1
	}

	first := out.Next
	for index := first; index < first+input.Iterations; index++ {
		if err := h.iterate(ctx, run, index, input.DescribePrompt); err != nil {
			return out, err
		}
		out.Next = index + 1
	}

	log.Info("finished convergence run", "start", out.Start, "next", out.Next, "seeded", out.Seeded)
	return out, nil
}

func (h *Handler) seed(ctx context.Context, run *store.Run, prompt string) error {
	log.FromContextOrDiscard(ctx).WithGroup("handler").Info("seeding run", "prompt", prompt)

	img, err := h.generator.Generate(ctx, prompt)
	if err != nil {
		return &StageError{Index: 0, Stage: StageSeed, Err: err}
	}
	if err := run.Save(ctx, 0, img); err != nil {
		return &StageError{Index: 0, Stage: StageSave, Err: err}
	}
	return nil
}

func (h *Handler) iterate(ctx context.Context, run *store.Run, index int, instruction string) error {
	log := log.FromContextOrDiscard(ctx).WithGroup("handler").With("iteration", index)

	prev, err := run.Load(ctx, index-1)
	if errors.Is(err, fs.ErrNotExist) {
		err = &MissingPredecessorError{Index: index - 1, Path: run.Path(index - 1), Err: err}
	}
	if err != nil {
		return &StageError{Index: index, Stage: StageLoad, Err: err}
	}

	start := h.now()
	description, err := h.describer.Describe(ctx, prev, instruction)
	if err != nil {
		return &StageError{Index: index, Stage: StageDescribe, Err: err}
	}
	log.Debug("described predecessor", "description", description)

	img, err := h.generator.Generate(ctx, description)
	if err != nil {
		return &StageError{Index: index, Stage: StageGenerate, Err: err}
	}
	if err := run.Save(ctx, index, img); err != nil {
		return &StageError{Index: index, Stage: StageSave, Err: err}
	}

	elapsed := h.now().Sub(start)
	log.Info("finished iteration", "elapsed", elapsed)
	return h.reporter.Report(Report{Index: index, Elapsed: elapsed, Description: description})
}
