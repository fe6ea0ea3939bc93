package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/ui"
)

// RequestPrompter supplies requests and confirmations to a Session.
type RequestPrompter interface {
	PromptRequest(ctx context.Context, defaults generation.Request) (generation.Request, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// ResultHandler runs after each successful generation, e.g. to download
// the deck.
type ResultHandler func(ctx context.Context, outcome generation.Outcome) error

// Session is the interactive loop: prompt, generate, show the result, then
// offer another generation. The previous answers pre-fill the next prompt.
type Session struct {
	orch     *orchestration.Orchestrator
	prompter RequestPrompter
	out      io.Writer
	onResult ResultHandler
}

// NewSession creates an interactive session. onResult may be nil.
func NewSession(orch *orchestration.Orchestrator, prompter RequestPrompter, out io.Writer, onResult ResultHandler) *Session {
	return &Session{orch: orch, prompter: prompter, out: out, onResult: onResult}
}

// Run loops until the user declines another generation. An interrupted
// prompt returns context.Canceled.
func (s *Session) Run(ctx context.Context, defaults generation.Request) error {
	req := defaults
	for {
		next, err := s.prompter.PromptRequest(ctx, req)
		if err != nil {
			return err
		}
		req = next

		outcome, err := s.orch.Run(ctx, req)
		var validationErr apperrors.ValidationError
		switch {
		case errors.As(err, &validationErr):
			// The presenter already showed the reason; ask again.
			continue
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err == nil && s.onResult != nil:
			if herr := s.onResult(ctx, outcome); herr != nil {
				fmt.Fprintf(s.out, "%s%v%s\n", ui.ColorRed(), herr, ui.ColorReset())
			}
		}

		again, err := s.prompter.Confirm(ctx, "Generate another deck?", true)
		if err != nil || !again {
			return err
		}
		if err := s.orch.Acknowledge(); err != nil {
			return err
		}
		fmt.Fprintln(s.out)
	}
}
