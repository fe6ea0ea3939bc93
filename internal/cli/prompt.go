package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/agbru/txt2pptx/internal/generation"
)

type askOneFunc func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// Prompter collects generation requests interactively.
type Prompter struct {
	askOne askOneFunc
}

// NewPrompter returns a prompter reading from the terminal.
func NewPrompter() *Prompter {
	return &Prompter{askOne: survey.AskOne}
}

// PromptRequest asks for the text, slide count, style and language, using
// defaults as the pre-filled answers. The returned request is normalized
// but not validated; the orchestrator does that on submit.
func (p *Prompter) PromptRequest(ctx context.Context, defaults generation.Request) (generation.Request, error) {
	req := defaults.Normalize()

	var text string
	if err := p.ask(ctx, &survey.Multiline{
		Message: "Text to turn into slides",
		Default: req.Text,
		Help:    fmt.Sprintf("Up to %d characters. Finish with an empty line.", generation.MaxTextLength),
	}, &text, survey.WithValidator(survey.Required)); err != nil {
		return req, err
	}

	var slides string
	if err := p.ask(ctx, &survey.Input{
		Message: fmt.Sprintf("Slides (%d-%d)", generation.MinSlides, generation.MaxSlides),
		Default: strconv.Itoa(req.SlideCount),
	}, &slides, survey.WithValidator(validateSlides)); err != nil {
		return req, err
	}

	var style string
	if err := p.ask(ctx, &survey.Select{
		Message: "Style",
		Options: tokens(generation.Styles),
		Default: string(req.Style),
	}, &style); err != nil {
		return req, err
	}

	var lang string
	if err := p.ask(ctx, &survey.Select{
		Message: "Language",
		Options: tokens(generation.Languages),
		Default: string(req.Language),
	}, &lang); err != nil {
		return req, err
	}

	req.Text = text
	req.SlideCount, _ = strconv.Atoi(strings.TrimSpace(slides))
	req.Style = generation.Style(style)
	req.Language = generation.Language(lang)
	return req.Normalize(), nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	var ok bool
	err := p.ask(ctx, &survey.Confirm{Message: message, Default: def}, &ok)
	return ok, err
}

func (p *Prompter) ask(ctx context.Context, prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.askOne(prompt, response, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return context.Canceled
	}
	return err
}

func validateSlides(ans any) error {
	s, _ := ans.(string)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < generation.MinSlides || n > generation.MaxSlides {
		return fmt.Errorf("enter a number between %d and %d", generation.MinSlides, generation.MaxSlides)
	}
	return nil
}

func tokens[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
