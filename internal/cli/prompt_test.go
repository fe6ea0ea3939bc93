package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/agbru/txt2pptx/internal/generation"
)

// scriptedAsk answers prompts by message and records the defaults it saw.
type scriptedAsk struct {
	answers  map[string]any
	defaults map[string]string
	err      error
}

func (s *scriptedAsk) askOne(p survey.Prompt, response any, _ ...survey.AskOpt) error {
	if s.err != nil {
		return s.err
	}
	if s.defaults == nil {
		s.defaults = map[string]string{}
	}
	var msg string
	switch p := p.(type) {
	case *survey.Multiline:
		msg, s.defaults[p.Message] = p.Message, p.Default
	case *survey.Input:
		msg, s.defaults[p.Message] = p.Message, p.Default
	case *survey.Select:
		msg, s.defaults[p.Message] = p.Message, p.Default.(string)
	case *survey.Confirm:
		msg = p.Message
	}
	switch r := response.(type) {
	case *string:
		*r = s.answers[msg].(string)
	case *bool:
		*r = s.answers[msg].(bool)
	}
	return nil
}

func TestPrompter_PromptRequest(t *testing.T) {
	t.Parallel()
	ask := &scriptedAsk{answers: map[string]any{
		"Text to turn into slides": "  Quarterly results  ",
		"Slides (3-20)":            "12",
		"Style":                    "minimal",
		"Language":                 "en",
	}}
	p := &Prompter{askOne: ask.askOne}

	got, err := p.PromptRequest(context.Background(), generation.Request{APIKey: "k"})
	if err != nil {
		t.Fatalf("PromptRequest() = %v", err)
	}
	want := generation.Request{
		Text:       "Quarterly results",
		SlideCount: 12,
		Style:      generation.StyleMinimal,
		Language:   generation.LanguageEnglish,
		APIKey:     "k",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
	wantDefaults := map[string]string{
		"Text to turn into slides": "",
		"Slides (3-20)":            "8",
		"Style":                    "professional",
		"Language":                 "zh-TW",
	}
	if diff := cmp.Diff(wantDefaults, ask.defaults); diff != "" {
		t.Errorf("prompt defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestPrompter_Interrupt(t *testing.T) {
	t.Parallel()
	p := &Prompter{askOne: (&scriptedAsk{err: terminal.InterruptErr}).askOne}

	if _, err := p.PromptRequest(context.Background(), generation.Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("interrupted prompt error = %v, want context.Canceled", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = &Prompter{askOne: (&scriptedAsk{}).askOne}
	if _, err := p.Confirm(ctx, "again?", true); !errors.Is(err, context.Canceled) {
		t.Errorf("Confirm() on canceled context = %v", err)
	}
}

func TestValidateSlides(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"3", " 8 ", "20"} {
		if err := validateSlides(ok); err != nil {
			t.Errorf("validateSlides(%q) = %v", ok, err)
		}
	}
	for _, bad := range []any{"2", "21", "eight", "", 8} {
		if err := validateSlides(bad); err == nil {
			t.Errorf("validateSlides(%v) should fail", bad)
		}
	}
}
