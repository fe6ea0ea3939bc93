package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
)

// Request bounds mirrored from the service so invalid submissions are
// rejected locally, before any network traffic.
const (
	MinSlides     = 3
	MaxSlides     = 20
	DefaultSlides = 8
	MaxTextLength = 50000
)

// Style is the visual theme token sent to the service.
type Style string

// Supported styles.
const (
	StyleProfessional Style = "professional"
	StyleCreative     Style = "creative"
	StyleMinimal      Style = "minimal"
	StyleAcademic     Style = "academic"
	StyleDefault      Style = "default"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleProfessional, StyleCreative, StyleMinimal, StyleAcademic, StyleDefault}

// Valid reports whether s is a supported style token.
func (s Style) Valid() bool {
	for _, known := range Styles {
		if s == known {
			return true
		}
	}
	return false
}

// Language is the output language token sent to the service.
type Language string

// Supported languages.
const (
	LanguageTraditionalChinese Language = "zh-TW"
	LanguageSimplifiedChinese  Language = "zh-CN"
	LanguageEnglish            Language = "en"
	LanguageJapanese           Language = "ja"
)

// Languages lists every supported language in display order.
var Languages = []Language{LanguageTraditionalChinese, LanguageSimplifiedChinese, LanguageEnglish, LanguageJapanese}

// Valid reports whether l is a supported language token.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// Request is a single generation submission. It is created fresh for each
// submission and treated as immutable once handed to an orchestrator.
type Request struct {
	// Text is the source text to turn into a deck.
	Text string
	// SlideCount is the requested number of slides.
	SlideCount int
	// Style selects the visual theme.
	Style Style
	// Language selects the output language.
	Language Language
	// APIKey is an optional per-request model key. Blank means omitted.
	APIKey string
}

// NewRequest builds a normalized request from raw form values. Zero values
// are replaced by the service defaults; the result still needs Validate.
func NewRequest(text string, slides int, style Style, lang Language, apiKey string) Request {
	req := Request{
		Text:       text,
		SlideCount: slides,
		Style:      style,
		Language:   lang,
		APIKey:     apiKey,
	}
	return req.Normalize()
}

// Normalize trims free-text fields and fills defaults for unset values.
func (r Request) Normalize() Request {
	r.Text = strings.TrimSpace(r.Text)
	r.APIKey = strings.TrimSpace(r.APIKey)
	if r.SlideCount == 0 {
		r.SlideCount = DefaultSlides
	}
	if r.Style == "" {
		r.Style = StyleProfessional
	}
	if r.Language == "" {
		r.Language = LanguageTraditionalChinese
	}
	return r
}

// HasAPIKey reports whether the request carries a non-blank API key.
func (r Request) HasAPIKey() bool {
	return strings.TrimSpace(r.APIKey) != ""
}

// Validate checks the request against the service bounds. It returns an
// apperrors.ValidationError naming the first offending field.
func (r Request) Validate() error {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return apperrors.ValidationError{Field: "text", Message: "text must not be empty"}
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return apperrors.ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("text is %d characters, the limit is %d", n, MaxTextLength),
		}
	}
	if r.SlideCount < MinSlides || r.SlideCount > MaxSlides {
		return apperrors.ValidationError{
			Field:   "num_slides",
			Message: fmt.Sprintf("slide count must be between %d and %d, got %d", MinSlides, MaxSlides, r.SlideCount),
		}
	}
	if !r.Style.Valid() {
		return apperrors.ValidationError{Field: "style", Message: fmt.Sprintf("unknown style %q", r.Style)}
	}
	if !r.Language.Valid() {
		return apperrors.ValidationError{Field: "language", Message: fmt.Sprintf("unknown language %q", r.Language)}
	}
	return nil
}
