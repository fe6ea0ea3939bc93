package transport

import (
	"encoding/json"
	"strings"

	"github.com/agbru/txt2pptx/internal/generation"
)

type generateRequest struct {
	Text      string `json:"text"`
	NumSlides int    `json:"num_slides"`
	Style     string `json:"style"`
	Language  string `json:"language"`
	APIKey    string `json:"api_key,omitempty"`
}

func newGenerateRequest(req generation.Request) generateRequest {
	return generateRequest{
		Text:      strings.TrimSpace(req.Text),
		NumSlides: req.SlideCount,
		Style:     string(req.Style),
		Language:  string(req.Language),
		APIKey:    strings.TrimSpace(req.APIKey),
	}
}

type generateResponse struct {
	Success  bool        `json:"success"`
	Filename string      `json:"filename"`
	Message  string      `json:"message"`
	Outline  *outlineDTO `json:"outline"`
}

type outlineDTO struct {
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Theme    string     `json:"theme"`
	Slides   []slideDTO `json:"slides"`
}

// slideDTO keeps only what the client displays; bullets, stats and speaker
// notes are ignored.
type slideDTO struct {
	Layout string `json:"layout"`
	Title  string `json:"title"`
}

func (r generateResponse) outcome() generation.Outcome {
	o := generation.Outcome{Filename: r.Filename, Message: r.Message}
	if r.Outline == nil {
		return o
	}
	o.Title = r.Outline.Title
	o.Subtitle = r.Outline.Subtitle
	o.Theme = r.Outline.Theme
	o.Slides = make([]generation.SlideSummary, len(r.Outline.Slides))
	for i, s := range r.Outline.Slides {
		o.Slides[i] = generation.SlideSummary{Title: s.Title, Layout: generation.LayoutKind(s.Layout)}
	}
	return o
}

// errorBody is the service's error envelope. detail is either a string or,
// for request validation failures, a list of {loc, msg} objects.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationDetail struct {
	Msg string `json:"msg"`
}

// message extracts a display message from the detail field. It returns ""
// when detail is absent or empty.
func (e errorBody) message() string {
	if len(e.Detail) == 0 || string(e.Detail) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []validationDetail
	if err := json.Unmarshal(e.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, d := range list {
			if m := strings.TrimSpace(d.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(e.Detail))
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// OK reports whether the service declared itself healthy.
func (h HealthStatus) OK() bool { return h.Status == "ok" }

// truncate returns the first n bytes of s, appending "..." if truncated.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
