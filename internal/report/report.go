// Package report renders generated outlines as a standalone HTML page.
//
// Outline text comes from the service and is treated as untrusted: every
// string is stripped of markup with a bluemonday strict policy before
// html/template escapes it.
package report

import (
	"bytes"
	"html"
	"html/template"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
)

// Deck is one generated outline in a report.
type Deck struct {
	Outcome     generation.Outcome
	DownloadURL string
	// Location is where the deck was stored locally or in S3, if anywhere.
	Location string
}

type slideView struct {
	Number int
	Title  string
	Layout string
}

type deckView struct {
	Title       string
	Subtitle    string
	Summary     string
	Theme       string
	DownloadURL string
	Location    string
	Slides      []slideView
}

type pageView struct {
	Lang      string
	Generated string
	Download  string
	Decks     []deckView
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// clean strips markup and decodes the entities bluemonday emits, leaving
// plain text for the template to escape exactly once.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer().Sanitize(s)))
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>txt2pptx</title>
<style>
body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;color:#1f2933}
h2{margin-bottom:0}.sub{color:#52606d;margin-top:.25rem}
.layout{color:#7b8794;font-size:.85em;margin-left:.5em}
footer{color:#9aa5b1;font-size:.8em;margin-top:3rem}
</style>
</head>
<body>
{{range .Decks}}<section>
<h2>{{.Title}}</h2>
{{if .Subtitle}}<p class="sub">{{.Subtitle}}</p>
{{end}}<p>{{.Summary}}{{if .Theme}} ({{.Theme}}){{end}}</p>
<ol>
{{range .Slides}}<li>{{.Title}}<span class="layout">{{.Layout}}</span></li>
{{end}}</ol>
{{if .DownloadURL}}<p><a href="{{.DownloadURL}}">{{$.Download}}</a></p>
{{end}}{{if .Location}}<p><code>{{.Location}}</code></p>
{{end}}</section>
{{end}}<footer>{{.Generated}}</footer>
</body>
</html>
`))

// Render writes the report for decks to w.
func Render(w io.Writer, decks []Deck, labels *generation.Dictionary, now time.Time) error {
	if labels == nil {
		labels = generation.LabelsFor(generation.LanguageEnglish)
	}
	view := pageView{
		Lang:      string(labels.Language()),
		Generated: now.Format(time.RFC3339),
		Download:  labels.Message(generation.MsgDownload),
	}
	for _, d := range decks {
		view.Decks = append(view.Decks, newDeckView(d, labels))
	}
	if err := page.Execute(w, view); err != nil {
		return apperrors.WrapError(err, "render report")
	}
	return nil
}

func newDeckView(d Deck, labels *generation.Dictionary) deckView {
	o := d.Outcome
	o.Title = clean(o.Title)
	dv := deckView{
		Title:       o.Title,
		Subtitle:    clean(o.Subtitle),
		Summary:     labels.Summary(o),
		Theme:       clean(o.Theme),
		DownloadURL: d.DownloadURL,
		Location:    d.Location,
	}
	if dv.Title == "" {
		dv.Title = labels.Message(generation.MsgUntitledDeck)
	}
	for i, s := range o.Slides {
		dv.Slides = append(dv.Slides, slideView{
			Number: i + 1,
			Title:  clean(s.Title),
			Layout: labels.Layout(s.Layout),
		})
	}
	return dv
}

// WriteFile renders the report into path.
func WriteFile(path string, decks []Deck, labels *generation.Dictionary) error {
	var buf bytes.Buffer
	if err := Render(&buf, decks, labels, time.Now()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return apperrors.WrapError(err, "write report %s", path)
	}
	return nil
}
