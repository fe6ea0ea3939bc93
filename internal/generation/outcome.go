package generation

// LayoutKind is the slide layout chosen by the service.
type LayoutKind string

// Known layouts. The service may introduce others; they are displayed verbatim.
const (
	LayoutTitle      LayoutKind = "title_slide"
	LayoutSection    LayoutKind = "section_header"
	LayoutBullets    LayoutKind = "bullets"
	LayoutTwoColumn  LayoutKind = "two_column"
	LayoutImageLeft  LayoutKind = "image_left"
	LayoutImageRight LayoutKind = "image_right"
	LayoutKeyStats   LayoutKind = "key_stats"
	LayoutComparison LayoutKind = "comparison"
	LayoutConclusion LayoutKind = "conclusion"
)

// SlideSummary is the outline entry for one generated slide.
type SlideSummary struct {
	Title  string
	Layout LayoutKind
}

// Outcome is the result of a successful generation.
type Outcome struct {
	// Filename identifies the artifact on the service; it is the download key.
	Filename string
	// Title and Subtitle come from the generated outline.
	Title    string
	Subtitle string
	// Theme is the theme the service actually applied.
	Theme string
	// Slides is the ordered outline.
	Slides []SlideSummary
	// Message is the service's status message.
	Message string
}

// SlideTitles returns the slide titles in outline order.
func (o Outcome) SlideTitles() []string {
	titles := make([]string, len(o.Slides))
	for i, s := range o.Slides {
		titles[i] = s.Title
	}
	return titles
}
