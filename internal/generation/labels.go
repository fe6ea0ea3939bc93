package generation

import (
	"fmt"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
)

// PhaseKind identifies one step of the simulated generation pipeline.
type PhaseKind string

// Pipeline phases in the order the estimator walks them. PhaseComplete is
// reserved for the terminal tick.
const (
	PhaseAnalyze  PhaseKind = "analyze"
	PhaseExpand   PhaseKind = "expand"
	PhasePlan     PhaseKind = "plan"
	PhaseLayout   PhaseKind = "layout"
	PhaseRender   PhaseKind = "render"
	PhaseFinalize PhaseKind = "finalize"
	PhaseComplete PhaseKind = "complete"
)

// MessageKey identifies a fixed user-facing message.
type MessageKey string

// Message keys.
const (
	MsgUnknownError     MessageKey = "unknown_error"
	MsgGenerationFailed MessageKey = "generation_failed"
	MsgNetworkFailure   MessageKey = "network_failure"
	MsgMalformed        MessageKey = "malformed_response"
	MsgUntitledDeck     MessageKey = "untitled_deck"
	MsgSlideCount       MessageKey = "slide_count"
	MsgGenerating       MessageKey = "generating"
	MsgDownload         MessageKey = "download"
)

// Label is the two-line text shown for a phase.
type Label struct {
	Title  string
	Detail string
}

// Dictionary maps closed enums to display strings for one language.
type Dictionary struct {
	lang     Language
	phases   map[PhaseKind]Label
	layouts  map[LayoutKind]string
	messages map[MessageKey]string
}

var english = &Dictionary{
	lang: LanguageEnglish,
	phases: map[PhaseKind]Label{
		PhaseAnalyze:  {"Analyzing text...", "Understanding the structure of your text"},
		PhaseExpand:   {"Expanding content...", "Generating complete content from your text"},
		PhasePlan:     {"Planning deck structure...", "Distributing content across slides"},
		PhaseLayout:   {"Designing layouts...", "Choosing the best layout for each slide"},
		PhaseRender:   {"Generating PPTX...", "Applying the theme and rendering slides"},
		PhaseFinalize: {"Final checks...", "Verifying layout and content"},
		PhaseComplete: {"Done!", "Preparing download..."},
	},
	layouts: map[LayoutKind]string{
		LayoutTitle:      "Cover",
		LayoutSection:    "Section",
		LayoutBullets:    "Bullets",
		LayoutTwoColumn:  "Two columns",
		LayoutImageLeft:  "Image left",
		LayoutImageRight: "Image right",
		LayoutKeyStats:   "Key stats",
		LayoutComparison: "Comparison",
		LayoutConclusion: "Conclusion",
	},
	messages: map[MessageKey]string{
		MsgUnknownError:     "unknown error",
		MsgGenerationFailed: "generation failed",
		MsgNetworkFailure:   "could not reach the generation service",
		MsgMalformed:        "the service returned an unreadable response",
		MsgUntitledDeck:     "Presentation",
		MsgSlideCount:       "%d slides",
		MsgGenerating:       "Generating...",
		MsgDownload:         "Download",
	},
}

var traditionalChinese = &Dictionary{
	lang: LanguageTraditionalChinese,
	phases: map[PhaseKind]Label{
		PhaseAnalyze:  {"正在分析文字內容...", "AI 正在理解您的文字結構"},
		PhaseExpand:   {"正在擴充內容...", "AI 正在根據您的文字生成完整內容"},
		PhasePlan:     {"正在規劃簡報結構...", "分配內容到各個投影片"},
		PhaseLayout:   {"正在設計版面佈局...", "選擇最適合的版面配置"},
		PhaseRender:   {"正在生成 PPTX...", "套用設計主題並渲染投影片"},
		PhaseFinalize: {"正在最終檢查...", "確認排版與內容完整性"},
		PhaseComplete: {"生成完成！", "正在準備下載..."},
	},
	layouts: map[LayoutKind]string{
		LayoutTitle:      "封面",
		LayoutSection:    "章節",
		LayoutBullets:    "條列",
		LayoutTwoColumn:  "雙欄",
		LayoutImageLeft:  "左圖",
		LayoutImageRight: "右圖",
		LayoutKeyStats:   "數據",
		LayoutComparison: "對比",
		LayoutConclusion: "結語",
	},
	messages: map[MessageKey]string{
		MsgUnknownError:     "未知錯誤",
		MsgGenerationFailed: "生成失敗",
		MsgNetworkFailure:   "無法連線到生成服務",
		MsgMalformed:        "服務回應格式錯誤",
		MsgUntitledDeck:     "簡報",
		MsgSlideCount:       "%d 頁投影片",
		MsgGenerating:       "生成中...",
		MsgDownload:         "下載",
	},
}

// LabelsFor returns the dictionary for lang. Languages without a dictionary
// fall back to English.
func LabelsFor(lang Language) *Dictionary {
	if lang == LanguageTraditionalChinese {
		return traditionalChinese
	}
	return english
}

// Language returns the language the dictionary was written for.
func (d *Dictionary) Language() Language { return d.lang }

// Phase returns the label for k, or k itself as the title when unknown.
func (d *Dictionary) Phase(k PhaseKind) Label {
	if l, ok := d.phases[k]; ok {
		return l
	}
	return Label{Title: string(k)}
}

// Layout returns the display name for k, or k itself when unknown.
func (d *Dictionary) Layout(k LayoutKind) string {
	if s, ok := d.layouts[k]; ok {
		return s
	}
	return string(k)
}

// Message returns the message for k, or k itself when unknown.
func (d *Dictionary) Message(k MessageKey) string {
	if s, ok := d.messages[k]; ok {
		return s
	}
	return string(k)
}

// ErrorMessages returns the generic failure messages used when a transport
// error carries no service-provided text.
func (d *Dictionary) ErrorMessages() apperrors.Messages {
	return apperrors.Messages{
		Network: d.Message(MsgNetworkFailure),
		Generic: d.Message(MsgGenerationFailed),
		Decode:  d.Message(MsgMalformed),
	}
}

// Summary renders the one-line result description, e.g. "Q3 Review · 8 slides".
func (d *Dictionary) Summary(o Outcome) string {
	title := o.Title
	if title == "" {
		title = d.Message(MsgUntitledDeck)
	}
	return title + " · " + fmt.Sprintf(d.Message(MsgSlideCount), len(o.Slides))
}
