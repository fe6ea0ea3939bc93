package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/progress"
)

func TestPresenter_MapsNotificationsToMessages(t *testing.T) {
	t.Parallel()
	var got []tea.Msg
	p := &Presenter{send: func(msg tea.Msg) { got = append(got, msg) }}

	tick := progress.Tick{Percent: 25, Phase: generation.PhaseExpand, Title: "Expanding content..."}
	outcome := generation.Outcome{Filename: "a.pptx", Title: "A"}
	p.OnSubmitRejected("text must not be empty")
	p.OnTick(tick)
	p.OnSuccess(outcome)
	p.OnFailure("quota exceeded")

	want := []tea.Msg{
		RejectedMsg{Reason: "text must not be empty"},
		TickMsg{Tick: tick},
		SuccessMsg{Outcome: outcome},
		FailureMsg{Message: "quota exceeded"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestProgramRef_SendWithoutProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	// A nil program must not panic or block.
	newPresenter(ref).OnTick(progress.Tick{Percent: 10})
}
