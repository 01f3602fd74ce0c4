package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

// stubGame records what the model does to it.
type stubGame struct {
	resets  int
	resizes int
	seeds   []int64
	frames  []core.InputFrame
	over    bool
	bbbv    int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	g.over = false
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{GameOver: g.over}
}

func (g *stubGame) Result() (registry.Result, bool) {
	if !g.over {
		return registry.Result{}, false
	}
	return registry.Result{GameID: "stub", Rows: 2, Cols: 2, Won: true, Duration: time.Second, BBBV: g.bbbv}, true
}

func (g *stubGame) Resize(w, h int) {
	g.resizes++
}

// fakeSaver collects saved results.
type fakeSaver struct {
	saved []registry.Result
	err   error
}

func (s *fakeSaver) SaveResult(r registry.Result) (string, error) {
	s.saved = append(s.saved, r)
	return "id", s.err
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 3, Seed: 7}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelForwardsActionsOnTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	if g.resets != 1 || g.seeds[0] != 7 {
		t.Fatalf("resets = %d, seeds = %v; want one reset with seed 7", g.resets, g.seeds)
	}

	m = step(t, m, runeKey('f'))
	m = step(t, m, runeKey('l'))
	m = step(t, m, TickMsg(time.Now()))
	m = step(t, m, TickMsg(time.Now()))

	if len(g.frames) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionFlag) || !g.frames[0].Has(core.ActionRight) {
		t.Error("first tick missing queued actions")
	}
	if g.frames[1].Has(core.ActionFlag) {
		t.Error("frame not cleared between ticks")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig())

	quit := step(t, m, runeKey('q'))
	if quit.BackToMenu() || quit.View() != "" {
		t.Error("quit should not return to menu and should clear the view")
	}

	back := step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() {
		t.Error("esc should return to menu")
	}
}

func TestModelSavesResultOnce(t *testing.T) {
	g := &stubGame{bbbv: 5}
	saver := &fakeSaver{}
	m := NewModel(g, saver, testConfig())

	g.over = true
	for range 5 {
		m = step(t, m, TickMsg(time.Now()))
	}

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.saved))
	}
	if saver.saved[0].BBBV != 5 || !m.ResultSaved() {
		t.Errorf("saved %+v, ResultSaved = %v", saver.saved[0], m.ResultSaved())
	}
}

func TestModelWaitsForAnalysis(t *testing.T) {
	g := &stubGame{}
	saver := &fakeSaver{}
	m := NewModel(g, saver, testConfig())

	g.over = true
	for range 3 {
		m = step(t, m, TickMsg(time.Now()))
	}
	if len(saver.saved) != 0 {
		t.Fatalf("saved before the wait ran out")
	}

	m = step(t, m, TickMsg(time.Now()))
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results after the wait, want 1", len(saver.saved))
	}
	if !m.ResultSaved() {
		t.Error("ResultSaved = false")
	}
}

func TestModelRestartForcesSave(t *testing.T) {
	g := &stubGame{}
	saver := &fakeSaver{}
	m := NewModel(g, saver, testConfig())

	g.over = true
	m = step(t, m, runeKey('r'))
	m = step(t, m, TickMsg(time.Now()))

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results on restart, want 1", len(saver.saved))
	}
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if g.seeds[1] == g.seeds[0] {
		t.Error("restart reused the seed")
	}
	if m.ResultSaved() {
		t.Error("ResultSaved should reset for the new game")
	}
}

func TestModelSaveErrorIsNotRetried(t *testing.T) {
	g := &stubGame{bbbv: 1}
	saver := &fakeSaver{err: errors.New("disk full")}
	m := NewModel(g, saver, testConfig())

	g.over = true
	m = step(t, m, TickMsg(time.Now()))
	m = step(t, m, TickMsg(time.Now()))

	if len(saver.saved) != 1 {
		t.Errorf("save attempts = %d, want 1", len(saver.saved))
	}
}

func TestModelWithoutSaver(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	g.over = true
	m = step(t, m, TickMsg(time.Now()))
	if m.ResultSaved() {
		t.Error("nothing should be saved without a saver")
	}
}

func TestModelResizeKeepsResizableGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testConfig())

	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 || g.resizes != 1 {
		t.Errorf("resets = %d, resizes = %d; want 1, 1", g.resets, g.resizes)
	}
	if w, h := m.screen.Width(), m.screen.Height(); w != 100 || h != 30 {
		t.Errorf("screen = %dx%d, want 100x30", w, h)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testConfig())
	if v := m.View(); v == "" {
		t.Error("empty view")
	}
}
