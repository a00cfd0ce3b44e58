package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/instastory/internal/fetch"
)

func TestApp_StartsOnLanding(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}})
	app.Init()

	if app.Screen() != ScreenLanding || app.Story() != nil {
		t.Fatalf("Expected landing screen, got %s", app.Screen())
	}
	if !strings.Contains(app.View(), "Get Started") {
		t.Error("Expected landing call to action")
	}
}

func TestApp_EnterStartsStory(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}})
	app.Init()

	_, cmd := app.Update(keyEnter)
	if cmd == nil {
		t.Fatal("Expected navigation command")
	}
	app.Update(cmd())

	if app.Screen() != ScreenStory {
		t.Fatalf("Expected story screen, got %s", app.Screen())
	}
	if app.Story().Phase() != fetch.PhaseLoading {
		t.Errorf("Expected entering the viewer to start a fetch, got %s", app.Story().Phase())
	}
}

func TestApp_SkipLanding(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}, SkipLanding: true})
	app.Init()

	if app.Screen() != ScreenStory || app.Story() == nil {
		t.Fatalf("Expected story screen, got %s", app.Screen())
	}
}

func TestApp_EscTearsDownStory(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}, SkipLanding: true})
	app.Init()
	app.Update(fetch.LoadedMsg{Attempt: 1, Payload: examplePayload()})

	viewer := app.Story()
	if viewer.Subscriptions() != 2 {
		t.Fatalf("Expected open subscriptions, got %d", viewer.Subscriptions())
	}

	app.Update(keyEsc)
	if app.Screen() != ScreenLanding || app.Story() != nil {
		t.Fatalf("Expected landing screen, got %s", app.Screen())
	}
	if viewer.Subscriptions() != 0 {
		t.Errorf("Expected subscriptions to be released, got %d", viewer.Subscriptions())
	}

	// re-entering creates a fresh viewer with its own subscriptions
	app.Update(navigateMsg{screen: ScreenStory})
	app.Update(fetch.LoadedMsg{Attempt: 1, Payload: examplePayload()})
	if app.Story() == viewer {
		t.Fatal("Expected a new viewer")
	}
	if app.Story().Subscriptions() != 2 {
		t.Errorf("Expected exactly two subscriptions, got %d", app.Story().Subscriptions())
	}
}

func TestApp_RoutesKeysToStory(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}, SkipLanding: true})
	app.Init()
	app.Update(fetch.LoadedMsg{Attempt: 1, Payload: examplePayload()})

	app.Update(keyRight)
	if app.Story().Index() != 1 {
		t.Errorf("Expected index 1, got %d", app.Story().Index())
	}
}

func TestApp_ChangeOnLanding(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}})
	app.Init()

	if _, cmd := app.Update(fetch.ChangedMsg{}); cmd != nil {
		t.Error("Expected no work without a viewer or watcher")
	}
}

func TestApp_Quit(t *testing.T) {
	app := NewApp(Options{Source: stubSource{}, SkipLanding: true})
	app.Init()

	_, cmd := app.Update(keyQuit)
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if !strings.Contains(app.View(), "Thanks for exploring your story!") {
		t.Error("Expected goodbye screen")
	}
}
