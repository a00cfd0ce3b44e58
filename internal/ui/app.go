package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/instastory/internal/emoji"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/logger"
)

// Options configures the App
type Options struct {
	Context     context.Context
	Source      fetch.Source
	Watcher     *fetch.Watcher
	SkipLanding bool
	FrameWindow time.Duration
	Clock       func() time.Time
	Logger      *logger.Logger
}

// App routes between the landing page and the story viewer. Entering the
// viewer starts a fresh fetch; leaving it tears the viewer down.
type App struct {
	opts     Options
	screen   Screen
	landing  LandingModel
	story    *StoryModel
	styles   *Styles
	keys     keyMap
	log      *logger.Logger
	width    int
	height   int
	quitting bool
}

// NewApp creates the application model
func NewApp(opts Options) *App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	styles := GetStyles()
	return &App{
		opts:    opts,
		screen:  ScreenLanding,
		landing: NewLandingModel(styles),
		styles:  styles,
		keys:    defaultKeyMap(),
		log:     opts.Logger.WithComponent("app"),
	}
}

// Init shows the first screen and starts watching the export
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{fetch.WaitForChange(a.opts.Watcher)}
	if a.opts.SkipLanding {
		cmds = append(cmds, a.enterStory())
	} else {
		cmds = append(cmds, a.landing.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active screen
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.landing, _ = a.landing.Update(msg)
		if a.story != nil {
			a.story.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.shutdown()
			return a, tea.Quit
		}
		if a.screen == ScreenStory && key.Matches(msg, a.keys.Back) {
			return a, a.enterLanding()
		}

	case navigateMsg:
		if msg.screen == a.screen {
			return a, nil
		}
		if msg.screen == ScreenStory {
			return a, a.enterStory()
		}
		return a, a.enterLanding()

	case fetch.ChangedMsg:
		next := fetch.WaitForChange(a.opts.Watcher)
		if a.story == nil {
			return a, next
		}
		a.log.Info("payload export changed, reloading")
		return a, tea.Batch(next, a.story.Reload())
	}

	if a.screen == ScreenStory && a.story != nil {
		_, cmd := a.story.Update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	a.landing, cmd = a.landing.Update(msg)
	return a, cmd
}

// enterStory stops the landing counters and starts a new viewer
func (a *App) enterStory() tea.Cmd {
	a.landing = a.landing.Stop()
	if a.story != nil {
		a.story.Close()
	}
	a.story = NewStoryModel(StoryOptions{
		Context:     a.opts.Context,
		Source:      a.opts.Source,
		FrameWindow: a.opts.FrameWindow,
		Clock:       a.opts.Clock,
		Logger:      a.opts.Logger,
		Styles:      a.styles,
	})
	a.story.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	a.screen = ScreenStory
	a.log.Debug("entered story")
	return a.story.Init()
}

// enterLanding tears down the viewer and shows a fresh landing page
func (a *App) enterLanding() tea.Cmd {
	if a.story != nil {
		a.story.Close()
		a.story = nil
	}
	a.landing = NewLandingModel(a.styles)
	a.landing, _ = a.landing.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	a.screen = ScreenLanding
	a.log.Debug("entered landing")
	return a.landing.Init()
}

func (a *App) shutdown() {
	a.quitting = true
	a.landing = a.landing.Stop()
	if a.story != nil {
		a.story.Close()
	}
}

// Screen returns the active screen
func (a *App) Screen() Screen {
	return a.screen
}

// Story returns the active viewer, nil on the landing page
func (a *App) Story() *StoryModel {
	return a.story
}

// View renders the active screen
func (a *App) View() string {
	if a.quitting {
		goodbye := a.styles.Title.Render("Thanks for exploring your story! " + emoji.GetEmoji("sparkles"))
		if a.width <= 0 || a.height <= 0 {
			return goodbye + "\n"
		}
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, goodbye)
	}
	if a.screen == ScreenStory && a.story != nil {
		return a.story.View()
	}
	return a.landing.View()
}
