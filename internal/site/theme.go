package site

import (
	"fmt"
	"sync"
	"time"

	"github.com/kpruthvi/portfolio/internal/tasks"
)

// Theme is the colour scheme of the site
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the store key holding the chosen theme
const ThemeKey = "theme"

// ThemeTransition is how long the transitioning flag stays set after a change
const ThemeTransition = 500 * time.Millisecond

// ParseTheme accepts "light" or "dark"
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q, expected light or dark", s)
	}
}

// ThemeManager owns the current theme and persists every change
type ThemeManager struct {
	mu            sync.Mutex
	store         Store
	scheduler     *tasks.Scheduler
	theme         Theme
	transitioning bool
	generation    uint64
	endTransition func()
}

// NewThemeManager reads the saved theme, defaulting to light, and applies it
func NewThemeManager(store Store, scheduler *tasks.Scheduler) (*ThemeManager, error) {
	m := &ThemeManager{store: store, scheduler: scheduler, theme: ThemeLight}

	if saved, ok := store.Get(ThemeKey); ok {
		if theme, err := ParseTheme(saved); err == nil {
			m.theme = theme
		}
	}

	if err := m.SetTheme(m.theme); err != nil {
		return nil, err
	}
	return m, nil
}

// SetTheme applies and saves theme
func (m *ThemeManager) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ThemeKey, string(theme)); err != nil {
		return err
	}
	m.theme = theme
	m.transitioning = m.scheduler != nil
	m.generation++
	gen := m.generation

	if m.endTransition != nil {
		m.endTransition()
	}
	if m.scheduler != nil {
		m.endTransition = m.scheduler.After(ThemeTransition, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.generation == gen {
				m.transitioning = false
			}
		})
	}
	return nil
}

// Toggle flips between light and dark and returns the new theme
func (m *ThemeManager) Toggle() (Theme, error) {
	next := ThemeDark
	if m.Theme() == ThemeDark {
		next = ThemeLight
	}
	return next, m.SetTheme(next)
}

func (m *ThemeManager) Theme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// Transitioning reports whether a theme change was applied less than ThemeTransition ago
func (m *ThemeManager) Transitioning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitioning
}

// Icon is the toggle glyph, showing the theme a click switches to
func (m *ThemeManager) Icon() string {
	if m.Theme() == ThemeLight {
		return "🌙"
	}
	return "☀️"
}

func (m *ThemeManager) AriaLabel() string {
	if m.Theme() == ThemeLight {
		return "Switch to dark mode"
	}
	return "Switch to light mode"
}
