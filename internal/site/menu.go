package site

import "sync"

// Menu is the mobile navigation drawer
type Menu struct {
	mu   sync.Mutex
	open bool
}

func NewMenu() *Menu {
	return &Menu{}
}

// Toggle opens a closed menu and closes an open one
func (m *Menu) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = !m.open
	return m.open
}

func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// HandleKey closes the menu on Escape
func (m *Menu) HandleKey(key string) {
	if key == "Escape" && m.Open() {
		m.Close()
	}
}

// HandleClick closes the menu for clicks outside both the menu and its toggle
func (m *Menu) HandleClick(insideMenu, onToggle bool) {
	if !insideMenu && !onToggle {
		m.Close()
	}
}

func (m *Menu) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// AriaExpanded is the aria-expanded attribute value for the toggle
func (m *Menu) AriaExpanded() string {
	if m.Open() {
		return "true"
	}
	return "false"
}

func (m *Menu) ToggleLabel() string {
	if m.Open() {
		return "✕"
	}
	return "☰"
}

// ScrollLocked reports whether page scrolling is disabled behind the open menu
func (m *Menu) ScrollLocked() bool {
	return m.Open()
}
