package site

import (
	"strings"
	"sync"
	"time"

	"github.com/kpruthvi/portfolio/internal/tasks"
)

const (
	defaultPage      = "index.html"
	scrollPadding    = 20
	sectionBuffer    = 30
	shadowOffset     = 10
	scrollMoreSlack  = 100
	scrollMoreOffset = 50
)

// ScrollMoreDelay is how long after load the scroll-more indicator is considered
const ScrollMoreDelay = 800 * time.Millisecond

// ActiveLinks returns, for each href, whether it points at the current page.
// The current page is the last path segment, or index.html for a bare directory.
func ActiveLinks(pathname string, hrefs []string) []bool {
	current := pathname
	if i := strings.LastIndex(pathname, "/"); i >= 0 {
		current = pathname[i+1:]
	}
	if current == "" {
		current = defaultPage
	}

	active := make([]bool, len(hrefs))
	for i, href := range hrefs {
		active[i] = href == current
	}
	return active
}

// ScrollTarget is the page offset that places an element just below the sticky header and section nav
func ScrollTarget(elementTop, pageY, headerHeight, sectionNavHeight float64) float64 {
	return elementTop + pageY - (headerHeight + sectionNavHeight + scrollPadding)
}

// Section is a page region tracked by the section nav
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// ActiveSection returns the index of the section under the sticky offset, or -1
// when the offset falls outside every section.
func ActiveSection(pageY, headerHeight, sectionNavHeight float64, sections []Section) int {
	pos := pageY + headerHeight + sectionNavHeight + sectionBuffer
	for i, s := range sections {
		if pos >= s.Top && pos < s.Top+s.Height {
			return i
		}
	}
	return -1
}

// InitialSection is ActiveSection for the first paint: the first section is
// highlighted when nothing else is. It returns -1 only when there are no sections.
func InitialSection(pageY, headerHeight, sectionNavHeight float64, sections []Section) int {
	if i := ActiveSection(pageY, headerHeight, sectionNavHeight, sections); i >= 0 {
		return i
	}
	if len(sections) == 0 {
		return -1
	}
	return 0
}

// HeaderShadow reports whether the header draws its scrolled shadow
func HeaderShadow(pageY float64) bool {
	return pageY > shadowOffset
}

// ScrollMoreVisible reports whether a page has enough content below the fold
// to show the scroll-more indicator. Pages with a section nav never show it.
func ScrollMoreVisible(scrollHeight, clientHeight float64, hasSectionNav bool) bool {
	return !hasSectionNav && scrollHeight > clientHeight+scrollMoreSlack
}

// ScrollMoreIndicator latches the scroll-more hint: once the visitor scrolls
// past the offset it stays hidden for the rest of the page view.
type ScrollMoreIndicator struct {
	mu            sync.Mutex
	hasSectionNav bool
	visible       bool
	scrolled      bool
}

func NewScrollMoreIndicator(hasSectionNav bool) *ScrollMoreIndicator {
	return &ScrollMoreIndicator{hasSectionNav: hasSectionNav}
}

// Reveal shows the indicator when the page is long enough and the visitor has not scrolled yet
func (s *ScrollMoreIndicator) Reveal(scrollHeight, clientHeight float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scrolled && ScrollMoreVisible(scrollHeight, clientHeight, s.hasSectionNav) {
		s.visible = true
	}
	return s.visible
}

// ScheduleReveal measures the page and calls Reveal after ScrollMoreDelay
func (s *ScrollMoreIndicator) ScheduleReveal(scheduler *tasks.Scheduler, measure func() (scrollHeight, clientHeight float64)) (cancel func()) {
	return scheduler.After(ScrollMoreDelay, func() {
		s.Reveal(measure())
	})
}

// HandleScroll hides the indicator for good once pageY passes the offset
func (s *ScrollMoreIndicator) HandleScroll(pageY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.scrolled && pageY > scrollMoreOffset {
		s.scrolled = true
		s.visible = false
	}
}

func (s *ScrollMoreIndicator) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}
