package site

// Trigger names a UI event
type Trigger string

const (
	TriggerThemeToggle Trigger = "theme-toggle"
	TriggerMenuToggle  Trigger = "menu-toggle"
	TriggerNavLink     Trigger = "nav-link"
	TriggerOutside     Trigger = "click-outside"
	TriggerEscape      Trigger = "escape"
)

// Binding runs Action for Trigger when Guard is nil or returns true
type Binding struct {
	Trigger Trigger
	Guard   func() bool
	Action  func() error
}

// Bindings is an ordered table of event bindings, fixed at construction
type Bindings struct {
	table []Binding
}

func NewBindings(table ...Binding) *Bindings {
	return &Bindings{table: append([]Binding(nil), table...)}
}

// Dispatch runs every matching binding in order and returns how many ran.
// It stops at the first action error.
func (b *Bindings) Dispatch(trigger Trigger) (int, error) {
	ran := 0
	for _, binding := range b.table {
		if binding.Trigger != trigger {
			continue
		}
		if binding.Guard != nil && !binding.Guard() {
			continue
		}
		ran++
		if err := binding.Action(); err != nil {
			return ran, err
		}
	}
	return ran, nil
}

// DefaultBindings wires the theme toggle and the mobile menu the way the page does
func DefaultBindings(theme *ThemeManager, menu *Menu) *Bindings {
	return NewBindings(
		Binding{Trigger: TriggerThemeToggle, Action: func() error {
			_, err := theme.Toggle()
			return err
		}},
		Binding{Trigger: TriggerMenuToggle, Action: func() error {
			menu.Toggle()
			return nil
		}},
		Binding{Trigger: TriggerNavLink, Action: func() error {
			menu.Close()
			return nil
		}},
		Binding{Trigger: TriggerOutside, Action: func() error {
			menu.HandleClick(false, false)
			return nil
		}},
		Binding{Trigger: TriggerEscape, Guard: menu.Open, Action: func() error {
			menu.Close()
			return nil
		}},
	)
}
