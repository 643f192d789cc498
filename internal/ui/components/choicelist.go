package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/gradekit/internal/ui/theme"
)

// ChoiceList is a cursor-driven option picker. In Multi mode space
// toggles the option under the cursor; otherwise the cursor itself is
// the selection.
type ChoiceList struct {
	Options []string
	Multi   bool
	Cursor  int
	checked map[int]bool
}

// NewChoiceList creates a picker over options.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{Options: options, Multi: multi, checked: map[int]bool{}}
}

// Update handles cursor movement and toggling.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space":
		if c.Multi {
			checked := make(map[int]bool, len(c.checked)+1)
			for k, v := range c.checked {
				checked[k] = v
			}
			checked[c.Cursor] = !checked[c.Cursor]
			c.checked = checked
		}
	}
	return c, nil
}

// Selected returns the chosen options in display order.
func (c ChoiceList) Selected() []string {
	if !c.Multi {
		if c.Cursor < len(c.Options) {
			return []string{c.Options[c.Cursor]}
		}
		return nil
	}
	var out []string
	for i, opt := range c.Options {
		if c.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		box := ""
		if c.Multi {
			box = "[ ] "
			if c.checked[i] {
				box = "[x] "
			}
		}
		line := fmt.Sprintf("%s%s%c)  %s", prefix, box, 'A'+rune(i%26), opt)
		if i == c.Cursor {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
