package engine

import (
	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

// How long toasts stay on screen, in seconds.
const (
	ToastDuration          = 2.0
	ImportantToastDuration = 5.0
	maxToasts              = 4
)

// ToastMessage is a transient message with the seconds it has left.
type ToastMessage struct {
	Text      string
	Important bool
	TimeLeft  float64
}

// DialogueBox is the dialogue currently on screen.
type DialogueBox struct {
	NpcID    world.EntityID
	NpcName  string
	Dialogue world.Dialogue
}

// MenuOption is one action of the entity menu.
type MenuOption int

const (
	MenuOptionClose MenuOption = iota
	MenuOptionRemove
)

// String returns the localization key of the option label.
func (o MenuOption) String() string {
	switch o {
	case MenuOptionRemove:
		return "ui.menu.remove"
	default:
		return "ui.menu.close"
	}
}

// EntityMenu is the creative-mode menu of one entity.
type EntityMenu struct {
	ID        world.EntityID
	SpeciesID species.ID
	Name      string
	Options   []MenuOption
	Selected  int
}

func newEntityMenu(u world.ShowEntityOptions) *EntityMenu {
	return &EntityMenu{
		ID:        u.ID,
		SpeciesID: u.SpeciesID,
		Name:      u.Name,
		Options:   []MenuOption{MenuOptionRemove, MenuOptionClose},
	}
}

// pushToast queues a message, dropping the oldest beyond maxToasts.
// A message equal to the newest one only refreshes its timer.
func (e *Engine) pushToast(text string, important bool) {
	duration := ToastDuration
	if important {
		duration = ImportantToastDuration
	}
	if n := len(e.toasts); n > 0 && e.toasts[n-1].Text == text {
		e.toasts[n-1].TimeLeft = duration
		return
	}
	e.toasts = append(e.toasts, ToastMessage{Text: text, Important: important, TimeLeft: duration})
	if len(e.toasts) > maxToasts {
		e.toasts = e.toasts[len(e.toasts)-maxToasts:]
	}
}

func (e *Engine) updateToasts(dt float64) {
	kept := e.toasts[:0]
	for _, t := range e.toasts {
		t.TimeLeft -= dt
		if t.TimeLeft > 0 {
			kept = append(kept, t)
		}
	}
	e.toasts = kept
}

// updateDialogue closes the dialogue on confirm or interact, marking it
// as answered and handing out its reward once.
func (e *Engine) updateDialogue(input core.KeyboardState) {
	if !input.Confirm && !input.Interact && !input.Back {
		return
	}
	d := e.dialogue.Dialogue
	e.dialogue = nil

	e.values.SetValue(d.AnswerKey(), 1)
	if d.Reward != species.None {
		if v, _ := e.values.Value(d.RewardKey()); v != 1 {
			e.values.SetValue(d.RewardKey(), 1)
			e.giveReward(d.Reward)
		}
	}
	if err := e.Save(); err != nil {
		e.logger.Error("save failed", "err", err)
	}
}

func (e *Engine) updateMenu(input core.KeyboardState) {
	m := e.menu
	switch {
	case input.Back:
		e.menu = nil
	case input.Direction == core.DirectionUp:
		m.Selected = (m.Selected + len(m.Options) - 1) % len(m.Options)
	case input.Direction == core.DirectionDown:
		m.Selected = (m.Selected + 1) % len(m.Options)
	case input.Confirm || input.Interact:
		e.menu = nil
		if m.Options[m.Selected] == MenuOptionRemove {
			e.Apply(world.RemoveEntity{ID: m.ID})
		}
	}
}
