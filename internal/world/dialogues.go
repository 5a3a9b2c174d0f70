package world

import "github.com/curzel-it/nokemon-sub001/internal/species"

// AlwaysKey is a condition key that always reads 1.
const AlwaysKey = "always"

// Dialogue is one line an NPC can say. It is available while the progress
// value under Key equals ExpectedValue; absent keys read 0.
type Dialogue struct {
	Key           string     `yaml:"key"`
	ExpectedValue int        `yaml:"expected_value"`
	Text          string     `yaml:"text"` // Localization key
	Reward        species.ID `yaml:"reward"`
}

// AnswerKey is the progress key set once the dialogue has been read.
func (d Dialogue) AnswerKey() string {
	return "dialogue.answer." + d.Text
}

// RewardKey is the progress key set once the reward has been collected.
func (d Dialogue) RewardKey() string {
	return "dialogue.reward." + d.Text
}

// IsAvailable reports whether the condition of d holds.
func (d Dialogue) IsAvailable(values ValueReader) bool {
	if d.Key == AlwaysKey {
		return d.ExpectedValue == 1
	}
	value := 0
	if values != nil {
		if v, ok := values.Value(d.Key); ok {
			value = v
		}
	}
	return value == d.ExpectedValue
}

// NextDialogue returns the first available dialogue.
func NextDialogue(dialogues []Dialogue, values ValueReader) (Dialogue, bool) {
	for _, d := range dialogues {
		if d.IsAvailable(values) {
			return d, true
		}
	}
	return Dialogue{}, false
}

// Destination is where a teleporter leads. A zero X and Y means the
// destination world picks the spawn point.
type Destination struct {
	World uint32 `yaml:"world"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}
