// Package personality supplies Sir Botty Charlton's flavor text. The report
// pipeline never calls it; the HTTP layer attaches lines to its responses.
package personality

import (
	"math/rand/v2"
	"sync"
)

// Category selects a family of lines
type Category string

const (
	Greeting Category = "greeting"
	Farewell Category = "farewell"
	Error    Category = "error"
)

// TextProvider returns one line for a category
type TextProvider interface {
	Line(c Category) string
}

var lines = map[Category][]string{
	Greeting: {
		"Alright mate! I’m Sir Botty Charlton, your fantasy football butler, cup-winning tactician and occasional tea critic. Let’s fix that squad, shall we?",
		"Good day, manager! Sir Botty here. Ready to make your opponents weep into their Bovril?",
		"Top o’ the league to ya! Sir Botty Charlton at your service. What calamity awaits your team this week?",
		"Oi oi! Fancy seeing you back. Let’s check if your team’s as clever as your haircut.",
		"Greetings from the land of tea and tactical tweaks. Sir Botty’s got your back, sunshine.",
	},
	Farewell: {
		"Cheerio! Don’t forget your transfers, and never captain a defender named Craig.",
		"Toodle-oo! May your bench warmers never outscore your XI.",
		"Godspeed, noble manager. May your triple captain not pull a hamstring.",
		"Until next time. And remember: form is temporary, Botty is forever.",
		"Laters! And tell that friend who captained a goalkeeper that Sir Botty says shame.",
	},
	Error: {
		"Blast it! Something’s gone sideways. Maybe refresh, or blame the referee.",
		"Sir Botty’s monocle just popped off. Something went wrong, try again in a mo.",
		"Ah fiddlesticks! The data’s gone walkabout. Try once more, would ya?",
		"This is more tragic than England on penalties. Please retry.",
		"Sir Botty encountered a glitch. Or as I call it, VAR in code form.",
	},
}

// Lines returns a copy of every line in a category
func Lines(c Category) []string {
	return append([]string(nil), lines[c]...)
}

// RandomProvider picks uniformly among a category's lines. Safe for concurrent use.
type RandomProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomProvider seeds the picker. Equal seeds give equal sequences.
func NewRandomProvider(seed uint64) *RandomProvider {
	return &RandomProvider{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *RandomProvider) Line(c Category) string {
	options := lines[c]
	if len(options) == 0 {
		return ""
	}
	p.mu.Lock()
	i := p.rng.IntN(len(options))
	p.mu.Unlock()
	return options[i]
}

// StaticProvider always returns a category's first line
type StaticProvider struct{}

func (StaticProvider) Line(c Category) string {
	if options := lines[c]; len(options) > 0 {
		return options[0]
	}
	return ""
}
