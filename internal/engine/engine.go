// Package engine owns the dialogue state machine. Handle is synchronous
// and free of wall-clock and transport dependencies: it maps the current
// session and one inbound event to a new session state plus an ordered
// list of render actions, and nothing else.
package engine

import (
	"strings"
	"time"

	"github.com/m3rciful/identbot/internal/event"
	"github.com/m3rciful/identbot/internal/session"
)

// Generator produces one formatted identity document for a locale code
// and gender token. It must be side-effect-free.
type Generator interface {
	Generate(locale, gender string) string
}

// Options tunes engine pacing.
type Options struct {
	// ProgressDelay is the pause between the cosmetic progress renders
	// of the generation transition. Zero keeps the default.
	ProgressDelay time.Duration
}

const (
	defaultProgressDelay = 500 * time.Millisecond
	redirectDelay        = time.Second
)

// Engine drives all dialogue transitions for every actor. It holds no
// per-actor state of its own; everything mutable lives in the Session.
type Engine struct {
	gen           Generator
	progressDelay time.Duration
}

// New constructs an Engine around the generator collaborator.
func New(gen Generator, opts Options) *Engine {
	delay := opts.ProgressDelay
	if delay <= 0 {
		delay = defaultProgressDelay
	}
	return &Engine{gen: gen, progressDelay: delay}
}

type handlerFunc func(*Engine, *session.Session, event.Event) []Action

// commandHandlers routes command events by name. Entry commands check the
// stage themselves; help and stats work mid-dialogue without touching it.
var commandHandlers = map[string]handlerFunc{
	"start":    (*Engine).resetToMenu,
	"help":     (*Engine).showHelp,
	"stats":    (*Engine).showStats,
	"generate": (*Engine).enterGenerate,
	"settings": (*Engine).enterSettings,
}

// stageHandlers routes button events by the actor's current stage.
// A stage/token pair with no entry here is an invalid transition and is
// absorbed as NoOp without corrupting state.
var stageHandlers = map[session.Stage]handlerFunc{
	session.StageIdle:                    (*Engine).handleMenuButton,
	session.StageAwaitingCountry:         (*Engine).handleCountry,
	session.StageAwaitingGender:          (*Engine).handleGender,
	session.StageAwaitingSettingsAction:  (*Engine).handleSettingsAction,
	session.StageAwaitingSettingsCountry: (*Engine).handleSettingsCountry,
	session.StageAwaitingSettingsGender:  (*Engine).handleSettingsGender,
}

// Handle advances the actor's dialogue by one event. It mutates sess in
// place and returns the ordered render steps. Invalid input never errors;
// it degrades to a NoOp per the tolerance policy in policy.go.
func (e *Engine) Handle(sess *session.Session, ev event.Event) []Action {
	switch ev.Kind {
	case event.KindCommand:
		name, _ := ev.Command()
		if h, ok := commandHandlers[name]; ok {
			return h(e, sess, ev)
		}
		return noOp()

	case event.KindButton:
		// The pagination sub-flow is live on whatever message carries
		// its controls, independent of the dialogue stage.
		if strings.HasPrefix(ev.Data, paginatePrefix) {
			return e.paginate(sess, ev)
		}
		// Back-to-menu works from anywhere, same as /start.
		if ev.Data == btnMainStart {
			return e.resetToMenu(sess, ev)
		}
		if h, ok := stageHandlers[sess.Stage]; ok {
			return h(e, sess, ev)
		}
		return noOp()
	}
	return noOp()
}

// resetToMenu is the universal escape hatch: back to idle, transient
// dialogue state dropped, sticky preferences and counters kept.
func (e *Engine) resetToMenu(sess *session.Session, ev event.Event) []Action {
	sess.ResetDialogue()
	return []Action{edit(welcomeText(ev.ActorName), mainMenuKeyboard())}
}

func (e *Engine) showHelp(_ *session.Session, _ event.Event) []Action {
	return []Action{edit(helpText(), backToMenuKeyboard())}
}

func (e *Engine) showStats(sess *session.Session, _ event.Event) []Action {
	return []Action{reply(statsText(sess.GenerationCount), nil)}
}

func (e *Engine) enterGenerate(sess *session.Session, ev event.Event) []Action {
	if sess.InDialogue() {
		return noOp()
	}
	_, args := ev.Command()
	sess.PendingAmount = ClampAmount(args)
	sess.Stage = session.StageAwaitingCountry
	return []Action{edit(selectCountryText, countryKeyboard())}
}

func (e *Engine) enterSettings(sess *session.Session, _ event.Event) []Action {
	if sess.InDialogue() {
		return noOp()
	}
	sess.Stage = session.StageAwaitingSettingsAction
	return []Action{edit(settingsText(sess.DefaultLocale, sess.DefaultGender), settingsKeyboard())}
}

func (e *Engine) handleMenuButton(sess *session.Session, ev event.Event) []Action {
	switch ev.Data {
	case btnMainGenerate:
		return e.enterGenerate(sess, ev)
	case btnMainSettings:
		return e.enterSettings(sess, ev)
	case btnMainHelp:
		return e.showHelp(sess, ev)
	}
	return noOp()
}

func (e *Engine) handleCountry(sess *session.Session, ev event.Event) []Action {
	if _, ok := LocaleByName(ev.Data); !ok {
		return noOp()
	}
	sess.PendingLocale = ev.Data
	sess.Stage = session.StageAwaitingGender
	return []Action{edit(selectGenderText, genderKeyboard(true))}
}

// handleGender completes the generation dialogue: it invokes the
// generator collaborator once per requested profile, replaces the batch,
// bumps the counter and returns to idle, all before the progress renders
// ever reach the transport.
func (e *Engine) handleGender(sess *session.Session, ev event.Event) []Action {
	if !validGender(ev.Data, true) {
		return noOp()
	}
	sess.PendingGender = ev.Data

	amount := sess.PendingAmount
	if amount < MinAmount {
		amount = MinAmount
	}
	locale, _ := LocaleByName(sess.PendingLocale)
	gender := sess.PendingGender

	profiles := make([]string, 0, amount)
	for i := 0; i < amount; i++ {
		profiles = append(profiles, e.gen.Generate(locale.Code, gender))
	}

	sess.Batch = profiles
	sess.Cursor = 0
	sess.BatchMessageID = 0
	sess.GenerationCount += amount
	sess.ResetDialogue()

	actions := []Action{
		edit(progressFinding, nil),
		editAfter(e.progressDelay, progressSearching, nil),
		editAfter(e.progressDelay, progressPreparing, nil),
	}

	var final Action
	if amount == 1 {
		final = editAfter(e.progressDelay, profiles[0], backToMenuKeyboard())
	} else {
		final = editAfter(e.progressDelay, batchViewText(0, amount, profiles[0]), paginationKeyboard(0, amount))
	}
	final.TrackView = true
	return append(actions, final)
}

// paginate moves the batch cursor. The token format is
// "paginate:<prev|next|close>:<index>"; the trailing index is display
// metadata only, the session cursor is authoritative.
func (e *Engine) paginate(sess *session.Session, ev event.Event) []Action {
	parts := strings.Split(ev.Data, ":")
	if len(parts) != 3 {
		return noOp()
	}

	switch parts[1] {
	case "close":
		// The batch deliberately survives a close; only the view goes away.
		return []Action{deleteCurrent()}

	case "prev", "next":
		if len(sess.Batch) == 0 || ev.MessageID != sess.BatchMessageID {
			return []Action{edit(expiredText, nil)}
		}
		cursor := sess.Cursor
		if parts[1] == "next" {
			cursor++
		} else {
			cursor--
		}
		if cursor < 0 {
			cursor = 0
		}
		if cursor > len(sess.Batch)-1 {
			cursor = len(sess.Batch) - 1
		}
		sess.Cursor = cursor
		total := len(sess.Batch)
		view := edit(batchViewText(cursor, total, sess.Batch[cursor]), paginationKeyboard(cursor, total))
		view.TrackView = true
		return []Action{view}
	}
	return noOp()
}

func (e *Engine) handleSettingsAction(sess *session.Session, ev event.Event) []Action {
	switch ev.Data {
	case btnChangeCountry:
		sess.Stage = session.StageAwaitingSettingsCountry
		return []Action{edit(selectDefaultCountryText, countryKeyboard())}
	case btnChangeGender:
		sess.Stage = session.StageAwaitingSettingsGender
		return []Action{edit(selectDefaultGenderText, genderKeyboard(false))}
	}
	return noOp()
}

func (e *Engine) handleSettingsCountry(sess *session.Session, ev event.Event) []Action {
	if _, ok := LocaleByName(ev.Data); !ok {
		return noOp()
	}
	sess.DefaultLocale = ev.Data
	sess.Stage = session.StageAwaitingSettingsAction
	return []Action{
		edit(savedCountryText(ev.Data), nil),
		editAfter(redirectDelay, settingsText(sess.DefaultLocale, sess.DefaultGender), settingsKeyboard()),
	}
}

func (e *Engine) handleSettingsGender(sess *session.Session, ev event.Event) []Action {
	if !validGender(ev.Data, false) {
		return noOp()
	}
	sess.DefaultGender = ev.Data
	sess.Stage = session.StageAwaitingSettingsAction
	return []Action{
		edit(savedGenderText(ev.Data), nil),
		editAfter(redirectDelay, settingsText(sess.DefaultLocale, sess.DefaultGender), settingsKeyboard()),
	}
}
