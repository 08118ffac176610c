package transport

import (
	"errors"
	"strings"
	"testing"

	"github.com/m3rciful/identbot/internal/engine"
)

func TestToMarkupPreservesTokens(t *testing.T) {
	kb := engine.Keyboard{
		{{Text: "◀️ Prev", Data: "paginate:prev:1"}, {Text: "❌ Close", Data: "paginate:close:0"}},
		{{Text: "<< Back to Menu", Data: "main_start"}},
	}
	markup := toMarkup(kb)
	if markup == nil {
		t.Fatal("nil markup")
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d", len(markup.InlineKeyboard))
	}
	if got := markup.InlineKeyboard[0][0].Data; got != "paginate:prev:1" {
		t.Errorf("data = %q", got)
	}
	if got := markup.InlineKeyboard[0][0].Unique; got != "" {
		t.Errorf("unique must stay empty so data is sent verbatim, got %q", got)
	}
	if got := markup.InlineKeyboard[1][0].Text; got != "<< Back to Menu" {
		t.Errorf("text = %q", got)
	}
}

func TestToMarkupEmptyKeyboard(t *testing.T) {
	if toMarkup(nil) != nil {
		t.Error("empty keyboard must map to no markup")
	}
}

func TestRedactHidesToken(t *testing.T) {
	err := errors.New(`telegram: Post "https://api.telegram.org/bot12345:AbCd_ef-GH/sendMessage": timeout`)
	got := redact(err).Error()
	if got == err.Error() {
		t.Fatal("token not redacted")
	}
	if !strings.Contains(got, "bot<redacted>") {
		t.Errorf("redacted = %q", got)
	}
}

func TestRedactPassthrough(t *testing.T) {
	err := errors.New("plain failure")
	if redact(err) != err {
		t.Error("errors without tokens must pass through unchanged")
	}
	if redact(nil) != nil {
		t.Error("nil must stay nil")
	}
}
