package profile

import (
	"strings"
	"sync"
	"testing"
)

func TestGenerateCardFields(t *testing.T) {
	gen := NewGenerator(false)
	card := gen.Generate("en_US", "male")

	for _, field := range []string{"FAKE IDENTITY CARD", "**Name**", "**Gender**", "**Email**", "**Address**", "**Occupation**"} {
		if !strings.Contains(card, field) {
			t.Errorf("card missing %q:\n%s", field, card)
		}
	}
	if !strings.Contains(card, "`male`") {
		t.Errorf("requested gender not rendered:\n%s", card)
	}
	if !strings.Contains(card, "United States") {
		t.Errorf("country line missing:\n%s", card)
	}
	if strings.Contains(card, "Sponsored by") {
		t.Error("footer rendered despite being disabled")
	}
}

func TestGenerateFooterAd(t *testing.T) {
	gen := NewGenerator(true)
	if !strings.Contains(gen.Generate("en_GB", "female"), "*Sponsored by Example.com*") {
		t.Error("footer missing")
	}
}

func TestGenerateResolvesRandomGender(t *testing.T) {
	gen := NewGenerator(false)
	card := gen.Generate("de_DE", "random")
	if !strings.Contains(card, "`male`") && !strings.Contains(card, "`female`") {
		t.Errorf("random gender not resolved:\n%s", card)
	}
	if strings.Contains(card, "`random`") {
		t.Errorf("random leaked onto the card:\n%s", card)
	}
}

func TestGenerateUnknownLocaleStillProducesCard(t *testing.T) {
	gen := NewGenerator(false)
	card := gen.Generate("xx_XX", "female")
	if !strings.Contains(card, "**Address**") {
		t.Errorf("card incomplete:\n%s", card)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	gen := NewGenerator(false)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if card := gen.Generate("en_US", "random"); card == "" {
				t.Error("empty card")
			}
		}()
	}
	wg.Wait()
}
