// Package profile implements the identity-generator collaborator.
package profile

import (
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// countryNames maps generator locale codes to the country line rendered
// on the card. The underlying faker data is English-only, so the locale
// choice surfaces as card metadata rather than localized names; see
// DESIGN.md.
var countryNames = map[string]string{
	"en_US": "United States",
	"en_GB": "United Kingdom",
	"en_IN": "India",
	"de_DE": "Germany",
	"bn_BD": "Bangladesh",
}

// Generator produces formatted identity cards. It is safe for concurrent
// use; the faker source is guarded because distinct actors generate in
// parallel.
type Generator struct {
	mu       sync.Mutex
	faker    *gofakeit.Faker
	footerAd bool
}

// NewGenerator seeds a faker instance. footerAd appends the sponsored
// line to every card.
func NewGenerator(footerAd bool) *Generator {
	return &Generator{
		faker:    gofakeit.New(0),
		footerAd: footerAd,
	}
}

// Generate returns one identity card for the locale code and gender
// token. "random" resolves to a concrete gender per card. The function
// has no side effects beyond advancing the faker source.
func (g *Generator) Generate(locale, gender string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gender != "male" && gender != "female" {
		gender = strings.ToLower(g.faker.Gender())
	}

	country, ok := countryNames[locale]
	if !ok {
		country = g.faker.Country()
	}

	var b strings.Builder
	b.WriteString("➖➖➖** FAKE IDENTITY CARD **➖➖➖\n\n")
	fmt.Fprintf(&b, "👤 **Name**\n`%s`\n\n", g.faker.Name())
	fmt.Fprintf(&b, "🚻 **Gender**\n`%s`\n\n", gender)
	fmt.Fprintf(&b, "📧 **Email**\n`%s`\n\n", g.faker.Email())
	fmt.Fprintf(&b, "📍 **Address**\n`%s, %s`\n\n", g.faker.Address().Address, country)
	fmt.Fprintf(&b, "🏢 **Occupation**\n`%s`\n\n", g.faker.JobTitle())
	b.WriteString("➖➖➖➖➖➖➖➖➖➖➖➖➖➖➖")
	if g.footerAd {
		b.WriteString("\n*Sponsored by Example.com*")
	}
	return b.String()
}
