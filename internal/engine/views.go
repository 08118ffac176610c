package engine

import "fmt"

// Button tokens. Incoming presses carry these verbatim; the normalizer
// does not interpret them.
const (
	btnMainStart    = "main_start"
	btnMainGenerate = "main_generate"
	btnMainSettings = "main_settings"
	btnMainHelp     = "main_help"

	btnChangeCountry = "s_change_country"
	btnChangeGender  = "s_change_gender"

	paginatePrefix = "paginate:"
)

// Fixed copy. The progress lines render in this exact order; the sequence
// is cosmetic but user-visible, so it is part of the contract.
const (
	progressFinding   = "🌍 Finding a new identity..."
	progressSearching = "🔍 Searching records..."
	progressPreparing = "✅ Identity found! Preparing profile(s)..."

	selectCountryText        = "Please select a country:"
	selectGenderText         = "Great! Now, select a gender:"
	selectDefaultCountryText = "Select your new default country:"
	selectDefaultGenderText  = "Select your new default gender:"

	expiredText = "Sorry, the profile list has expired."

	notSet = "Not Set"
)

func welcomeText(name string) string {
	return fmt.Sprintf("👋 **Hi %s!**\n\nWelcome to the **Advanced Fake Profile Generator**.\n👇 Choose an option below to get started!", name)
}

func helpText() string {
	return "**Available Commands:**\n\n" +
		"🔹 /generate `<amount>` - Generate fake profiles.\n" +
		"🔹 /settings - Set your defaults.\n" +
		"🔹 /stats - View your generation stats.\n" +
		"🔹 /help - Show this help message."
}

func statsText(count int) string {
	return fmt.Sprintf("📊 You have generated a total of **%d** profiles!", count)
}

func batchViewText(index, total int, profile string) string {
	return fmt.Sprintf("**Profile %d of %d**\n\n%s", index+1, total, profile)
}

func settingsText(defaultLocale, defaultGender string) string {
	if defaultLocale == "" {
		defaultLocale = notSet
	}
	if defaultGender == "" {
		defaultGender = notSet
	}
	return fmt.Sprintf("**Your Settings**\nDefault Country: %s\nDefault Gender: %s\n\nWhat to do?", defaultLocale, defaultGender)
}

func savedCountryText(name string) string {
	return fmt.Sprintf("Default country set to: %s\nRedirecting...", name)
}

func savedGenderText(gender string) string {
	return fmt.Sprintf("Default gender set to: %s\nRedirecting...", gender)
}

func mainMenuKeyboard() Keyboard {
	return Keyboard{
		{{Text: "🚀 Generate Profile", Data: btnMainGenerate}},
		{
			{Text: "⚙️ Settings", Data: btnMainSettings},
			{Text: "❓ Help", Data: btnMainHelp},
		},
	}
}

func backToMenuKeyboard() Keyboard {
	return Keyboard{{{Text: "<< Back to Menu", Data: btnMainStart}}}
}

func countryKeyboard() Keyboard {
	kb := make(Keyboard, 0, len(SupportedLocales))
	for _, loc := range SupportedLocales {
		kb = append(kb, []Button{{Text: loc.Name, Data: loc.Name}})
	}
	return kb
}

func genderKeyboard(withRandom bool) Keyboard {
	row := []Button{
		{Text: "👨 Male", Data: GenderMale},
		{Text: "👩‍🦰 Female", Data: GenderFemale},
	}
	if withRandom {
		row = append(row, Button{Text: "🎲 Random", Data: GenderRandom})
	}
	return Keyboard{row}
}

func settingsKeyboard() Keyboard {
	return Keyboard{
		{{Text: "Change Country", Data: btnChangeCountry}},
		{{Text: "Change Gender", Data: btnChangeGender}},
		{{Text: "<< Back to Menu", Data: btnMainStart}},
	}
}

// paginationKeyboard builds the browse controls for the batch view.
// Prev is absent at the first profile and Next at the last, so a control
// that would move the cursor out of bounds is never rendered.
func paginationKeyboard(index, total int) Keyboard {
	row := make([]Button, 0, 3)
	if index > 0 {
		row = append(row, Button{Text: "◀️ Prev", Data: fmt.Sprintf("paginate:prev:%d", index)})
	}
	row = append(row, Button{Text: "❌ Close", Data: "paginate:close:0"})
	if index < total-1 {
		row = append(row, Button{Text: "Next ▶️", Data: fmt.Sprintf("paginate:next:%d", index)})
	}
	return Keyboard{row}
}
