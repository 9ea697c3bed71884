package phh

import "strings"

// NormalizeCard converts log notation (e.g. 10h, ah) to PHH notation (Th, Ah).
// Unknown cards ("??") pass through.
func NormalizeCard(card string) string {
	card = strings.ToLower(strings.TrimSpace(card))
	switch {
	case card == "":
		return ""
	case card == "??":
		return card
	case len(card) < 2:
		return strings.ToUpper(card)
	}

	rank, suit := card[:len(card)-1], card[len(card)-1:]
	switch rank {
	case "10", "t":
		rank = "T"
	default:
		rank = strings.ToUpper(rank[:1])
	}
	return rank + suit
}

// NormalizeCards normalizes a slice of cards and concatenates them the way
// PHH deal actions expect ("AhKd").
func NormalizeCards(cards []string) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(NormalizeCard(c))
	}
	return b.String()
}
