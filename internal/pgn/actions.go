package pgn

import (
	"strconv"
	"strings"
)

// ParseActions converts one street's action text into ordered events.
//
// Tokens look like "(seat,KIND[,total])" separated by ';', optionally
// preceded by a round number such as "1.". Anything that does not fit the
// vocabulary, including a seat outside the table, becomes an Unknown event
// in its original position. tableSize <= 0 disables the seat bound check.
func ParseActions(text string, tableSize int) []ActionEvent {
	var events []ActionEvent
	for _, line := range strings.Split(text, "\n") {
		line = stripRoundPrefix(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		for _, tok := range splitTokens(line) {
			events = append(events, parseToken(tok, tableSize))
		}
	}
	return events
}

// stripRoundPrefix drops a leading "12." round counter.
func stripRoundPrefix(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && line[i] == '.' {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}

// splitTokens walks a line and returns every parenthesized token plus any
// stray text between tokens, so nothing in the source is silently dropped.
func splitTokens(line string) []string {
	var (
		tokens []string
		stray  strings.Builder
	)
	flushStray := func() {
		s := strings.Trim(stray.String(), " \t;,")
		if s != "" {
			tokens = append(tokens, s)
		}
		stray.Reset()
	}

	for i := 0; i < len(line); {
		if line[i] != '(' {
			stray.WriteByte(line[i])
			i++
			continue
		}
		end := strings.IndexByte(line[i:], ')')
		if end < 0 {
			stray.WriteString(line[i:])
			break
		}
		flushStray()
		tokens = append(tokens, line[i:i+end+1])
		i += end + 1
	}
	flushStray()
	return tokens
}

func parseToken(tok string, tableSize int) ActionEvent {
	unknown := ActionEvent{Seat: -1, Kind: Unknown, Raw: tok}
	if !strings.HasPrefix(tok, "(") || !strings.HasSuffix(tok, ")") {
		return unknown
	}

	parts := strings.Split(tok[1:len(tok)-1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 || len(parts) > 3 {
		return unknown
	}

	seat, err := strconv.Atoi(parts[0])
	if err != nil || seat < 0 {
		return unknown
	}
	unknown.Seat = seat
	if tableSize > 0 && seat >= tableSize {
		return unknown
	}

	kind, ok := actionKinds[parts[1]]
	if !ok {
		return unknown
	}

	ev := ActionEvent{Seat: seat, Kind: kind}
	if len(parts) == 3 {
		total, err := strconv.Atoi(parts[2])
		if err != nil || total < 0 {
			return unknown
		}
		ev.Total = total
		ev.HasTotal = true
	}
	return ev
}
