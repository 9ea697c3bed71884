package pgn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	labelPlayerChips = "Player Chips:"
	labelPlayerCards = "Player Cards:"
	labelBigBlind    = "Big Blind:"
	labelSmallBlind  = "Small Blind:"
	labelButton      = "Button:"
	labelNewCards    = "New Cards:"
	labelWinners     = "Winners:"

	headerPrehand = "PREHAND"
)

var sectionHeaders = map[string]Street{
	"PREFLOP": Preflop,
	"FLOP":    Flop,
	"TURN":    Turn,
	"RIVER":   River,
	"SETTLE":  Settle,
}

var (
	potPattern     = regexp.MustCompile(`\(\s*Pot\s+(\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*\[([^\]]*)\]\s*\)`)
	bracketPattern = regexp.MustCompile(`\[([^\]]*)\]`)
)

// section tracks which part of the document a line belongs to.
type section int

const (
	sectionPreamble section = iota
	sectionPrehand
	sectionStreet
	sectionSettle
)

// ParseDocument tokenizes a single hand record. It fails with an error
// wrapping ErrMalformedRecord when the starting-chip line or every street
// section is missing, or when a recognized field carries an unreadable value.
func ParseDocument(text string) (*HandRecord, error) {
	rec := &HandRecord{Button: -1}

	var (
		cur       = sectionPreamble
		block     *StreetBlock
		haveChips bool
		winners   []int
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if line == headerPrehand {
			cur, block = sectionPrehand, nil
			continue
		}
		if street, ok := sectionHeaders[line]; ok {
			if street == Settle {
				cur, block = sectionSettle, nil
				continue
			}
			// A repeated header continues the street it names.
			if block = rec.Street(street); block == nil {
				rec.Streets = append(rec.Streets, StreetBlock{Street: street})
				block = &rec.Streets[len(rec.Streets)-1]
			}
			cur = sectionStreet
			continue
		}

		switch {
		case strings.HasPrefix(line, labelPlayerChips):
			if haveChips {
				continue
			}
			chips, err := parseIntList(strings.TrimPrefix(line, labelPlayerChips))
			if err != nil {
				return nil, malformed("player chips: %v", err)
			}
			if len(chips) == 0 {
				return nil, malformed("player chips: empty list")
			}
			for seat, c := range chips {
				if c < 0 {
					return nil, malformed("player chips: seat %d has negative stack %d", seat, c)
				}
			}
			rec.StartingChips = chips
			haveChips = true

		case strings.HasPrefix(line, labelBigBlind):
			v, err := parseAmount(strings.TrimPrefix(line, labelBigBlind))
			if err != nil {
				return nil, malformed("big blind: %v", err)
			}
			rec.BigBlind = v

		case strings.HasPrefix(line, labelSmallBlind):
			v, err := parseAmount(strings.TrimPrefix(line, labelSmallBlind))
			if err != nil {
				return nil, malformed("small blind: %v", err)
			}
			rec.SmallBlind = v

		case strings.HasPrefix(line, labelButton):
			v, err := parseAmount(strings.TrimPrefix(line, labelButton))
			if err != nil {
				return nil, malformed("button: %v", err)
			}
			rec.Button = v

		case strings.HasPrefix(line, labelPlayerCards):
			rec.HoleCards = parseCardGroups(strings.TrimPrefix(line, labelPlayerCards))

		case strings.HasPrefix(line, labelWinners):
			pots, seats, err := parseWinners(strings.TrimPrefix(line, labelWinners))
			if err != nil {
				return nil, malformed("winners: %v", err)
			}
			rec.Pots = pots
			winners = seats

		case strings.HasPrefix(line, labelNewCards):
			if block != nil {
				if groups := parseCardGroups(strings.TrimPrefix(line, labelNewCards)); len(groups) > 0 {
					block.Board = append(block.Board, groups[0]...)
				}
			}

		case cur == sectionStreet && block != nil:
			block.Lines = append(block.Lines, line)
		}
	}

	if !haveChips {
		return nil, malformed("missing %q line", labelPlayerChips)
	}
	if len(rec.Streets) == 0 {
		return nil, malformed("no street section")
	}

	n := rec.TableSize()
	for _, seat := range winners {
		if seat < 0 || seat >= n {
			return nil, malformed("winner seat %d outside table of %d", seat, n)
		}
	}
	rec.Winner = winnerFromSeats(winners)

	for i := range rec.Streets {
		b := &rec.Streets[i]
		b.Actions = ParseActions(strings.Join(b.Lines, "\n"), n)
	}
	return rec, nil
}

// SplitRecords cuts a document holding several concatenated hands into one
// chunk per hand. Each hand after the first starts at a PREHAND header; text
// before the first header stays with the first hand. A document without any
// header is returned whole.
func SplitRecords(text string) []string {
	lines := strings.Split(text, "\n")
	var (
		chunks  []string
		cur     []string
		started bool
	)
	flush := func() {
		chunk := strings.TrimSpace(strings.Join(cur, "\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		cur = cur[:0]
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == headerPrehand {
			if started {
				flush()
			}
			started = true
		}
		cur = append(cur, line)
	}
	flush()
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// parseWinners reads either the settlement form
// "(Pot 0,20,-1,[0]);(Pot 1,6,-1,[2])" or a bare bracket "[0,2]".
// The declared winners are those of the first pot.
func parseWinners(s string) ([]Pot, []int, error) {
	if matches := potPattern.FindAllStringSubmatch(s, -1); len(matches) > 0 {
		pots := make([]Pot, 0, len(matches))
		for _, m := range matches {
			id, _ := strconv.Atoi(m[1])
			amount, _ := strconv.Atoi(m[2])
			rank, _ := strconv.Atoi(m[3])
			seats, err := parseIntList(m[4])
			if err != nil {
				return nil, nil, fmt.Errorf("pot %d: %w", id, err)
			}
			pots = append(pots, Pot{ID: id, Amount: amount, Rank: rank, Winners: seats})
		}
		return pots, pots[0].Winners, nil
	}

	m := bracketPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, nil, nil
	}
	seats, err := parseIntList(m[1])
	if err != nil {
		return nil, nil, err
	}
	return nil, seats, nil
}

// parseIntList parses "1, 2,3" with optional surrounding brackets.
// An empty list is valid and returns nil.
func parseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", strings.TrimSpace(p))
		}
		out = append(out, v)
	}
	return out, nil
}

func parseAmount(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", strings.TrimSpace(s))
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %d", v)
	}
	return v, nil
}

// parseCardGroups reads "[Ah Kd], [7c 2d]" into one slice per bracket.
func parseCardGroups(s string) [][]string {
	matches := bracketPattern.FindAllStringSubmatch(s, -1)
	groups := make([][]string, 0, len(matches))
	for _, m := range matches {
		cards := strings.FieldsFunc(m[1], func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t'
		})
		groups = append(groups, cards)
	}
	return groups
}
