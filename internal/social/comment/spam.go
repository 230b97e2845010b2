// Copyright (c) 2026 Litho Press. All rights reserved.

package comment

import (
	"regexp"
	"strings"
	"unicode"
)

// # Spam Heuristics
//
// Score is a pure, deterministic function: the same body always produces
// the same score and flag set. Signals are additive and independently
// detected; each emits its own flag so moderators can see what fired.

// RejectThreshold is the total score at which a submission is refused.
const RejectThreshold = 60

// Flag identifiers emitted by [Score].
const (
	FlagContainsLinks      = "contains-links"
	FlagRepeatedCharacters = "repeated-characters"
	FlagExcessiveUppercase = "excessive-uppercase"
	FlagSpamKeywords       = "spam-keywords"
	FlagTooShort           = "too-short"
)

const (
	// linkScorePerHit is added per literal URL scheme occurrence.
	linkScorePerHit = 22
	// linkScoreCap bounds the total link contribution.
	linkScoreCap = 60
	// repeatedRunLength is the minimum run of identical characters that fires.
	repeatedRunLength = 6
	// uppercaseMinLetters is the minimum letter count before the ratio check applies.
	uppercaseMinLetters = 18
	// uppercaseRatio is the uppercase share above which the signal fires.
	uppercaseRatio = 0.6
	// minBodyRunes is the shortest acceptable comment length.
	minBodyRunes = 4

	repeatedScore  = 25
	uppercaseScore = 18
	keywordScore   = 22
	tooShortScore  = 14
)

var (
	// urlSchemeRegex matches literal http/https URL schemes.
	urlSchemeRegex = regexp.MustCompile(`https?://`)

	// keywordRegex matches a fixed spam vocabulary on word boundaries,
	// case-insensitively.
	keywordRegex = regexp.MustCompile(`(?i)\b(?:viagra|casino|jackpot|lottery|betting|forex|free money|work from home|click here)\b`)
)

// Score evaluates a comment body and returns its spam risk score together
// with the list of triggered flags, in fixed detection order.
func Score(body string) (int, []string) {
	score := 0
	flags := make([]string, 0, 5)

	// 1. Literal links. Each occurrence adds, capped, so a single pasted
	// URL is tolerated but link dumps are not.
	if hits := len(urlSchemeRegex.FindAllStringIndex(body, -1)); hits > 0 {
		linkScore := hits * linkScorePerHit
		if linkScore > linkScoreCap {
			linkScore = linkScoreCap
		}
		score += linkScore
		flags = append(flags, FlagContainsLinks)
	}

	// 2. Character flooding ("aaaaaaaa", "!!!!!!!").
	if hasRepeatedRun(body, repeatedRunLength) {
		score += repeatedScore
		flags = append(flags, FlagRepeatedCharacters)
	}

	// 3. Shouting. Only Latin and Greek scripts are counted so the ratio
	// is meaningful for cased alphabets.
	if isExcessiveUppercase(body) {
		score += uppercaseScore
		flags = append(flags, FlagExcessiveUppercase)
	}

	// 4. Known spam vocabulary.
	if keywordRegex.MatchString(body) {
		score += keywordScore
		flags = append(flags, FlagSpamKeywords)
	}

	// 5. Throwaway bodies ("ok", "+1").
	if len([]rune(strings.TrimSpace(body))) < minBodyRunes {
		score += tooShortScore
		flags = append(flags, FlagTooShort)
	}

	return score, flags
}

// hasRepeatedRun reports whether the text contains minRun or more identical
// consecutive characters.
func hasRepeatedRun(text string, minRun int) bool {
	var prev rune
	run := 0

	for _, r := range text {
		if r == prev {
			run++
			if run >= minRun {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}

	return false
}

// isExcessiveUppercase reports whether uppercase letters exceed the ratio
// threshold among at least uppercaseMinLetters cased letters.
func isExcessiveUppercase(text string) bool {
	letters := 0
	uppers := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.In(r, unicode.Latin, unicode.Greek) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			uppers++
		}
	}

	if letters < uppercaseMinLetters {
		return false
	}

	return float64(uppers) > uppercaseRatio*float64(letters)
}
