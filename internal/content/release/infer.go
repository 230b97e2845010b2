// Copyright (c) 2026 Litho Press. All rights reserved.

package release

import (
	"regexp"
	"strings"
	"time"

	"github.com/lithopress/litho/internal/content/post"
)

// # Date Inference
//
// Infer is a pure function over a single post. Precedence:
//
//  1. The explicit release date field, when set.
//  2. A date pattern found in the post's flattened text, scanning the
//     pattern classes below in order. The first class with a valid hit
//     wins, and within a class the first textual occurrence wins.
//  3. The post's creation timestamp, truncated to calendar day.
//
// Pattern classes, in priority order:
//
//	(a) "March 3rd, 2024" / "March 3 2024"  (ordinal suffixes stripped)
//	(b) "3 March 2024"
//	(c) "2024-07-19"                        (also "/" and "." separators)
//	(d) "19/07/2024"                        (day first)

const monthAlternation = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	monthDayYearRegex = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
	dayMonthYearRegex = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlternation + `)\s+(\d{4})\b`)
	yearFirstRegex    = regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\b`)
	dayFirstRegex     = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})\b`)

	// markupRegex strips HTML-ish tags from block text before scanning.
	markupRegex = regexp.MustCompile(`<[^>]*>`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Infer returns the best-guess release date for a post. It always
// produces a date: when neither the explicit field nor the text yields
// one, the creation day is used.
func Infer(p *post.Post) time.Time {
	if p.ReleaseDate != nil {
		return toDay(*p.ReleaseDate)
	}

	if date, ok := scanDate(flatten(p)); ok {
		return date
	}

	return toDay(p.CreatedAt)
}

// scanDate runs the pattern classes in priority order and returns the
// first occurrence that forms a valid calendar date.
func scanDate(text string) (time.Time, bool) {
	for _, match := range monthDayYearRegex.FindAllStringSubmatch(text, -1) {
		if date, ok := makeDate(match[3], monthNumber(match[1]), match[2]); ok {
			return date, true
		}
	}

	for _, match := range dayMonthYearRegex.FindAllStringSubmatch(text, -1) {
		if date, ok := makeDate(match[3], monthNumber(match[2]), match[1]); ok {
			return date, true
		}
	}

	for _, match := range yearFirstRegex.FindAllStringSubmatch(text, -1) {
		if date, ok := makeDate(match[1], numericMonth(match[2]), match[3]); ok {
			return date, true
		}
	}

	for _, match := range dayFirstRegex.FindAllStringSubmatch(text, -1) {
		if date, ok := makeDate(match[3], numericMonth(match[2]), match[1]); ok {
			return date, true
		}
	}

	return time.Time{}, false
}

// flatten concatenates every text-bearing field of the post into one
// scannable blob, stripping markup from block content.
func flatten(p *post.Post) string {
	parts := make([]string, 0, 4+len(p.Categories)+len(p.Blocks))
	parts = append(parts, p.Title, p.Excerpt)

	for _, category := range p.Categories {
		parts = append(parts, category.Name)
	}

	for _, block := range p.Blocks {
		parts = append(parts, block.Text, block.Alt, block.Caption)
	}

	return markupRegex.ReplaceAllString(strings.Join(parts, " "), " ")
}

func monthNumber(name string) time.Month {
	prefix := strings.ToLower(name)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return monthsByPrefix[prefix]
}

func numericMonth(raw string) time.Month {
	month := 0
	for _, digit := range raw {
		month = month*10 + int(digit-'0')
	}
	return time.Month(month)
}

// makeDate assembles a UTC date from string parts, rejecting values
// that do not form a real calendar day (e.g. February 30th).
func makeDate(yearRaw string, month time.Month, dayRaw string) (time.Time, bool) {
	if month < time.January || month > time.December {
		return time.Time{}, false
	}

	year, day := atoi(yearRaw), atoi(dayRaw)
	if day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, false
	}
	return date, true
}

func atoi(raw string) int {
	n := 0
	for _, digit := range raw {
		n = n*10 + int(digit-'0')
	}
	return n
}

func toDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// # Subject Classification

// gameKeywordRegex matches the vocabulary that marks a post as covering
// a game release rather than a hardware or software one.
var gameKeywordRegex = regexp.MustCompile(`(?i)\b(?:games?|gaming|playstation|ps[45]|xbox|nintendo|switch|steam|console)\b`)

// InferType classifies the post's release subject. An explicit stored
// type wins; otherwise the title and category names are scanned for
// gaming vocabulary, with tech as the default.
func InferType(p *post.Post) string {
	switch p.ReleaseType {
	case post.ReleaseTypeGame, post.ReleaseTypeTech:
		return p.ReleaseType
	}

	scope := p.Title
	for _, category := range p.Categories {
		scope += " " + category.Name
	}

	if gameKeywordRegex.MatchString(scope) {
		return post.ReleaseTypeGame
	}
	return post.ReleaseTypeTech
}
