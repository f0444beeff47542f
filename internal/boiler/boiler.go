// Package boiler flags boilerplate paragraphs in harvested web pages.
//
// Readability extraction leaves behind a fringe of site chrome: cookie
// banners, navigation menus, subscription prompts, and legal footers.
// The detector scores each paragraph by the density of stemmed
// boilerplate vocabulary and applies a position-adjusted threshold that
// is stricter near the edges of the page, where chrome concentrates.
package boiler

import (
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// boilerStems contains stemmed words that commonly appear in web page
// chrome rather than body prose.
// TODO: stem lists for non-English pages; the detector currently assumes English chrome
var boilerStems = map[string]struct{}{
	// --- Cookie & Consent Banners ---
	"accept":  {},
	"agre":    {},
	"consent": {},
	"cooki":   {},
	"declin":  {},
	"gdpr":    {},
	"prefer":  {}, // from "preferences"
	"privaci": {},
	"track":   {},

	// --- Accounts & Navigation ---
	"about":    {},
	"account":  {},
	"contact":  {},
	"faq":      {},
	"home":     {},
	"login":    {},
	"logout":   {},
	"menu":     {},
	"navig":    {},
	"password": {},
	"profil":   {},
	"register": {},
	"search":   {},
	"sign":     {}, // from "sign in", "sign up"
	"skip":     {}, // from "skip to content"

	// --- Subscription & Engagement ---
	"click":      {},
	"comment":    {},
	"email":      {},
	"follow":     {},
	"newslett":   {},
	"share":      {},
	"subscrib":   {},
	"subscript":  {}, // from "subscription"
	"unsubscrib": {},

	// --- Social Platforms ---
	"facebook":  {},
	"instagram": {},
	"linkedin":  {},
	"rss":       {},
	"twitter":   {},
	"youtub":    {}, // from "youtube"

	// --- Legal Footers ---
	"copyright": {},
	"disclaim":  {}, // from "disclaimer"
	"permiss":   {},
	"polici":    {},
	"reserv":    {},
	"right":     {},
	"term":      {},
	"trademark": {},

	// --- Site Chrome & Ads ---
	"ad":         {},
	"advertis":   {},
	"archiv":     {},
	"categori":   {},
	"footer":     {},
	"header":     {},
	"javascript": {},
	"link":       {},
	"popular":    {},
	"relat":      {}, // from "related articles"
	"sidebar":    {},
	"sponsor":    {},
	"tag":        {},
	"trend":      {}, // from "trending"
	"updat":      {},
	"widget":     {},
}

// Detector flags boilerplate paragraphs using stemmed vocabulary density
// and position-based thresholding.
type Detector struct {
	// tokenRegex extracts word tokens from text
	tokenRegex *regexp.Regexp
}

// New creates and initializes a Detector.
func New() *Detector {
	return &Detector{
		tokenRegex: regexp.MustCompile(`\b[a-zA-Z]+\b`),
	}
}

// IsBoilerplate reports whether the paragraph at index (of total
// paragraphs) reads as site chrome rather than body prose. The decision
// compares the stemmed boilerplate-word ratio against a threshold that
// is lower near the start and end of the page.
func (d *Detector) IsBoilerplate(text string, index, total int) bool {
	// invalid positions are never flagged
	if total <= 0 || index < 0 || index >= total {
		return false
	}

	tokens := d.tokenRegex.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		// paragraphs with no word tokens carry no prose
		return true
	}

	hits := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			stemmed = token
		}
		if _, ok := boilerStems[stemmed]; ok {
			hits++
		}
	}

	ratio := float64(hits) / float64(len(tokens))
	return ratio > d.threshold(index, total)
}

// Trim returns the paragraphs that survive boilerplate detection, in
// their original order.
func (d *Detector) Trim(paragraphs []string) []string {
	kept := make([]string, 0, len(paragraphs))
	for i, p := range paragraphs {
		if !d.IsBoilerplate(p, i, len(paragraphs)) {
			kept = append(kept, p)
		}
	}
	return kept
}

// threshold computes the boilerplate-ratio cutoff for a paragraph at
// the given position. Chrome clusters at the top and bottom of a page,
// so the cutoff is lowest at the edges and rises toward the middle.
func (d *Detector) threshold(index, total int) float64 {
	if total <= 0 || index < 0 || index >= total {
		return 0.33
	}
	if total <= 3 {
		// short pages get a high cutoff to avoid flagging real prose
		return 0.5
	}

	// relative position from 0.0 (first paragraph) to 1.0 (last)
	position := float64(index) / float64(total-1)

	// inverted V: 0 at the edges, 1 in the middle
	centrality := 1.0 - math.Abs(2.0*position-1.0)

	const (
		edgeCutoff   = 0.1
		middleCutoff = 0.33
	)
	return edgeCutoff + (middleCutoff-edgeCutoff)*centrality
}
