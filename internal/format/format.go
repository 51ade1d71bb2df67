// Package format converts raw model replies into the HTML subset the
// frontend renders: inline-styled bold, bullet and numbered list rows, and
// <br> line breaks.
package format

import (
	"regexp"
	"strings"
)

var (
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletRe   = regexp.MustCompile(`(?m)^• (.+)$`)
	numberedRe = regexp.MustCompile(`(?m)^(\d+)\. (.+)$`)
	multiBrRe  = regexp.MustCompile(`(<br>\s*){3,}`)
)

const (
	strongRepl   = `<strong style="color: #2ecc71; font-weight: 600; background: rgba(46, 204, 113, 0.1); padding: 2px 4px; border-radius: 3px;">${1}</strong>`
	bulletRepl   = `<div style="margin: 8px 0; padding-left: 20px; position: relative; line-height: 1.6;"><span style="position: absolute; left: 0; color: #2ecc71; font-weight: bold;">•</span>${1}</div>`
	numberedRepl = `<div style="margin: 8px 0; padding-left: 20px; position: relative; line-height: 1.6;"><span style="position: absolute; left: 0; color: #2ecc71; font-weight: bold;">${1}.</span>${2}</div>`
)

// ToHTML converts markdown-style emphasis and lists in the model's reply to
// the frontend's HTML subset.
func ToHTML(text string) string {
	if text == "" {
		return text
	}

	text = boldRe.ReplaceAllString(text, strongRepl)
	text = bulletRe.ReplaceAllString(text, bulletRepl)
	text = numberedRe.ReplaceAllString(text, numberedRepl)
	text = strings.ReplaceAll(text, "\n", "<br>")
	text = multiBrRe.ReplaceAllString(text, "<br><br>")

	return text
}

// Attribution renders the dataset-attribution block for a reply. An empty
// dataset list means no satellite data was used and yields no output at
// all; there is deliberately no branch that prints a placeholder.
func Attribution(datasets []string) string {
	if len(datasets) == 0 {
		return ""
	}
	return `<br><br><div style='padding: 8px; background: rgba(46, 204, 113, 0.1); border-left: 3px solid #2ecc71; margin-top: 10px; font-size: 0.9em;'>🛰️ <strong>NASA dataset(s) used:</strong> ` +
		strings.Join(datasets, ", ") + `</div>`
}

// Render produces the final reply payload: formatted text plus the
// attribution block when datasets contributed.
func Render(text string, datasets []string) string {
	return ToHTML(text) + Attribution(datasets)
}
