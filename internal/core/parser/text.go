package parser

import "strings"

// TextRun is one formatted span of a Text.
type TextRun struct {
	Text     string
	Bold     bool
	Italics  bool
	Endpoint *NavigationEndpoint
}

// Text is a display string made of runs, as in {"runs": [...]} or {"simpleText": "..."}.
// It is a plain value, not a node.
type Text struct {
	Runs []TextRun
}

// ParseText reads a text object. Anything else yields an empty Text.
func ParseText(v any) Text {
	if s, ok := v.(string); ok {
		return Text{Runs: []TextRun{{Text: s}}}
	}
	raw, ok := AsRaw(v)
	if !ok {
		return Text{}
	}
	if raw.Has("simpleText") {
		return Text{Runs: []TextRun{{Text: raw.String("simpleText")}}}
	}
	if raw.Has("content") {
		return Text{Runs: []TextRun{{Text: raw.String("content")}}}
	}
	runs := raw.Objects("runs")
	t := Text{Runs: make([]TextRun, 0, len(runs))}
	for _, r := range runs {
		t.Runs = append(t.Runs, TextRun{
			Text:     r.String("text"),
			Bold:     r.Bool("bold"),
			Italics:  r.Bool("italics"),
			Endpoint: ParseEndpoint(r.Object("navigationEndpoint")),
		})
	}
	return t
}

// String joins the runs.
func (t Text) String() string {
	var b strings.Builder
	for _, r := range t.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Empty reports whether the text has no characters.
func (t Text) Empty() bool {
	for _, r := range t.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Endpoint returns the first run endpoint, if any.
func (t Text) Endpoint() *NavigationEndpoint {
	for _, r := range t.Runs {
		if r.Endpoint != nil {
			return r.Endpoint
		}
	}
	return nil
}
