// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripped renders markdown and returns ANSI-stripped visible text.
func stripped(input string, width int) string {
	return ansi.Strip(renderTerminalMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		if result := renderTerminalMarkdown(input, DefaultTheme, 80); result != "" {
			t.Errorf("expected empty output for %q, got %q", input, result)
		}
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// Hard-wrapped source: the soft breaks must become spaces so the
	// text reflows at the render width instead of the author's width.
	input := "Green Line runs three AC coaches\nfrom Dhaka to Chittagong\nevery morning."
	result := stripped(input, 120)
	if strings.Contains(result, "\n") {
		t.Errorf("paragraph should reflow onto one line at width 120, got %q", result)
	}
	if !strings.Contains(result, "coaches from Dhaka") {
		t.Errorf("soft break should become a space, got %q", result)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	input := "The overnight service from Sylhet to Khulna stops at Dhaka around midnight for a meal break."
	result := stripped(input, 30)
	for _, line := range strings.Split(result, "\n") {
		if len(line) > 30 {
			t.Errorf("line exceeds width 30: %q", line)
		}
	}
	if !strings.Contains(result, "\n") {
		t.Error("expected wrapped output at width 30")
	}
}

func TestRenderMarkdownHeading(t *testing.T) {
	raw := renderTerminalMarkdown("## Fares\n\nNon-AC seats start at 450 taka.", DefaultTheme, 80)
	if !strings.Contains(raw, "\x1b[1;") {
		t.Error("expected bold styling on the heading")
	}
	visible := ansi.Strip(raw)
	if !strings.HasPrefix(visible, "Fares") {
		t.Errorf("heading should open the output, got %q", visible)
	}
	if !strings.Contains(visible, "\n\n") {
		t.Error("expected a blank line between heading and paragraph")
	}
}

func TestRenderMarkdownEmphasis(t *testing.T) {
	raw := renderTerminalMarkdown("Seats on **Hanif** fill *fast* on Fridays.", DefaultTheme, 80)
	if !strings.Contains(raw, "\x1b[1;") {
		t.Error("expected bold styling for strong emphasis")
	}
	if !strings.Contains(raw, "\x1b[3;") {
		t.Error("expected italic styling for emphasis")
	}
	visible := ansi.Strip(raw)
	if !strings.Contains(visible, "Hanif") || !strings.Contains(visible, "fast") {
		t.Errorf("emphasis markers should not survive rendering, got %q", visible)
	}
	if strings.Contains(visible, "*") {
		t.Errorf("asterisks leaked into output: %q", visible)
	}
}

func TestRenderMarkdownBulletList(t *testing.T) {
	input := "Morning departures:\n\n- Shyamoli at 7:00\n- Ena at 7:30\n- Soudia at 8:15"
	result := stripped(input, 80)
	for _, entry := range []string{"- Shyamoli at 7:00", "- Ena at 7:30", "- Soudia at 8:15"} {
		if !strings.Contains(result, entry) {
			t.Errorf("missing list entry %q in %q", entry, result)
		}
	}
	// A tight list keeps its items on consecutive lines.
	if strings.Contains(result, "7:00\n\n- Ena") {
		t.Errorf("tight list items should not be separated by blank lines: %q", result)
	}
}

func TestRenderMarkdownOrderedListHangingIndent(t *testing.T) {
	input := "1. Pick a route and a seat on the bus you like best before paying\n2. Pay at the counter"
	result := stripped(input, 40)
	lines := strings.Split(result, "\n")
	if !strings.HasPrefix(lines[0], "1. ") {
		t.Fatalf("expected numbered bullet, got %q", lines[0])
	}
	// The first item wraps at width 40; its continuation lines align
	// under the text, not under the number.
	var continuation string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "   ") && !strings.HasPrefix(line, "2. ") {
			continuation = line
			break
		}
	}
	if continuation == "" {
		t.Errorf("expected an indented continuation line in %q", result)
	}
	if !strings.Contains(result, "2. Pay at the counter") {
		t.Errorf("missing second item in %q", result)
	}
}

func TestRenderMarkdownNestedList(t *testing.T) {
	input := "- Dhaka to Chittagong\n  - AC: 1200 taka\n  - Non-AC: 680 taka"
	result := stripped(input, 80)
	if !strings.Contains(result, "- Dhaka to Chittagong") {
		t.Errorf("missing outer item in %q", result)
	}
	if !strings.Contains(result, "  - AC: 1200 taka") {
		t.Errorf("nested item should indent under its parent, got %q", result)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	input := "> Tickets are refundable up to six hours before departure."
	result := stripped(input, 80)
	for _, line := range strings.Split(result, "\n") {
		if !strings.HasPrefix(line, "│ ") {
			t.Errorf("blockquote line missing bar prefix: %q", line)
		}
	}
}

func TestRenderMarkdownFareTable(t *testing.T) {
	input := strings.Join([]string{
		"| Provider | Departure | Fare |",
		"| --- | --- | ---: |",
		"| Green Line | 08:00 | 1200 |",
		"| Shyamoli | 09:30 | 680 |",
	}, "\n")
	result := stripped(input, 80)
	lines := strings.Split(result, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule, and two rows, got %d lines: %q", len(lines), result)
	}
	if !strings.Contains(lines[0], "Provider") || !strings.Contains(lines[0], "Fare") {
		t.Errorf("header row missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("expected a rule under the header, got %q", lines[1])
	}
	// The fare column is right-aligned, so both fares end their lines
	// at the same column.
	if len(strings.TrimRight(lines[2], " ")) != len(strings.TrimRight(lines[3], " ")) {
		t.Errorf("right-aligned fares should line up:\n%q\n%q", lines[2], lines[3])
	}
	if !strings.Contains(lines[3], "Shyamoli") || !strings.Contains(lines[3], "680") {
		t.Errorf("body row mangled: %q", lines[3])
	}
}

func TestRenderMarkdownCodeSpan(t *testing.T) {
	result := stripped("Dial `16557` for the helpline.", 80)
	if !strings.Contains(result, "16557") {
		t.Errorf("code span text missing from %q", result)
	}
	if strings.Contains(result, "`") {
		t.Errorf("backticks leaked into output: %q", result)
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	input := "```\nGET /search?from=Dhaka&to=Sylhet\n```"
	result := stripped(input, 80)
	if !strings.Contains(result, "GET /search?from=Dhaka&to=Sylhet") {
		t.Errorf("fenced code body missing from %q", result)
	}
}

func TestRenderMarkdownFencedCodeHighlighted(t *testing.T) {
	input := "```json\n{\"from\": \"Dhaka\", \"to\": \"Rajshahi\"}\n```"
	raw := renderTerminalMarkdown(input, DefaultTheme, 80)
	if !strings.Contains(raw, "\x1b[") {
		t.Error("expected ANSI styling from syntax highlighting")
	}
	if !strings.Contains(ansi.Strip(raw), "Rajshahi") {
		t.Errorf("code content missing from %q", ansi.Strip(raw))
	}
}

func TestRenderMarkdownLink(t *testing.T) {
	result := stripped("See the [schedule](https://example.com/routes) page.", 80)
	if !strings.Contains(result, "schedule (https://example.com/routes)") {
		t.Errorf("link should render as text followed by URL, got %q", result)
	}
}

func TestRenderMarkdownThematicBreak(t *testing.T) {
	result := stripped("Before.\n\n---\n\nAfter.", 24)
	if !strings.Contains(result, strings.Repeat("─", 24)) {
		t.Errorf("expected a full-width rule, got %q", result)
	}
}

func TestRenderMarkdownMixedAnswer(t *testing.T) {
	// The shape of a typical assistant answer: heading, prose, list.
	input := "## Dhaka to Barisal\n\nTwo providers cover this route daily.\n\n- Sakura at 22:00\n- Surovi at 22:45"
	result := stripped(input, 60)
	blocks := strings.Split(result, "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected three blocks separated by blank lines, got %d: %q", len(blocks), result)
	}
	if blocks[0] != "Dhaka to Barisal" {
		t.Errorf("unexpected heading block %q", blocks[0])
	}
	if !strings.HasPrefix(blocks[2], "- Sakura") {
		t.Errorf("unexpected list block %q", blocks[2])
	}
}
