// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The parser configuration never changes and a goldmark.Markdown is
// safe to share across calls, so build it once.
var (
	answerParserOnce sync.Once
	answerParser     goldmark.Markdown
)

func markdownParser() goldmark.Markdown {
	answerParserOnce.Do(func() {
		answerParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return answerParser
}

// renderTerminalMarkdown renders an assistant reply as styled terminal
// text. Assistant answers arrive as GFM markdown: prose with the
// occasional heading, bullet list of departures, fare table, or fenced
// snippet. Soft line breaks inside paragraphs become spaces so
// hard-wrapped source reflows at whatever width the transcript pane
// has.
func renderTerminalMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	if width < 16 {
		width = 16
	}
	source := []byte(input)
	document := markdownParser().Parser().Parse(text.NewReader(source))

	// Force ANSI256: the output always targets the TUI, and
	// auto-detection yields uncolored text when there is no TTY.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	renderer := &answerRenderer{source: source, theme: theme, styles: styles}
	return strings.Join(renderer.renderBlocks(document, width), "\n\n")
}

// answerRenderer turns a goldmark AST into terminal text. Each block
// renders to an independent string and blocks join with blank lines;
// nesting (quotes, list items) renders the inner blocks at a reduced
// width and prefixes the result. Inline styling is passed down the
// recursion rather than tracked in counters.
type answerRenderer struct {
	source []byte
	theme  Theme
	styles *lipgloss.Renderer
}

func (renderer *answerRenderer) text() lipgloss.Style {
	return renderer.styles.NewStyle().Foreground(renderer.theme.NormalText)
}

func (renderer *answerRenderer) faint() lipgloss.Style {
	return renderer.styles.NewStyle().Foreground(renderer.theme.FaintText)
}

func (renderer *answerRenderer) renderBlocks(parent ast.Node, width int) []string {
	var blocks []string
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		if block := renderer.renderBlock(node, width); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func (renderer *answerRenderer) renderBlock(node ast.Node, width int) string {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrapTo(renderer.renderInlines(node, renderer.text()), width)

	case *ast.Heading:
		style := renderer.text().Bold(true)
		if node.Level <= 2 {
			style = style.Foreground(renderer.theme.HeaderForeground)
		}
		return wrapTo(renderer.renderInlines(node, style), width)

	case *ast.FencedCodeBlock:
		return renderer.renderCode(node)

	case *ast.Blockquote:
		inner := strings.Join(renderer.renderBlocks(node, width-2), "\n\n")
		bar := renderer.styles.NewStyle().
			Foreground(renderer.theme.BorderColor).
			Render("│ ")
		return prefixLines(inner, bar, bar)

	case *ast.List:
		return renderer.renderList(node, width)

	case *ast.ThematicBreak:
		return renderer.styles.NewStyle().
			Foreground(renderer.theme.BorderColor).
			Render(strings.Repeat("─", width))

	case *extast.Table:
		return renderer.renderTable(node)
	}
	// Anything else (raw HTML, mostly) renders as its inline text, or
	// not at all.
	return renderer.renderInlines(node, renderer.text())
}

func (renderer *answerRenderer) renderList(list *ast.List, width int) string {
	joiner := "\n\n"
	if list.IsTight {
		joiner = "\n"
	}
	var items []string
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		bullet := "- "
		if list.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", number)
			number++
		}
		hang := strings.Repeat(" ", len(bullet))
		body := strings.Join(renderer.renderBlocks(item, width-len(bullet)), joiner)
		items = append(items, prefixLines(body, bullet, hang))
	}
	return strings.Join(items, joiner)
}

func (renderer *answerRenderer) renderCode(node *ast.FencedCodeBlock) string {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}
	body := strings.TrimRight(code.String(), "\n")

	if language := string(node.Language(renderer.source)); language != "" {
		var highlighted strings.Builder
		err := quick.Highlight(&highlighted, body, language, "terminal256", "monokai")
		if err == nil {
			return strings.TrimRight(highlighted.String(), "\n")
		}
	}
	return renderer.faint().Render(body)
}

func (renderer *answerRenderer) renderTable(table *extast.Table) string {
	var header []string
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			header = renderer.tableCells(child, renderer.text().Bold(true))
		case extast.KindTableRow:
			rows = append(rows, renderer.tableCells(child, renderer.text()))
		}
	}

	columns := len(header)
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return ""
	}

	widths := make([]int, columns)
	measure := func(row []string) {
		for index, cell := range row {
			if cellWidth := lipgloss.Width(cell); cellWidth > widths[index] {
				widths[index] = cellWidth
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	var out []string
	if len(header) > 0 {
		out = append(out, tableRow(header, widths, table.Alignments))
		rule := make([]string, columns)
		for index, columnWidth := range widths {
			rule[index] = strings.Repeat("─", columnWidth)
		}
		out = append(out, renderer.styles.NewStyle().
			Foreground(renderer.theme.BorderColor).
			Render(strings.Join(rule, "  ")))
	}
	for _, row := range rows {
		out = append(out, tableRow(row, widths, table.Alignments))
	}
	return strings.Join(out, "\n")
}

func (renderer *answerRenderer) tableCells(row ast.Node, style lipgloss.Style) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, renderer.renderInlines(cell, style))
	}
	return cells
}

func tableRow(cells []string, widths []int, alignments []extast.Alignment) string {
	parts := make([]string, len(widths))
	for index, columnWidth := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}
		padding := columnWidth - lipgloss.Width(cell)
		if padding < 0 {
			padding = 0
		}
		var alignment extast.Alignment
		if index < len(alignments) {
			alignment = alignments[index]
		}
		switch alignment {
		case extast.AlignRight:
			parts[index] = strings.Repeat(" ", padding) + cell
		case extast.AlignCenter:
			left := padding / 2
			parts[index] = strings.Repeat(" ", left) + cell + strings.Repeat(" ", padding-left)
		default:
			parts[index] = cell + strings.Repeat(" ", padding)
		}
	}
	return strings.Join(parts, "  ")
}

func (renderer *answerRenderer) renderInlines(parent ast.Node, style lipgloss.Style) string {
	var out strings.Builder
	for node := parent.FirstChild(); node != nil; node = node.NextSibling() {
		out.WriteString(renderer.renderInline(node, style))
	}
	return out.String()
}

func (renderer *answerRenderer) renderInline(node ast.Node, style lipgloss.Style) string {
	switch node := node.(type) {
	case *ast.Text:
		piece := style.Render(string(node.Segment.Value(renderer.source)))
		if node.SoftLineBreak() {
			piece += " "
		}
		if node.HardLineBreak() {
			piece += "\n"
		}
		return piece

	case *ast.String:
		return style.Render(string(node.Value))

	case *ast.Emphasis:
		if node.Level >= 2 {
			return renderer.renderInlines(node, style.Bold(true))
		}
		return renderer.renderInlines(node, style.Italic(true))

	case *extast.Strikethrough:
		return renderer.renderInlines(node, style.Strikethrough(true))

	case *ast.CodeSpan:
		var code strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				code.Write(textNode.Segment.Value(renderer.source))
			}
		}
		return renderer.faint().Render(code.String())

	case *ast.Link:
		label := renderer.renderInlines(node, style)
		if len(node.Destination) == 0 {
			return label
		}
		return label + " " + renderer.faint().Render("("+string(node.Destination)+")")

	case *ast.AutoLink:
		return renderer.faint().Render(string(node.URL(renderer.source)))
	}
	// Unhandled inline containers (images and such) render as their
	// children, which for an image is the alt text.
	return renderer.renderInlines(node, style)
}

// wrapTo word-wraps styled text, keeping a sane floor so deep nesting
// never degenerates to one-character columns.
func wrapTo(content string, width int) string {
	if content == "" {
		return ""
	}
	if width < 12 {
		width = 12
	}
	return ansi.Wrap(content, width, "")
}

// prefixLines puts first before the opening line of block and rest
// before every following line. Bullets hang this way: the marker on
// line one, matching indent below it.
func prefixLines(block, first, rest string) string {
	lines := strings.Split(block, "\n")
	for index := range lines {
		if index == 0 {
			lines[index] = first + lines[index]
		} else {
			lines[index] = rest + lines[index]
		}
	}
	return strings.Join(lines, "\n")
}
