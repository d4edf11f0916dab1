// Copyright 2026 The Paribahan Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// assistantApology is shown as the assistant's reply when a question
// fails for any reason.
const assistantApology = "Sorry, I encountered an error. Please try again."

// exampleQuestions seed the assistant view while the transcript is
// empty. Selecting one fills the input.
var exampleQuestions = []string{
	"Are there any buses from Dhaka to Rajshahi under 500 taka?",
	"Show all bus providers operating from Chattogram to Sylhet",
	"Which buses go from Dhaka to Barishal?",
	"What's the cheapest bus from Khulna to Rajshahi?",
	"What are the contact details of Hanif Bus?",
	"Show me Green Line's address",
	"Give me information about Desh Travel",
	"What is Ena Transport's privacy policy?",
}

// askResultMsg delivers the outcome of an assistant question.
type askResultMsg struct {
	answer  string
	sources []string
	err     error
}

// ConversationTurn is one entry in the assistant transcript.
type ConversationTurn struct {
	// Role is "user" or "assistant".
	Role    string
	Content string
	// Sources lists the documents an assistant answer cites.
	Sources []string
	// IsError marks an assistant turn that reports a failure rather
	// than an answer.
	IsError bool
}

// AssistantModel owns the Q&A view: a transcript of turns, an input
// line, and the example questions shown before the first exchange.
type AssistantModel struct {
	service Service
	theme   Theme
	keys    KeyMap

	turns []ConversationTurn
	input TextField

	// exampleCursor is the highlighted example question, or -1 when
	// focus is on the input line.
	exampleCursor int

	// blurred is true after esc; keystrokes then fall through to the
	// view-switch keys instead of the input line.
	blurred bool

	busy bool

	// transcriptScroll counts lines scrolled up from the bottom of
	// the rendered transcript.
	transcriptScroll int
}

// NewAssistantModel creates an AssistantModel with an empty
// transcript.
func NewAssistantModel(service Service, theme Theme, keys KeyMap) AssistantModel {
	model := AssistantModel{
		service:       service,
		theme:         theme,
		keys:          keys,
		exampleCursor: -1,
	}
	model.input.Placeholder = "ask about routes, prices, or providers"
	return model
}

// textFocused reports whether the input line is capturing
// keystrokes.
func (model AssistantModel) textFocused() bool {
	return model.exampleCursor < 0 && !model.blurred
}

// ClearChat empties the transcript. Clearing an already-empty
// transcript is a no-op.
func (model AssistantModel) ClearChat() AssistantModel {
	model.turns = nil
	model.transcriptScroll = 0
	model.exampleCursor = -1
	model.blurred = false
	return model
}

// Update processes a message for the assistant view.
func (model AssistantModel) Update(message tea.Msg) (AssistantModel, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case askResultMsg:
		model.busy = false
		turn := ConversationTurn{Role: "assistant"}
		if message.err != nil {
			turn.Content = assistantApology
			turn.IsError = true
		} else {
			turn.Content = message.answer
			turn.Sources = message.sources
		}
		model.turns = append(model.turns, turn)
		model.transcriptScroll = 0
		return model, nil
	}
	return model, nil
}

func (model AssistantModel) handleKey(message tea.KeyMsg) (AssistantModel, tea.Cmd) {
	examplesShowing := len(model.turns) == 0 && !model.busy

	switch {
	case key.Matches(message, model.keys.ClearChat):
		return model.ClearChat(), nil

	case key.Matches(message, model.keys.Back):
		if model.exampleCursor >= 0 {
			model.exampleCursor = -1
		} else {
			model.blurred = true
		}
		return model, nil

	case key.Matches(message, model.keys.NextField), key.Matches(message, model.keys.PrevField):
		model.blurred = false
		if examplesShowing {
			if model.exampleCursor < 0 {
				model.exampleCursor = 0
			} else {
				model.exampleCursor = -1
			}
		}
		return model, nil

	case key.Matches(message, model.keys.Up):
		if model.exampleCursor > 0 {
			model.exampleCursor--
		} else if model.exampleCursor < 0 && len(model.turns) > 0 {
			model.transcriptScroll++
		}
		return model, nil

	case key.Matches(message, model.keys.Down):
		if model.exampleCursor >= 0 && model.exampleCursor < len(exampleQuestions)-1 {
			model.exampleCursor++
		} else if model.exampleCursor < 0 && model.transcriptScroll > 0 {
			model.transcriptScroll--
		}
		return model, nil

	case key.Matches(message, model.keys.Submit):
		if model.exampleCursor >= 0 {
			model.input.SetValue(exampleQuestions[model.exampleCursor])
			model.exampleCursor = -1
			return model, nil
		}
		return model.ask()
	}

	if model.exampleCursor < 0 && !model.blurred {
		model.input.Update(message)
	}
	return model, nil
}

// ask submits the current question. A blank question is a no-op and
// does not touch the transcript or the service.
func (model AssistantModel) ask() (AssistantModel, tea.Cmd) {
	if model.busy {
		return model, nil
	}
	model.blurred = false
	question := strings.TrimSpace(model.input.Value())
	if question == "" {
		return model, nil
	}

	// The user's turn appears immediately; the answer arrives as an
	// askResultMsg.
	model.turns = append(model.turns, ConversationTurn{Role: "user", Content: question})
	model.input.Clear()
	model.transcriptScroll = 0
	model.busy = true

	service := model.service
	return model, func() tea.Msg {
		answer, err := service.AskQuestion(context.Background(), question)
		if err != nil {
			return askResultMsg{err: err}
		}
		return askResultMsg{answer: answer.Answer, sources: answer.Sources}
	}
}

// View renders the assistant view.
func (model AssistantModel) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.AccentForeground)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var sections []string
	sections = append(sections, titleStyle.Render("Provider Assistant"))
	sections = append(sections, "")

	transcriptHeight := height - 6
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	if len(model.turns) == 0 && !model.busy {
		sections = append(sections, faintStyle.Render("Try these example questions:"))
		sections = append(sections, model.renderExamples(width))
	} else {
		sections = append(sections, model.renderTranscript(width, transcriptHeight))
	}
	sections = append(sections, "")

	if model.busy {
		sections = append(sections, faintStyle.Render("Thinking..."))
	} else {
		sections = append(sections, model.input.View(model.theme, width-2, model.textFocused()))
	}

	return strings.Join(sections, "\n")
}

func (model AssistantModel) renderExamples(width int) string {
	normalStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	selectedStyle := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var rows []string
	for index, question := range exampleQuestions {
		if index == model.exampleCursor {
			rows = append(rows, selectedStyle.Render("  "+question+"  "))
		} else {
			rows = append(rows, normalStyle.Render("  "+question))
		}
	}
	return strings.Join(rows, "\n")
}

// renderTranscript renders the conversation, newest at the bottom,
// honoring the scroll offset.
func (model AssistantModel) renderTranscript(width, height int) string {
	userStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.AccentForeground)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	sourceStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var lines []string
	for _, turn := range model.turns {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		switch {
		case turn.Role == "user":
			lines = append(lines, userStyle.Render("You: ")+turn.Content)
		case turn.IsError:
			lines = append(lines, errorStyle.Render(turn.Content))
		default:
			rendered := renderTerminalMarkdown(turn.Content, model.theme, width-2)
			lines = append(lines, strings.Split(strings.TrimRight(rendered, "\n"), "\n")...)
			if len(turn.Sources) > 0 {
				lines = append(lines, sourceStyle.Render("Sources: "+strings.Join(turn.Sources, ", ")))
			}
		}
	}

	// Clamp the scroll so the window always shows transcript lines.
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := model.transcriptScroll
	if scroll > maxScroll {
		scroll = maxScroll
	}

	end := len(lines) - scroll
	start := end - height
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}
