package domain

import (
	"fmt"
	"strings"
)

const (
	// enrichHistoryWindow bounds how many recent user turns are inspected.
	enrichHistoryWindow = 3
	// enrichMaxTopics bounds how many borrowed topics are appended.
	enrichMaxTopics = 2

	// RoleUser marks a user-authored chat turn.
	RoleUser = "user"
	// RoleAssistant marks an assistant-authored chat turn.
	RoleAssistant = "assistant"
)

// EnrichFollowUp expands a short follow-up question with topics detected in
// recent user turns. The question is returned unchanged when there is no
// history, when it already yields two or more topics on its own, or when no
// recent user turn carries a detectable topic. Topics are never merged across
// turns; the most recent user turn with any topic wins.
func EnrichFollowUp(table *TopicTable, question string, history []ChatTurn) string {
	if len(history) == 0 {
		return question
	}
	if len(table.DetectTopics(question)) >= 2 {
		return question
	}

	scanned := 0
	for i := len(history) - 1; i >= 0 && scanned < enrichHistoryWindow; i-- {
		turn := history[i]
		if turn.Role != RoleUser || strings.TrimSpace(turn.Content) == "" {
			// Malformed or non-user turns contribute nothing.
			continue
		}
		scanned++

		topics := table.DetectTopics(turn.Content)
		if len(topics) == 0 {
			continue
		}
		if len(topics) > enrichMaxTopics {
			topics = topics[:enrichMaxTopics]
		}
		return fmt.Sprintf("%s (%s)", question, strings.Join(topics, " "))
	}

	return question
}
