package domain

import (
	"sort"
	"strings"
)

// definiteArticle is the Arabic definite-article prefix. Terms are stored in one
// form; lookup retries with the prefix toggled so "العدة" and "عدة" resolve to
// the same entry.
const definiteArticle = "ال"

// tokenCutset holds punctuation stripped from tokens before whole-word
// comparison. Question marks and commas cling to the last word in Arabic text.
const tokenCutset = "؟?!.,،؛:\"'()[]«»"

// TopicEntry maps one surface term to its canonical topic.
type TopicEntry struct {
	Term  string
	Topic string
	// WholeWord restricts matching to token boundaries. Set for short terms that
	// also occur as substrings of unrelated words ("عدة" inside "مساعدة").
	WholeWord bool
}

// VerbPattern groups person/tense variants of a legal action verb under one
// topic ("أطلق", "طلقت", "يطلق" all signal divorce).
type VerbPattern struct {
	Forms []string
	Topic string
}

// TopicTable is an immutable term/verb lookup table built once at startup.
// Entries are pre-sorted longest-surface-form-first so compound phrases win
// over their sub-phrases.
type TopicTable struct {
	verbs   []VerbPattern
	entries []TopicEntry
}

// NewTopicTable builds a table from verb patterns and term entries. The input
// slices are copied; the table never mutates after construction.
func NewTopicTable(verbs []VerbPattern, entries []TopicEntry) *TopicTable {
	v := make([]VerbPattern, len(verbs))
	copy(v, verbs)

	e := make([]TopicEntry, len(entries))
	copy(e, entries)
	sort.SliceStable(e, func(i, j int) bool {
		return len([]rune(e[i].Term)) > len([]rune(e[j].Term))
	})

	return &TopicTable{verbs: v, entries: e}
}

// DetectTopics returns the distinct canonical topics matched in the question,
// most confident first. Verb patterns are scanned before the term table; within
// the term table longer surface forms take precedence. A question matching
// nothing yields an empty result, not an error.
func (t *TopicTable) DetectTopics(question string) []string {
	if strings.TrimSpace(question) == "" {
		return nil
	}

	var topics []string
	seen := make(map[string]struct{})

	add := func(topic string) {
		if _, ok := seen[topic]; ok {
			return
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}

	for _, vp := range t.verbs {
		for _, form := range vp.Forms {
			if strings.Contains(question, form) {
				add(vp.Topic)
				break
			}
		}
	}

	for _, e := range t.entries {
		if t.matches(question, e) {
			add(e.Topic)
		}
	}

	return topics
}

func (t *TopicTable) matches(question string, e TopicEntry) bool {
	if e.WholeWord {
		return containsToken(question, e.Term) ||
			containsToken(question, toggleArticle(e.Term))
	}
	return strings.Contains(question, e.Term) ||
		strings.Contains(question, toggleArticle(e.Term))
}

// containsToken reports whether term occurs as a whitespace-bounded token.
// Leading/trailing punctuation on tokens is ignored.
func containsToken(s, term string) bool {
	for _, tok := range strings.Fields(s) {
		if strings.Trim(tok, tokenCutset) == term {
			return true
		}
	}
	return false
}

// toggleArticle strips the definite-article prefix when present, otherwise
// prepends it.
func toggleArticle(term string) string {
	if rest, ok := strings.CutPrefix(term, definiteArticle); ok && rest != "" {
		return rest
	}
	return definiteArticle + term
}
