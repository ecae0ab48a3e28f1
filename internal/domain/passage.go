package domain

// LegalPassage is the unit of retrievable statute text. Passages are created by
// the corpus build and never mutated by the retrieval pipeline.
type LegalPassage struct {
	ID             string
	Text           string
	Chapter        string
	Section        string
	Topic          string
	TopicTags      []string
	HasDeadline    bool
	DeadlineDetail string // empty when HasDeadline is false
	SourcePages    string
}

// SearchHit pairs a passage with its similarity to the query, derived as
// 1 - cosine_distance. Hits live for a single request.
type SearchHit struct {
	Passage LegalPassage
	Score   float32
}

// Classification labels a raw question with a category, an intent, and whether
// the answer should surface statutory deadlines.
type Classification struct {
	Category           string `json:"category"`
	Intent             string `json:"intent"`
	NeedsDeadlineCheck bool   `json:"needs_deadline_check"`
}

// Source is a citation record mirroring one retrieved hit.
type Source struct {
	Chapter string `json:"chapter"`
	Section string `json:"section"`
	Topic   string `json:"topic"`
	Pages   string `json:"pages"`
}

// RetrievalResult is the assembled output of one retrieve call.
type RetrievalResult struct {
	Classification Classification `json:"classification"`
	Context        string         `json:"context"`
	Sources        []Source       `json:"sources"`
	NumResults     int            `json:"num_results"`
}

// ChatTurn is one prior message of the conversation, newest last.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
