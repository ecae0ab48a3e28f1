package domain

// QueryClassifier assigns a Classification to a raw question. Implementations
// must be pure functions of the input text.
type QueryClassifier interface {
	Classify(question string) Classification
}
