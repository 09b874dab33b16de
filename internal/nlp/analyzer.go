package nlp

//go:generate mockgen -source=analyzer.go -destination=mocks/mock_analyzer.go -package=mocks

// Analyzer splits text into sentences and pulls common nouns out of a
// sentence. Implementations must be safe for concurrent use.
type Analyzer interface {
	Sentences(text string) ([]string, error)
	Nouns(sentence string) ([]string, error)
}
