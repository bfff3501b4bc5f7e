package vocab

// Word is a vocabulary entry.
type Word struct {
	ID              int
	Term            string
	Translation     string
	PartOfSpeech    string
	ExampleSentence string
}

// Lesson groups words under a title. Difficulty runs 1-5.
type Lesson struct {
	ID          int
	Title       string
	Description string
	Difficulty  int
	Words       []Word
}

// DefaultDifficulty is the difficulty given to lessons created without one.
const DefaultDifficulty = 1

// SortedTerms returns the terms of words in ascending order, built
// through an Index.
func SortedTerms(words []Word) []string {
	idx := NewIndex[string]()
	for _, w := range words {
		idx.Insert(w.Term)
	}
	return idx.Values()
}
