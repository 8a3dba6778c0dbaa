package domain

import "math"

// maxPageNumber keeps Offset within int range.
const maxPageNumber = math.MaxInt / QuestionsPerPage

// Page is a resolved page request.
type Page struct {
	Number int
	Size   int
}

// NewPage resolves a 1-based page number; anything below 1 becomes the first page.
// Numbers too large to address are clamped, which still lands past any real selection.
func NewPage(number int) Page {
	if number < 1 {
		number = 1
	}
	if number > maxPageNumber {
		number = maxPageNumber
	}
	return Page{Number: number, Size: QuestionsPerPage}
}

// Offset is the number of rows skipped before this page starts.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Slice returns the part of an id-ordered selection that falls on this page.
// The result is empty when the page lies past the end of the selection.
func (p Page) Slice(questions []*Question) []*Question {
	start := p.Offset()
	if start < 0 || start >= len(questions) {
		return []*Question{}
	}
	end := start + p.Size
	if end < start || end > len(questions) {
		end = len(questions)
	}
	return questions[start:end]
}
