package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []*Question {
	questions := make([]*Question, n)
	for i := range questions {
		questions[i] = &Question{ID: int64(i + 1), Question: "q", Answer: "a", Category: 1, Difficulty: 1}
	}
	return questions
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		number     int
		wantNumber int
		wantOffset int
	}{
		{1, 1, 0},
		{2, 2, 10},
		{3, 3, 20},
		{0, 1, 0},
		{-4, 1, 0},
	}
	for _, tt := range tests {
		page := NewPage(tt.number)
		assert.Equal(t, tt.wantNumber, page.Number)
		assert.Equal(t, QuestionsPerPage, page.Size)
		assert.Equal(t, tt.wantOffset, page.Offset())
	}
}

func TestPage_Slice(t *testing.T) {
	questions := makeQuestions(25)

	tests := []struct {
		name    string
		page    int
		wantLen int
		firstID int64
	}{
		{"first page", 1, 10, 1},
		{"second page", 2, 10, 11},
		{"last partial page", 3, 5, 21},
		{"past the end", 4, 0, 0},
		{"far past the end", 1_000_000_000_000_000_000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.page).Slice(questions)
			assert.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstID, got[0].ID)
			}
		})
	}

	assert.Empty(t, NewPage(1).Slice(nil))
}

func TestNewPage_HugeNumber(t *testing.T) {
	page := NewPage(1_000_000_000_000_000_000)
	assert.Equal(t, maxPageNumber, page.Number)
	assert.Positive(t, page.Offset())

	page = NewPage(math.MaxInt)
	assert.Equal(t, maxPageNumber, page.Number)
	assert.Positive(t, page.Offset())
	assert.Empty(t, Page{Number: -1, Size: QuestionsPerPage}.Slice(makeQuestions(3)))
}
