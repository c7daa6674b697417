package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataValidator_Validate(t *testing.T) {
	v := NewMetadataValidator()

	tests := []struct {
		name      string
		in        Metadata
		want      Metadata
		wantCode  Code
		wantField string
	}{
		{name: "note without term", in: Metadata{Category: "note"}, want: Metadata{Category: "note"}},
		{name: "case and whitespace normalized", in: Metadata{Category: "  Lecture Material "}, want: Metadata{Category: CategoryLectureMaterial}},
		{name: "hyphenated vocabulary", in: Metadata{Category: "LECTURE-MATERIAL"}, want: Metadata{Category: CategoryLectureMaterial}},
		{name: "past question with term", in: Metadata{Category: "Past Questions", TermTag: " 2022/2023 "}, want: Metadata{Category: CategoryPastQuestions, TermTag: "2022/2023"}},
		{name: "singular past question", in: Metadata{Category: "past question", TermTag: "2022/2023"}, want: Metadata{Category: CategoryPastQuestions, TermTag: "2022/2023"}},
		{name: "hyphenated past question", in: Metadata{Category: "Past-Question", TermTag: "2022/2023"}, want: Metadata{Category: CategoryPastQuestions, TermTag: "2022/2023"}},
		{name: "canonical past questions", in: Metadata{Category: "past-questions", TermTag: "2022/2023"}, want: Metadata{Category: CategoryPastQuestions, TermTag: "2022/2023"}},
		{name: "lecture material spelled with a space", in: Metadata{Category: "lecture material"}, want: Metadata{Category: CategoryLectureMaterial}},
		{name: "notes is not a spelling of note", in: Metadata{Category: "notes"}, wantCode: CodeInvalidCategory, wantField: "category"},
		{name: "note with term", in: Metadata{Category: "note", TermTag: "2021/2022"}, want: Metadata{Category: "note", TermTag: "2021/2022"}},
		{name: "empty category", in: Metadata{}, wantCode: CodeInvalidCategory, wantField: "category"},
		{name: "unknown category", in: Metadata{Category: "textbook"}, wantCode: CodeInvalidCategory, wantField: "category"},
		{name: "bad term format", in: Metadata{Category: "note", TermTag: "2022-2023"}, wantCode: CodeInvalidTermFormat, wantField: "term_tag"},
		{name: "short term", in: Metadata{Category: "note", TermTag: "22/23"}, wantCode: CodeInvalidTermFormat, wantField: "term_tag"},
		{name: "past question missing term", in: Metadata{Category: "past question"}, wantCode: CodeMissingTerm, wantField: "term_tag"},
		{name: "past question blank term", in: Metadata{Category: "past-questions", TermTag: "   "}, wantCode: CodeMissingTerm, wantField: "term_tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.in)
			if tt.wantCode != "" {
				require.Error(t, err)
				fes, ok := FieldErrors(err)
				require.True(t, ok)
				require.Len(t, fes, 1)
				assert.Equal(t, tt.wantCode, fes[0].Code)
				assert.Equal(t, tt.wantField, fes[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataValidator_CanonicalCategories(t *testing.T) {
	v := NewMetadataValidator()
	seen := map[string]bool{}
	for spelling := range categories {
		got, err := v.Validate(Metadata{Category: spelling, TermTag: "2020/2021"})
		require.NoError(t, err, spelling)
		seen[got.Category] = true
	}
	assert.Equal(t, map[string]bool{
		CategoryLectureMaterial: true,
		CategoryNote:            true,
		CategoryPastQuestions:   true,
	}, seen)
}

func TestIsPastQuestion(t *testing.T) {
	assert.True(t, IsPastQuestion("past question"))
	assert.True(t, IsPastQuestion("Past-Questions"))
	assert.True(t, IsPastQuestion(CategoryPastQuestions))
	assert.False(t, IsPastQuestion("note"))
	assert.False(t, IsPastQuestion("lecture material"))
}
