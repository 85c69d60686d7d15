package mood

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjbmsda/ott-mood-app/internal/models"
)

func TestComputeMood(t *testing.T) {
	questions := Questions(models.LanguageKorean)

	cases := []struct {
		name    string
		answers AnswerSet
		want    Category
	}{
		{"all happy", AnswerSet{"q1": "q1_o1", "q2": "q2_o1", "q3": "q3_o1"}, Happy},
		{"all any", AnswerSet{"q1": "q1_o4", "q2": "q2_o4", "q3": "q3_o4"}, Any},
		{"blue then excited", AnswerSet{"q1": "q1_o2", "q2": "q2_o2", "q3": "q3_o3"}, Blue},
		{"hyped", AnswerSet{"q1": "q1_o3", "q2": "q2_o4", "q3": "q3_o1"}, Hyped},
		// happy 3, hyped 3, any 2
		{"tie goes to earlier mood", AnswerSet{"q1": "q1_o3", "q2": "q2_o1", "q3": "q3_o4"}, Happy},
		// hyped 3, any 4
		{"any strictly higher", AnswerSet{"q1": "q1_o3", "q2": "q2_o4", "q3": "q3_o4"}, Any},
		// blue 2, excited 1+3=4, any 2
		{"excited", AnswerSet{"q1": "q1_o2", "q2": "q2_o4", "q3": "q3_o3"}, Excited},
		{"empty", AnswerSet{}, Any},
		{"unknown options score zero", AnswerSet{"q1": "nope", "q2": "q9_o1"}, Any},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeMood(tc.answers, questions))
		})
	}
}

func TestPickTieBreaks(t *testing.T) {
	// Non-Any beats Any on a tie.
	assert.Equal(t, Blue, Pick(Score{Blue: 2, Any: 2}))
	// Among non-Any ties the earliest in evaluation order wins.
	assert.Equal(t, Happy, Pick(Score{Happy: 3, Hyped: 3}))
	assert.Equal(t, Excited, Pick(Score{Excited: 3, Hyped: 3, Any: 3}))
	// Strictly higher Any still wins.
	assert.Equal(t, Any, Pick(Score{Happy: 1, Any: 4}))
	// Non-positive winners fall back to Any.
	assert.Equal(t, Any, Pick(Score{}))
	assert.Equal(t, Any, Pick(Score{Happy: -1}))
}

func TestComputeMoodSameInEveryLanguage(t *testing.T) {
	answers := AnswerSet{"q1": "q1_o1", "q2": "q2_o3", "q3": "q3_o3"}
	assert.Equal(t,
		ComputeMood(answers, Questions(models.LanguageKorean)),
		ComputeMood(answers, Questions(models.LanguageEnglish)))
}

func TestValidate(t *testing.T) {
	questions := Questions(models.LanguageEnglish)

	err := Validate(AnswerSet{"q1": "q1_o1", "q3": "q3_o1"}, questions)
	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "q2", incomplete.QuestionID)
	assert.True(t, errors.Is(err, ErrIncomplete))

	err = Validate(AnswerSet{"q1": "q1_o1", "q2": "q2_o9", "q3": "q3_o1"}, questions)
	assert.ErrorIs(t, err, ErrUnknownOption)

	assert.NoError(t, Validate(AnswerSet{"q1": "q1_o1", "q2": "q2_o1", "q3": "q3_o1"}, questions))
}

func TestValidateAnswer(t *testing.T) {
	questions := Questions(models.LanguageKorean)
	assert.NoError(t, ValidateAnswer(questions, "q2", "q2_o3"))
	assert.ErrorIs(t, ValidateAnswer(questions, "q2", "q1_o1"), ErrUnknownOption)
	assert.ErrorIs(t, ValidateAnswer(questions, "q7", "q7_o1"), ErrUnknownQuestion)
}

func TestResolve(t *testing.T) {
	res, err := Resolve(AnswerSet{"q1": "q1_o1", "q2": "q2_o1", "q3": "q3_o1"}, models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, Happy, res.Mood)
	assert.Equal(t, "Happy", res.Label)
	assert.Equal(t, 8, res.Scores[Happy])
	assert.Equal(t, 2, res.Scores[Hyped])

	_, err = Resolve(AnswerSet{"q1": "q1_o1"}, models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestGenreIDs(t *testing.T) {
	assert.Equal(t, []int{35, 10751}, Happy.GenreIDs())
	assert.Equal(t, []int{18}, Blue.GenreIDs())
	assert.Equal(t, []int{10749}, Excited.GenreIDs())
	assert.Equal(t, []int{28, 12}, Hyped.GenreIDs())
	assert.Empty(t, Any.GenreIDs())

	ids := Happy.GenreIDs()
	ids[0] = 0
	assert.Equal(t, 35, Happy.GenreIDs()[0])
}

func TestLabelsAndParse(t *testing.T) {
	assert.Equal(t, "신나요", Hyped.Label(models.LanguageKorean))
	assert.Equal(t, "Anything", Any.Label(models.LanguageEnglish))

	for _, in := range []string{"blue", "BLUE", "우울해요", "Blue"} {
		c, ok := ParseCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, Blue, c, in)
	}
	c, ok := ParseCategory("Anything")
	assert.True(t, ok)
	assert.Equal(t, Any, c)

	_, ok = ParseCategory("angry")
	assert.False(t, ok)
}

func TestQuestionsShape(t *testing.T) {
	ko := Questions(models.LanguageKorean)
	en := Questions(models.LanguageEnglish)
	require.Len(t, ko, 3)
	require.Len(t, en, 3)
	for i := range ko {
		assert.Equal(t, ko[i].ID, en[i].ID)
		assert.NotEqual(t, ko[i].Prompt, en[i].Prompt)
		require.Len(t, ko[i].Options, 4)
		for j := range ko[i].Options {
			assert.Equal(t, ko[i].Options[j].ID, en[i].Options[j].ID)
			assert.Equal(t, ko[i].Options[j].Weights, en[i].Options[j].Weights)
		}
	}

	// Mutating a returned question must not leak into the table.
	ko[0].Options[0].Weights[Happy] = 100
	assert.Equal(t, 3, Questions(models.LanguageKorean)[0].Options[0].Weights[Happy])
}
