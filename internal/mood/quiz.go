package mood

import (
	"maps"

	"github.com/jjbmsda/ott-mood-app/internal/models"
)

// Question is one localized quiz question.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Option is one answer to a question. Weights are hidden from clients.
type Option struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Weights map[Category]int `json:"-"`
}

type text struct{ ko, en string }

func (t text) in(lang models.Language) string {
	if lang.IsEnglish() {
		return t.en
	}
	return t.ko
}

type optionDef struct {
	id      string
	label   text
	weights map[Category]int
}

type questionDef struct {
	id      string
	prompt  text
	options []optionDef
}

var quiz = []questionDef{
	{
		id: "q1",
		prompt: text{
			ko: "지금 영화 볼 때, 어떤 느낌이 가장 끌려요?",
			en: "What kind of movie do you want right now?",
		},
		options: []optionDef{
			{"q1_o1", text{"가볍게 웃으면서 리프레시 하고 싶어요", "Something light and funny"}, map[Category]int{Happy: 3, Hyped: 1}},
			{"q1_o2", text{"감정에 푹 빠지는 진지한 영화요", "Something deep and emotional"}, map[Category]int{Blue: 2, Excited: 1}},
			{"q1_o3", text{"심장 쿵쾅, 스릴 넘치는 영화요", "Thrilling and intense"}, map[Category]int{Hyped: 3}},
			{"q1_o4", text{"아무 생각 없이 그냥 보고 싶어요", "Anything, I just want to watch"}, map[Category]int{Any: 2}},
		},
	},
	{
		id: "q2",
		prompt: text{
			ko: "오늘 하루를 한 줄로 말하면 어떤 느낌에 가까워요?",
			en: "How was your day overall?",
		},
		options: []optionDef{
			{"q2_o1", text{"뭔가 잘 풀려서 기분이 좋아요", "Pretty good, things went well"}, map[Category]int{Happy: 3}},
			{"q2_o2", text{"조금 지치고 다운된 날이에요", "I feel tired or down"}, map[Category]int{Blue: 3}},
			{"q2_o3", text{"설레는 일이 있거나 기대되는 게 있어요", "I feel excited about something"}, map[Category]int{Excited: 3}},
			{"q2_o4", text{"별 감정 없이 그냥 평범했어요", "Just an ordinary day"}, map[Category]int{Any: 2}},
		},
	},
	{
		id: "q3",
		prompt: text{
			ko: "함께 보는 사람을 떠올리면 어떤 영화가 어울릴까요?",
			en: "Who are you watching with?",
		},
		options: []optionDef{
			{"q3_o1", text{"같이 크게 웃을 수 있는 영화", "Friends, laugh together"}, map[Category]int{Happy: 2, Hyped: 1}},
			{"q3_o2", text{"얘기 많이 나눌 수 있는 진지한 영화", "Someone to talk deeply with"}, map[Category]int{Blue: 2}},
			{"q3_o3", text{"둘만의 분위기 살리는 로맨스 영화", "A date or a romantic vibe"}, map[Category]int{Excited: 3}},
			{"q3_o4", text{"그냥 재밌으면 뭐든 좋아요", "Anyone, fun is what matters"}, map[Category]int{Any: 2}},
		},
	},
}

// Questions returns the quiz in lang. Question and option ids are the same
// in every language, so answers survive a language switch.
func Questions(lang models.Language) []Question {
	out := make([]Question, 0, len(quiz))
	for _, q := range quiz {
		opts := make([]Option, 0, len(q.options))
		for _, o := range q.options {
			opts = append(opts, Option{ID: o.id, Label: o.label.in(lang), Weights: maps.Clone(o.weights)})
		}
		out = append(out, Question{ID: q.id, Prompt: q.prompt.in(lang), Options: opts})
	}
	return out
}

func findOption(q Question, optionID string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return Option{}, false
}
