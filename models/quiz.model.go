package models

import "gorm.io/gorm"

// QuestionType enumerates the supported question kinds. Each kind carries its
// own answer shape, validated at authoring time.
type QuestionType string

const (
	QuestionOneSelect   QuestionType = "one_select"
	QuestionMultiSelect QuestionType = "multi_select"
	QuestionMatchable   QuestionType = "matchable"
	QuestionWriteable   QuestionType = "writeable"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionOneSelect, QuestionMultiSelect, QuestionMatchable, QuestionWriteable:
		return true
	}
	return false
}

// Quiz holds an ordered set of questions and the score needed to pass.
type Quiz struct {
	gorm.Model
	Name         string     `json:"name" gorm:"not null"`
	PassingScore int        `json:"passing_score" gorm:"default:70"` // 50..100
	Questions    []Question `json:"questions" gorm:"foreignKey:QuizID"`
}

func (q *Quiz) CountQuestions() int {
	return len(q.Questions)
}

type Question struct {
	gorm.Model
	QuizID     uint         `json:"quiz_id" gorm:"index;not null"`
	Question   string       `json:"question" gorm:"type:text;not null"`
	Type       QuestionType `json:"type" gorm:"not null"`
	Score      int          `json:"score" gorm:"default:0"`
	OrderIndex int          `json:"order_index" gorm:"default:0"`
	Answers    []Answer     `json:"answers" gorm:"foreignKey:QuestionID"`
}

// Answer holds one answer option. Value2 is set for matchable pairs only.
type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Value1     string `json:"value_1" gorm:"type:text;not null"`
	Value2     string `json:"value_2" gorm:"type:text;default:''"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
}

// JSON builds the learner-facing payload for a question. The shape follows
// the question type: writeable collapses to a single always-correct answer,
// matchable pairs always read as correct, select types carry the author's
// flags verbatim. Correctness exposure is intentionally unchanged from the
// historical API contract.
func (q *Question) JSON() map[string]interface{} {
	answers := []map[string]interface{}{}
	for _, answer := range q.Answers {
		switch q.Type {
		case QuestionWriteable:
			answers = append(answers, map[string]interface{}{
				"value_1":    answer.Value1,
				"value_2":    nil,
				"is_correct": true,
			})
			return map[string]interface{}{
				"question": q.Question,
				"type":     q.Type,
				"answers":  answers,
			}
		case QuestionOneSelect, QuestionMultiSelect:
			answers = append(answers, map[string]interface{}{
				"value_1":    answer.Value1,
				"value_2":    nil,
				"is_correct": answer.IsCorrect,
			})
		case QuestionMatchable:
			answers = append(answers, map[string]interface{}{
				"value_1":    answer.Value1,
				"value_2":    answer.Value2,
				"is_correct": true,
			})
		}
	}
	return map[string]interface{}{
		"question": q.Question,
		"type":     q.Type,
		"answers":  answers,
	}
}
