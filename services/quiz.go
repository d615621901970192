package services

import (
	"errors"
	"fmt"

	"edume/models"

	"gorm.io/gorm"
)

const (
	defaultPassingScore  = 70
	defaultQuestionScore = 5
	selectAnswerCount    = 4
)

// AnswerSubmission is one answer option in an authored question.
type AnswerSubmission struct {
	Value1    string `json:"value_1" validate:"required"`
	Value2    string `json:"value_2"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionSubmission is one authored question with its answer set.
type QuestionSubmission struct {
	Question string              `json:"question" validate:"required"`
	Type     models.QuestionType `json:"type" validate:"required"`
	Score    int                 `json:"score"`
	Answers  []AnswerSubmission  `json:"answers" validate:"required,min=1,dive"`
}

// QuizSubmission is the author-facing payload for building a quiz.
type QuizSubmission struct {
	Name         string               `json:"name" validate:"required"`
	PassingScore int                  `json:"passing_score" validate:"omitempty,min=50,max=100"`
	Questions    []QuestionSubmission `json:"questions" validate:"required,min=1,dive"`
}

// validateAnswers enforces the per-type answer shape.
func validateAnswers(q *QuestionSubmission) error {
	switch q.Type {
	case models.QuestionWriteable:
		if len(q.Answers) != 1 {
			return fmt.Errorf("%w: writeable question needs exactly one answer", ErrValidation)
		}
	case models.QuestionOneSelect, models.QuestionMultiSelect:
		if len(q.Answers) != selectAnswerCount {
			return fmt.Errorf("%w: %s question needs exactly %d answers", ErrValidation, q.Type, selectAnswerCount)
		}
	case models.QuestionMatchable:
		if len(q.Answers) != selectAnswerCount {
			return fmt.Errorf("%w: matchable question needs exactly %d answer pairs", ErrValidation, selectAnswerCount)
		}
		for _, a := range q.Answers {
			if a.Value2 == "" {
				return fmt.Errorf("%w: matchable answers need value_2", ErrValidation)
			}
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrValidation, q.Type)
	}
	return nil
}

// BuildQuiz creates the quiz with its questions and answers and appends a
// quiz-type lesson at the tail of the module's lesson chain, rewiring both
// neighbour pointers in the same transaction. Returns the quiz and the
// appended lesson.
func BuildQuiz(db *gorm.DB, moduleID uint, sub *QuizSubmission) (*models.Quiz, *models.Lesson, error) {
	var module models.Module
	if err := db.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	passing := sub.PassingScore
	if passing == 0 {
		passing = defaultPassingScore
	}
	if passing < 50 || passing > 100 {
		return nil, nil, fmt.Errorf("%w: passing_score must be between 50 and 100", ErrValidation)
	}

	for i := range sub.Questions {
		if err := validateAnswers(&sub.Questions[i]); err != nil {
			return nil, nil, err
		}
	}

	quiz := models.Quiz{Name: sub.Name, PassingScore: passing}
	lesson := models.Lesson{
		ModuleID: module.ID,
		Name:     sub.Name,
		Type:     models.LessonTypeQuiz,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		for i, qs := range sub.Questions {
			score := qs.Score
			if score == 0 {
				score = defaultQuestionScore
			}
			question := models.Question{
				QuizID:     quiz.ID,
				Question:   qs.Question,
				Type:       qs.Type,
				Score:      score,
				OrderIndex: i,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}

			for _, as := range qs.Answers {
				answer := models.Answer{
					QuestionID: question.ID,
					Value1:     as.Value1,
					Value2:     as.Value2,
					IsCorrect:  as.IsCorrect,
				}
				if qs.Type == models.QuestionWriteable {
					// The single writeable answer is the expected one.
					answer.IsCorrect = true
				}
				if err := tx.Create(&answer).Error; err != nil {
					return err
				}
			}
		}

		// Append the quiz lesson after the current tail, if the module
		// already has lessons.
		var tail models.Lesson
		err := tx.Where("module_id = ? AND next_id IS NULL", module.ID).
			Order("id desc").
			First(&tail).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hasTail := err == nil

		lesson.QuizID = &quiz.ID
		if hasTail {
			lesson.PreviousID = &tail.ID
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
		if hasTail {
			if err := tx.Model(&models.Lesson{}).
				Where("id = ?", tail.ID).
				Update("next_id", lesson.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &quiz, &lesson, nil
}

// AppendLesson creates a content lesson at the tail of the module's chain,
// updating both neighbour pointers transactionally.
func AppendLesson(db *gorm.DB, moduleID uint, lesson *models.Lesson) error {
	var module models.Module
	if err := db.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var tail models.Lesson
		err := tx.Where("module_id = ? AND next_id IS NULL", module.ID).
			Order("id desc").
			First(&tail).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		hasTail := err == nil

		lesson.ModuleID = module.ID
		if hasTail {
			lesson.PreviousID = &tail.ID
		}
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}
		if hasTail {
			if err := tx.Model(&models.Lesson{}).
				Where("id = ?", tail.ID).
				Update("next_id", lesson.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
