package services

import (
	"testing"

	"edume/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectAnswers(correct int) []AnswerSubmission {
	answers := make([]AnswerSubmission, selectAnswerCount)
	for i := range answers {
		answers[i] = AnswerSubmission{Value1: "option", IsCorrect: i == correct}
	}
	return answers
}

func TestBuildQuiz(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)

	t.Run("unknown module", func(t *testing.T) {
		sub := QuizSubmission{
			Name: "Quiz",
			Questions: []QuestionSubmission{
				{Question: "Q?", Type: models.QuestionOneSelect, Answers: selectAnswers(0)},
			},
		}
		_, _, err := BuildQuiz(db, 9999, &sub)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("appends the quiz lesson after the tail", func(t *testing.T) {
		module := createModule(t, db, course.ID, 1)
		chain := createLessonChain(t, db, module.ID, 2)

		sub := QuizSubmission{
			Name: "Final quiz",
			Questions: []QuestionSubmission{
				{Question: "Pick one", Type: models.QuestionOneSelect, Answers: selectAnswers(1)},
			},
		}
		quiz, lesson, err := BuildQuiz(db, module.ID, &sub)
		require.NoError(t, err)

		assert.Equal(t, defaultPassingScore, quiz.PassingScore)
		assert.Equal(t, models.LessonTypeQuiz, lesson.Type)
		require.NotNil(t, lesson.QuizID)
		assert.Equal(t, quiz.ID, *lesson.QuizID)
		require.NotNil(t, lesson.PreviousID)
		assert.Equal(t, chain[1].ID, *lesson.PreviousID)

		var oldTail models.Lesson
		require.NoError(t, db.First(&oldTail, chain[1].ID).Error)
		require.NotNil(t, oldTail.NextID)
		assert.Equal(t, lesson.ID, *oldTail.NextID)
	})

	t.Run("empty module makes the quiz lesson the head", func(t *testing.T) {
		module := createModule(t, db, course.ID, 2)

		sub := QuizSubmission{
			Name: "Opening quiz",
			Questions: []QuestionSubmission{
				{Question: "Pick one", Type: models.QuestionOneSelect, Answers: selectAnswers(0)},
			},
		}
		_, lesson, err := BuildQuiz(db, module.ID, &sub)
		require.NoError(t, err)
		assert.Nil(t, lesson.PreviousID)
	})

	t.Run("writeable answer is forced correct", func(t *testing.T) {
		module := createModule(t, db, course.ID, 3)

		sub := QuizSubmission{
			Name: "Writeable quiz",
			Questions: []QuestionSubmission{
				{
					Question: "Type the answer",
					Type:     models.QuestionWriteable,
					Score:    10,
					Answers:  []AnswerSubmission{{Value1: "expected", IsCorrect: false}},
				},
			},
		}
		quiz, _, err := BuildQuiz(db, module.ID, &sub)
		require.NoError(t, err)

		var question models.Question
		require.NoError(t, db.Where("quiz_id = ?", quiz.ID).First(&question).Error)
		assert.Equal(t, 10, question.Score)

		var answers []models.Answer
		require.NoError(t, db.Where("question_id = ?", question.ID).Find(&answers).Error)
		require.Len(t, answers, 1)
		assert.True(t, answers[0].IsCorrect)
	})

	t.Run("question order and default score", func(t *testing.T) {
		module := createModule(t, db, course.ID, 4)

		sub := QuizSubmission{
			Name:         "Ordered quiz",
			PassingScore: 80,
			Questions: []QuestionSubmission{
				{Question: "First", Type: models.QuestionOneSelect, Answers: selectAnswers(0)},
				{Question: "Second", Type: models.QuestionMultiSelect, Answers: selectAnswers(2)},
			},
		}
		quiz, _, err := BuildQuiz(db, module.ID, &sub)
		require.NoError(t, err)
		assert.Equal(t, 80, quiz.PassingScore)

		var questions []models.Question
		require.NoError(t, db.Where("quiz_id = ?", quiz.ID).
			Order("order_index asc").Find(&questions).Error)
		require.Len(t, questions, 2)
		assert.Equal(t, "First", questions[0].Question)
		assert.Equal(t, 1, questions[1].OrderIndex)
		assert.Equal(t, defaultQuestionScore, questions[0].Score)
	})
}

func TestBuildQuizValidation(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	module := createModule(t, db, course.ID, 1)

	build := func(q QuestionSubmission) error {
		sub := QuizSubmission{Name: "Quiz", Questions: []QuestionSubmission{q}}
		_, _, err := BuildQuiz(db, module.ID, &sub)
		return err
	}

	t.Run("one_select needs four answers", func(t *testing.T) {
		err := build(QuestionSubmission{
			Question: "Q?",
			Type:     models.QuestionOneSelect,
			Answers:  selectAnswers(0)[:3],
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("writeable needs exactly one answer", func(t *testing.T) {
		err := build(QuestionSubmission{
			Question: "Q?",
			Type:     models.QuestionWriteable,
			Answers:  []AnswerSubmission{{Value1: "a"}, {Value1: "b"}},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("matchable needs value_2 on every pair", func(t *testing.T) {
		answers := selectAnswers(0)
		answers[0].Value2 = "pair"
		err := build(QuestionSubmission{
			Question: "Q?",
			Type:     models.QuestionMatchable,
			Answers:  answers,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown question type", func(t *testing.T) {
		err := build(QuestionSubmission{
			Question: "Q?",
			Type:     "essay",
			Answers:  selectAnswers(0),
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("passing score out of range", func(t *testing.T) {
		sub := QuizSubmission{
			Name:         "Quiz",
			PassingScore: 40,
			Questions: []QuestionSubmission{
				{Question: "Q?", Type: models.QuestionOneSelect, Answers: selectAnswers(0)},
			},
		}
		_, _, err := BuildQuiz(db, module.ID, &sub)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAppendLesson(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "998902222222")
	course := createCourse(t, db, author.ID, 10000)
	module := createModule(t, db, course.ID, 1)

	t.Run("unknown module", func(t *testing.T) {
		lesson := models.Lesson{Name: "Orphan", Type: models.LessonTypeContent}
		assert.ErrorIs(t, AppendLesson(db, 9999, &lesson), ErrNotFound)
	})

	t.Run("first lesson becomes the head", func(t *testing.T) {
		lesson := models.Lesson{Name: "Intro", Type: models.LessonTypeContent}
		require.NoError(t, AppendLesson(db, module.ID, &lesson))
		assert.Nil(t, lesson.PreviousID)
	})

	t.Run("later lessons chain onto the tail", func(t *testing.T) {
		lesson := models.Lesson{Name: "Next", Type: models.LessonTypeContent}
		require.NoError(t, AppendLesson(db, module.ID, &lesson))
		require.NotNil(t, lesson.PreviousID)

		var prev models.Lesson
		require.NoError(t, db.First(&prev, *lesson.PreviousID).Error)
		require.NotNil(t, prev.NextID)
		assert.Equal(t, lesson.ID, *prev.NextID)
		assert.Equal(t, "Intro", prev.Name)
	})
}
