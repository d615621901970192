package models

import "gorm.io/gorm"

const (
	LessonTypeContent = "lesson"
	LessonTypeQuiz    = "quiz"
)

// Lesson is a node in its module's chain. PreviousID/NextID are foreign-key
// style references; a lesson with no PreviousID is the head of the chain.
type Lesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null"`
	Video      string `json:"video" gorm:"default:''"`
	Duration   int    `json:"duration" gorm:"default:0"` // seconds
	Resource   string `json:"resource" gorm:"default:''"`
	Type       string `json:"type" gorm:"default:'lesson'"` // lesson, quiz
	QuizID     *uint  `json:"quiz_id"`
	PreviousID *uint  `json:"previous_id"`
	NextID     *uint  `json:"next_id"`
}

// IsQuiz reports whether the lesson is backed by a quiz.
func (l *Lesson) IsQuiz() bool {
	return l.QuizID != nil
}

func (l *Lesson) HasPrevious() bool {
	return l.PreviousID != nil
}

func (l *Lesson) HasNext() bool {
	return l.NextID != nil
}

// LessonFinisher marks a lesson as completed by a user.
type LessonFinisher struct {
	gorm.Model
	LessonID uint `json:"lesson_id" gorm:"uniqueIndex:idx_lesson_finisher;not null"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_lesson_finisher;not null"`
}
