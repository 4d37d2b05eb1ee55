package dto

import "github.com/IT-Nick/teachassist/internal/domain/model"

// GenerateFlashcardsRequest тело POST /api/generate-flashcards
type GenerateFlashcardsRequest struct {
	Topic              string            `json:"topic" validate:"required"`
	GradeLevel         string            `json:"grade_level"`
	NumCards           int               `json:"num_cards" validate:"min=1,max=100"`
	CardTypes          []string          `json:"card_types" validate:"min=1,dive,required"`
	Difficulty         string            `json:"difficulty"`
	TimePerCard        int               `json:"time_per_card" validate:"min=0"`
	ContentText        string            `json:"content_text"`
	SourceType         string            `json:"source_type" validate:"oneof=topic text file"`
	AutoGenerateQuiz   bool              `json:"auto_generate_quiz"`
	AppearanceSettings model.Appearance  `json:"appearance_settings"`
	QuizOptions        model.QuizOptions `json:"quiz_options"`
}

// GenerateFlashcardsResponse ответ генерации карточек, quiz_data может прийти сразу
type GenerateFlashcardsResponse struct {
	FlashcardSetID model.ID           `json:"flashcard_set_id"`
	Flashcards     []model.Flashcard  `json:"flashcards"`
	QuizID         model.ID           `json:"quiz_id,omitempty"`
	QuizData       *model.QuizPreview `json:"quiz_data,omitempty"`
}

// FlashcardSetResponse ответ GET /api/flashcard-set/:id
type FlashcardSetResponse struct {
	FlashcardSet model.FlashcardSet `json:"flashcard_set"`
	Flashcards   []model.Flashcard  `json:"flashcards"`
}

// QuizEnvelope общий вид ответа с квизом: существующий квиз набора или только что сгенерированный
type QuizEnvelope struct {
	QuizID   model.ID           `json:"quiz_id,omitempty"`
	QuizData *model.QuizPreview `json:"quiz_data,omitempty"`
}

// GenerateQuizRequest тело POST /api/generate-quiz
type GenerateQuizRequest struct {
	Topic        string   `json:"topic"`
	GradeLevel   string   `json:"grade_level"`
	NumQuestions int      `json:"numQuestions"`
	Types        []string `json:"types"`
	Mode         string   `json:"mode"`
	TimeLimit    int      `json:"time_limit"`
	ContentText  string   `json:"content_text"`
}

// SaveQuizRequest тело POST /api/flashcard-set/:id/quiz
type SaveQuizRequest struct {
	QuizData *model.QuizPreview `json:"quizData"`
}
