package dto

import "github.com/IT-Nick/teachassist/internal/domain/model"

// UserQuizzesResponse ответ GET /user/quizzes
type UserQuizzesResponse struct {
	Quizzes []model.QuizSummary `json:"quizzes"`
}

// WorksheetSummary рабочий лист со статистикой отправок
type WorksheetSummary struct {
	ID              model.ID        `json:"id"`
	Title           string          `json:"title"`
	Subject         string          `json:"subject"`
	CreatedAt       model.Timestamp `json:"created_at"`
	SubmissionCount int             `json:"submission_count"`
	AverageScore    float64         `json:"average_score"`
}

// WorksheetSubmissionsResponse ответ GET /api/worksheet-submissions
type WorksheetSubmissionsResponse struct {
	Worksheets []WorksheetSummary `json:"worksheets"`
}

// PublishLessonPlanResponse ответ POST /api/publish-lesson-plan/:id
type PublishLessonPlanResponse struct {
	PublicURL string `json:"public_url"`
}

// TeamsResponse ответ GET /api/quiz/:id/teams
type TeamsResponse struct {
	Teams []model.Team `json:"teams"`
}

// SaveTeamsRequest тело POST /api/quiz/:id/teams
type SaveTeamsRequest struct {
	Teams       []model.Team `json:"teams"`
	StudentTeam string       `json:"studentTeam"`
	StudentName string       `json:"studentName"`
}

// SubmissionTeamRequest тело POST /api/quiz-submission/:id/team
type SubmissionTeamRequest struct {
	Team        string `json:"team"`
	QuizID      string `json:"quiz_id"`
	StudentName string `json:"student_name"`
}

// FormattedAnswer ответ на один вопрос в отправке результатов
type FormattedAnswer struct {
	QuestionID     string             `json:"questionId"`
	SelectedOption int                `json:"selectedOption"`
	IsCorrect      bool               `json:"isCorrect"`
	AnswerType     model.QuestionType `json:"answerType"`
}

// SubmitQuizRequest тело POST /api/submit-quiz и /api/save-quiz-results
type SubmitQuizRequest struct {
	QuizID          string                     `json:"quiz_id"`
	StudentName     string                     `json:"student_name"`
	Score           int                        `json:"score"`
	MaxScore        int                        `json:"max_score"`
	TimeTaken       int                        `json:"time_taken"`
	Answers         map[string]FormattedAnswer `json:"answers"`
	IsFlashcardQuiz bool                       `json:"is_flashcard_quiz"`
}

// SubmitQuizResponse ответ на отправку результатов
type SubmitQuizResponse struct {
	SubmissionID model.ID `json:"submission_id,omitempty"`
	ID           model.ID `json:"id,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// Submission идентификатор созданной отправки, если сервер его вернул
func (r SubmitQuizResponse) Submission() string {
	if r.SubmissionID != "" {
		return r.SubmissionID.String()
	}
	return r.ID.String()
}
