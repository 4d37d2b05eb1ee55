package apiclient

import (
	"context"
	"net/http"

	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/go-resty/resty/v2"
)

// GenerateFlashcards POST /api/generate-flashcards с собственным дедлайном
func (c *Client) GenerateFlashcards(ctx context.Context, token string, req dto.GenerateFlashcardsRequest) (*dto.GenerateFlashcardsResponse, error) {
	var out dto.GenerateFlashcardsResponse
	_, err := c.call(ctx, "api.GenerateFlashcards", c.flashcardTimeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetBody(req).Post("/api/generate-flashcards")
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFlashcardSet GET /api/flashcard-set/:id
func (c *Client) GetFlashcardSet(ctx context.Context, token, setID string) (*dto.FlashcardSetResponse, error) {
	var out dto.FlashcardSetResponse
	_, err := c.call(ctx, "api.GetFlashcardSet", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetPathParam("id", setID).Get("/api/flashcard-set/{id}")
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFlashcardSetQuiz GET /api/flashcard-set/:id/quiz. found=false при 404.
func (c *Client) GetFlashcardSetQuiz(ctx context.Context, token, setID string) (env *dto.QuizEnvelope, found bool, err error) {
	const op = "api.GetFlashcardSetQuiz"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.request(ctx, token).SetPathParam("id", setID).Get("/api/flashcard-set/{id}/quiz")
	if err != nil {
		return nil, false, transportError(op, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if err := statusError(op, resp.StatusCode()); err != nil {
		return nil, false, err
	}

	var out dto.QuizEnvelope
	if err := decode(op, resp, &out); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

// SaveFlashcardSetQuiz POST /api/flashcard-set/:id/quiz
func (c *Client) SaveFlashcardSetQuiz(ctx context.Context, token, setID string, quiz *model.QuizPreview) error {
	_, err := c.call(ctx, "api.SaveFlashcardSetQuiz", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).
			SetPathParam("id", setID).
			SetBody(dto.SaveQuizRequest{QuizData: quiz}).
			Post("/api/flashcard-set/{id}/quiz")
	}, nil)
	return err
}

// GenerateQuiz POST /api/generate-quiz
func (c *Client) GenerateQuiz(ctx context.Context, token string, req dto.GenerateQuizRequest) (*dto.QuizEnvelope, error) {
	var out dto.QuizEnvelope
	_, err := c.call(ctx, "api.GenerateQuiz", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetBody(req).Post("/api/generate-quiz")
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UserQuizzes GET /user/quizzes, требует токен
func (c *Client) UserQuizzes(ctx context.Context, token string) ([]model.QuizSummary, error) {
	var out dto.UserQuizzesResponse
	_, err := c.call(ctx, "api.UserQuizzes", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).Get("/user/quizzes")
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Quizzes, nil
}

// WorksheetSubmissions GET /api/worksheet-submissions, публичный
func (c *Client) WorksheetSubmissions(ctx context.Context) ([]dto.WorksheetSummary, error) {
	var out dto.WorksheetSubmissionsResponse
	_, err := c.call(ctx, "api.WorksheetSubmissions", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, "").Get("/api/worksheet-submissions")
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Worksheets, nil
}

// PublishLessonPlan POST /api/publish-lesson-plan/:id
func (c *Client) PublishLessonPlan(ctx context.Context, token, lessonID string) (string, error) {
	var out dto.PublishLessonPlanResponse
	_, err := c.call(ctx, "api.PublishLessonPlan", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetPathParam("id", lessonID).Post("/api/publish-lesson-plan/{id}")
	}, &out)
	if err != nil {
		return "", err
	}
	return out.PublicURL, nil
}

// QuizTeams GET /api/quiz/:id/teams
func (c *Client) QuizTeams(ctx context.Context, token, quizID string) ([]model.Team, error) {
	var out dto.TeamsResponse
	_, err := c.call(ctx, "api.QuizTeams", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetPathParam("id", quizID).Get("/api/quiz/{id}/teams")
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Teams, nil
}

// SaveQuizTeams POST /api/quiz/:id/teams
func (c *Client) SaveQuizTeams(ctx context.Context, token, quizID string, req dto.SaveTeamsRequest) error {
	_, err := c.call(ctx, "api.SaveQuizTeams", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetPathParam("id", quizID).SetBody(req).Post("/api/quiz/{id}/teams")
	}, nil)
	return err
}

// AttachSubmissionTeam POST /api/quiz-submission/:id/team, без авторизации
func (c *Client) AttachSubmissionTeam(ctx context.Context, submissionID string, req dto.SubmissionTeamRequest) error {
	_, err := c.call(ctx, "api.AttachSubmissionTeam", c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, "").SetPathParam("id", submissionID).SetBody(req).Post("/api/quiz-submission/{id}/team")
	}, nil)
	return err
}

// SubmitQuiz POST /api/submit-quiz
func (c *Client) SubmitQuiz(ctx context.Context, token string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	return c.submit(ctx, "api.SubmitQuiz", "/api/submit-quiz", token, req)
}

// SaveQuizResults POST /api/save-quiz-results, запасной адрес для отправки
func (c *Client) SaveQuizResults(ctx context.Context, token string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	return c.submit(ctx, "api.SaveQuizResults", "/api/save-quiz-results", token, req)
}

func (c *Client) submit(ctx context.Context, op, path, token string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	var out dto.SubmitQuizResponse
	_, err := c.call(ctx, op, c.timeout, func(ctx context.Context) (*resty.Response, error) {
		return c.request(ctx, token).SetBody(req).Post(path)
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
