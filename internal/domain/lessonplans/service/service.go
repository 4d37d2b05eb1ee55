package service

import (
	"context"
	"strings"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
)

const (
	MailSubject = "Math Lesson Plan"

	MsgNoID    = "No lesson plan ID found"
	MsgNoToken = "Please login to share lesson plans"
)

// API метод публикации плана урока
type API interface {
	PublishLessonPlan(ctx context.Context, token, lessonID string) (string, error)
}

// Tokens источник bearer-токена страницы
type Tokens interface {
	Token(ctx context.Context) (string, bool)
	ClearIfUnauthorized(ctx context.Context, err error) bool
}

// Published опубликованный план и способы им поделиться
type Published struct {
	PublicURL string `json:"public_url"`
	Mailto    string `json:"mailto"`
	QRCode    []byte `json:"qr_code"`
}

// LessonPlanService публикует планы уроков
type LessonPlanService struct {
	api    API
	tokens Tokens
	log    *logger.Logger
}

// NewLessonPlanService создает новый экземпляр LessonPlanService
func NewLessonPlanService(api API, tokens Tokens, log *logger.Logger) *LessonPlanService {
	return &LessonPlanService{api: api, tokens: tokens, log: log}
}

// Publish делает план публичным и готовит ссылку, письмо и QR-код.
// Если QR-код построить не удалось, план всё равно считается опубликованным.
func (s *LessonPlanService) Publish(ctx context.Context, lessonID string) (*Published, error) {
	const op = "lessonplans.Publish"

	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return nil, apperr.UserInput(op, MsgNoID)
	}
	token, ok := s.tokens.Token(ctx)
	if !ok {
		return nil, apperr.Auth(op, 0, MsgNoToken, nil)
	}

	url, err := s.api.PublishLessonPlan(ctx, token, lessonID)
	if err != nil {
		s.tokens.ClearIfUnauthorized(ctx, err)
		return nil, err
	}

	p := &Published{
		PublicURL: url,
		Mailto:    MailtoLink(url),
	}
	png, err := shareService.QRCode(url, shareService.LessonPlanQRSize)
	if err != nil {
		s.log.Warn("failed to generate lesson plan QR code", "lesson_id", lessonID, "error", err)
	} else {
		p.QRCode = png
	}
	return p, nil
}

// MailtoLink письмо со ссылкой на план
func MailtoLink(url string) string {
	return shareService.Mailto(MailSubject, "Check out this lesson plan: "+url)
}
