package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	teamsService "github.com/IT-Nick/teachassist/internal/domain/teams/service"
	"github.com/IT-Nick/teachassist/pkg/uricomp"
	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"
)

const (
	QuizQRSize       = 256
	LessonPlanQRSize = 300
)

// QuizShareRequest параметры окна "Поделиться квизом"
type QuizShareRequest struct {
	QuizID     string     `json:"quiz_id" validate:"required"`
	Mode       model.Mode `json:"mode" validate:"omitempty,oneof=relaxed competition collaboration"`
	Teams      int        `json:"teams" validate:"omitempty,min=1,max=50"`
	TeamNaming string     `json:"team_naming" validate:"omitempty,oneof=letters numbers colors custom"`
	TeamNames  []string   `json:"team_names"`
	Academy    string     `json:"academy"`
}

var validate = validator.New()

// ShareService собирает ссылки для отправки ученикам
type ShareService struct {
	baseURL string
}

// NewShareService создает новый экземпляр ShareService
func NewShareService(baseURL string) *ShareService {
	return &ShareService{baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL адрес сайта, от которого строятся ссылки
func (s *ShareService) BaseURL() string {
	return s.baseURL
}

// QuizURL строит ссылку на квиз. Параметры дописываются в фиксированном порядке:
// mode, teams, teamNaming, teamNames, academy.
func (s *ShareService) QuizURL(req QuizShareRequest) (string, error) {
	const op = "share.QuizURL"

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "QuizID" {
			return "", apperr.UserInput(op, "No quiz ID to share")
		}
		return "", apperr.UserInput(op, "Invalid share settings")
	}

	mode := req.Mode
	if mode == "" {
		mode = model.ModeRelaxed
	}

	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteString("/quiz.html?id=")
	b.WriteString(uricomp.Encode(req.QuizID))
	b.WriteString("&mode=")
	b.WriteString(string(mode))

	if mode == model.ModeCollaboration {
		teams := req.Teams
		if teams <= 0 {
			teams = 2
		}
		naming := req.TeamNaming
		if naming == "" {
			naming = teamsService.NamingLetters
		}
		b.WriteString("&teams=")
		b.WriteString(strconv.Itoa(teams))
		b.WriteString("&teamNaming=")
		b.WriteString(naming)

		if naming == teamsService.NamingCustom {
			b.WriteString("&teamNames=")
			b.WriteString(EncodeTeamNames(customNames(req.TeamNames, teams)))
		}
	}

	if academy := strings.TrimSpace(req.Academy); academy != "" {
		b.WriteString("&academy=")
		b.WriteString(uricomp.Encode(academy))
	}

	return b.String(), nil
}

// EncodeTeamNames каждое имя кодируется отдельно, затем весь список ещё раз
func EncodeTeamNames(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = uricomp.Encode(n)
	}
	return uricomp.Encode(strings.Join(parts, ","))
}

// customNames ровно teams имён, пустые заменяются на "Team i"
func customNames(names []string, teams int) []string {
	padded := make([]string, teams)
	copy(padded, names)
	return teamsService.ResolveNames(teams, teamsService.NamingCustom, padded)
}

// FlashcardLink ссылка на набор карточек с параметрами оформления
func (s *ShareService) FlashcardLink(setID, quizID string, appearance model.Appearance) (string, error) {
	if strings.TrimSpace(setID) == "" {
		return "", apperr.UserInput("share.FlashcardLink", "No flashcard set ID found")
	}

	a := appearance.WithDefaults()
	snow := "0"
	if a.ShowSnowflakes {
		snow = "1"
	}

	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteString("/flashcards.html?id=")
	b.WriteString(uricomp.Encode(setID))
	if quizID != "" {
		b.WriteString("&quiz=")
		b.WriteString(uricomp.Encode(quizID))
	}
	for _, p := range [][2]string{
		{"fb", a.FrontBackground},
		{"ft", a.FrontText},
		{"bb", a.BackBackground},
		{"bt", a.BackText},
		{"cb", a.CardBorder},
		{"snow", snow},
	} {
		b.WriteString("&")
		b.WriteString(p[0])
		b.WriteString("=")
		b.WriteString(uricomp.Encode(p[1]))
	}
	return b.String(), nil
}

// Mailto ссылка на письмо со ссылкой
func Mailto(subject, body string) string {
	return "mailto:?subject=" + uricomp.Encode(subject) + "&body=" + uricomp.Encode(body)
}

// QRCode PNG с QR-кодом ссылки
func QRCode(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
