package model

// QuestionType тип вопроса квиза
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionParagraph      QuestionType = "paragraph"
)

// Scorable вопросы с выбором варианта участвуют в подсчёте баллов
func (t QuestionType) Scorable() bool {
	return t == QuestionMultipleChoice || t == QuestionTrueFalse
}

// Option вариант ответа
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question вопрос квиза
type Question struct {
	ID          string       `json:"id,omitempty"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Options     []Option     `json:"options,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
}

// CorrectOption индекс первого правильного варианта или -1
func (q Question) CorrectOption() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// QuizPreview квиз, сгенерированный по набору карточек
type QuizPreview struct {
	ID             ID         `json:"id,omitempty"`
	Title          string     `json:"title"`
	Topic          string     `json:"topic"`
	TimeLimit      int        `json:"time_limit,omitempty"`
	Questions      []Question `json:"questions"`
	FlashcardSetID string     `json:"flashcard_set_id,omitempty"`
}

// Clone глубокая копия, чтобы правки не затрагивали сохранённую версию
func (q *QuizPreview) Clone() *QuizPreview {
	if q == nil {
		return nil
	}
	c := *q
	c.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Options = append([]Option(nil), question.Options...)
		c.Questions[i] = question
	}
	return &c
}

// Mode режим проведения квиза
type Mode string

const (
	ModeRelaxed       Mode = "relaxed"
	ModeCompetition   Mode = "competition"
	ModeCollaboration Mode = "collaboration"
	ModeWorksheet     Mode = "worksheet"
)

// Label текст бейджа режима
func (m Mode) Label() string {
	switch m {
	case ModeCompetition:
		return "Competition"
	case ModeCollaboration:
		return "Collaboration"
	case ModeWorksheet:
		return "Worksheet"
	default:
		return "Relaxed"
	}
}

// Source откуда пришла запись истории
type Source string

const (
	SourceQuiz      Source = "quiz"
	SourceWorksheet Source = "worksheet"
)

// QuizSummary строка таблицы истории квизов
type QuizSummary struct {
	ID              ID        `json:"id"`
	Title           string    `json:"title"`
	Topic           string    `json:"topic"`
	GradeLevel      string    `json:"grade_level"`
	TimeLimit       *int      `json:"time_limit"`
	QuizMode        Mode      `json:"quiz_mode"`
	CreatedAt       Timestamp `json:"created_at"`
	Source          Source    `json:"source"`
	SubmissionCount int       `json:"submission_count,omitempty"`
	AverageScore    float64   `json:"average_score,omitempty"`
}

// EffectiveMode пустой режим считается relaxed
func (s QuizSummary) EffectiveMode() Mode {
	if s.QuizMode == "" {
		return ModeRelaxed
	}
	return s.QuizMode
}

// QuizOptions настройки генерации квиза из формы
type QuizOptions struct {
	QuestionCount int          `json:"questionCount" validate:"min=3,max=20"`
	TimeLimit     *int         `json:"timeLimit,omitempty" validate:"omitempty,min=1"`
	QuestionType  QuestionType `json:"questionType" validate:"oneof=multiple_choice true_false"`
	QuizMode      string       `json:"quizMode" validate:"oneof=list auto"`
}
