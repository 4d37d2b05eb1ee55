package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/go-playground/validator/v10"
)

// Имена полей формы настроек квиза
const (
	FieldQuestionCount = "quiz-question-count"
	FieldTimeLimit     = "quiz-time-limit"
	FieldQuestionType  = "quiz-question-type"
	FieldQuizMode      = "quiz-mode"
)

const (
	DefaultQuestionCount = 5
	DefaultTimeLimit     = 30
	MinQuestionCount     = 3
	MaxQuestionCount     = 20

	ModeList = "list"
	ModeAuto = "auto"
)

// Form источник значений формы. ok=false, если поле не отрисовано.
type Form interface {
	Value(field string) (string, bool)
}

// FormValues форма в виде map, так её собирают обработчики
type FormValues map[string]string

func (f FormValues) Value(field string) (string, bool) {
	v, ok := f[field]
	return v, ok
}

var validate = validator.New()

// Read собирает QuizOptions из формы с подстановкой значений по умолчанию
func Read(form Form) model.QuizOptions {
	opts := model.QuizOptions{
		QuestionCount: DefaultQuestionCount,
		QuestionType:  model.QuestionMultipleChoice,
		QuizMode:      ModeList,
	}

	if raw, ok := form.Value(FieldQuestionCount); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n != 0 {
			opts.QuestionCount = clamp(n, MinQuestionCount, MaxQuestionCount)
		}
	}

	// поле лимита времени отрисовано не на всех страницах
	if raw, ok := form.Value(FieldTimeLimit); ok {
		limit := DefaultTimeLimit
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
			limit = n
		}
		opts.TimeLimit = &limit
	}

	if raw, ok := form.Value(FieldQuestionType); ok {
		switch t := model.QuestionType(strings.TrimSpace(raw)); t {
		case model.QuestionMultipleChoice, model.QuestionTrueFalse:
			opts.QuestionType = t
		}
	}

	if raw, ok := form.Value(FieldQuizMode); ok {
		switch m := strings.TrimSpace(raw); m {
		case ModeList, ModeAuto:
			opts.QuizMode = m
		}
	}

	return opts
}

// Write раскладывает настройки обратно в поля формы
func Write(opts model.QuizOptions) FormValues {
	values := FormValues{
		FieldQuestionCount: strconv.Itoa(opts.QuestionCount),
		FieldQuestionType:  string(opts.QuestionType),
		FieldQuizMode:      opts.QuizMode,
	}
	if opts.TimeLimit != nil {
		values[FieldTimeLimit] = strconv.Itoa(*opts.TimeLimit)
	}
	return values
}

// Validate проверяет диапазоны и перечисления
func Validate(opts model.QuizOptions) error {
	const op = "options.Validate"

	err := validate.Struct(opts)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.UserInput(op, fieldMessage(verrs[0]))
	}
	return apperr.UserInput(op, err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "QuestionCount":
		return fmt.Sprintf("Question count must be between %d and %d", MinQuestionCount, MaxQuestionCount)
	case "TimeLimit":
		return "Time limit must be a positive number of minutes"
	case "QuestionType":
		return "Question type must be multiple_choice or true_false"
	case "QuizMode":
		return "Quiz mode must be list or auto"
	}
	return fmt.Sprintf("Invalid value for %s", fe.Field())
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
