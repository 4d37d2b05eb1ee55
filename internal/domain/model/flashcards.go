package model

// Flashcard карточка с вопросом и ответом
type Flashcard struct {
	ID    ID     `json:"id,omitempty"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardSet метаданные набора карточек
type FlashcardSet struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic,omitempty"`
	GradeLevel string `json:"grade_level"`
}

// Appearance цвета карточек, передаются в ссылке на набор
type Appearance struct {
	FrontBackground string `json:"frontBackground,omitempty"`
	FrontText       string `json:"frontText,omitempty"`
	BackBackground  string `json:"backBackground,omitempty"`
	BackText        string `json:"backText,omitempty"`
	CardBorder      string `json:"cardBorder,omitempty"`
	ShowSnowflakes  bool   `json:"showSnowflakes,omitempty"`
}

// WithDefaults подставляет стандартные цвета в пустые поля
func (a Appearance) WithDefaults() Appearance {
	if a.FrontBackground == "" {
		a.FrontBackground = "#ffffff"
	}
	if a.FrontText == "" {
		a.FrontText = "#333333"
	}
	if a.BackBackground == "" {
		a.BackBackground = "#f0f9ff"
	}
	if a.BackText == "" {
		a.BackText = "#333333"
	}
	if a.CardBorder == "" {
		a.CardBorder = "#e0e0e0"
	}
	return a
}

// WorksheetRecord запись о выполненном рабочем листе
type WorksheetRecord struct {
	WorksheetID   string `json:"worksheet_id"`
	TotalScore    int    `json:"total_score"`
	TotalPossible int    `json:"total_possible"`
	Percentage    int    `json:"percentage"`
	EvaluatedByAI bool   `json:"evaluated_by_ai"`
	Timestamp     string `json:"timestamp"`
}
