package model

// Константы для кнопок. Привязаны к названиям обработчиков.
// Не следует добавлять/изменять константы без изменения регистрации в app.bootstrapHandlersTelegram
const (
	TeamPickKey     = "team_pick"
	TeamContinueKey = "team_continue"

	HistoryNextKey = "hist_next"
	HistoryPrevKey = "hist_prev"
	HistoryEndKey  = "hist_end"
	HistoryDateKey = "hist_date"
	HistoryTypeKey = "hist_type"
	HistorySortKey = "hist_sort"

	QuizRetryKey  = "quiz_retry"
	QuizEditKey   = "quiz_edit"
	QuizSaveKey   = "quiz_save"
	QuizCancelKey = "quiz_cancel"
	QuizTakeKey   = "quiz_take"

	AnswerKey = "answer"
)
