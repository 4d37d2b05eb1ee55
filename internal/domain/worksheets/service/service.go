package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
)

// MaxLocalRecords сколько последних записей хранится в local storage
const MaxLocalRecords = 50

// Score результат проверки рабочего листа
type Score struct {
	TotalScore    int  `json:"total_score"`
	TotalPossible int  `json:"total_possible"`
	EvaluatedByAI bool `json:"evaluated_by_ai"`
}

// Tracker запоминает результаты рабочих листов для панели квизов
type Tracker struct {
	browser *storage.Browser
	now     func() time.Time
	log     *logger.Logger
}

// NewTracker создает новый экземпляр Tracker
func NewTracker(browser *storage.Browser, log *logger.Logger) *Tracker {
	return &Tracker{browser: browser, now: time.Now, log: log}
}

// NewRecord запись о выполнении. Процент округляется, при нулевом максимуме равен 0.
func NewRecord(worksheetID string, s Score, at time.Time) model.WorksheetRecord {
	pct := 0
	if s.TotalPossible > 0 {
		pct = int(math.Floor(float64(s.TotalScore)/float64(s.TotalPossible)*100 + 0.5))
	}
	return model.WorksheetRecord{
		WorksheetID:   worksheetID,
		TotalScore:    s.TotalScore,
		TotalPossible: s.TotalPossible,
		Percentage:    pct,
		EvaluatedByAI: s.EvaluatedByAI,
		Timestamp:     at.UTC().Format(time.RFC3339),
	}
}

// Track дописывает запись в session (без ограничения) и local (последние 50).
// Ошибки хранилищ только логируются.
func (t *Tracker) Track(ctx context.Context, worksheetID string, s Score) model.WorksheetRecord {
	rec := NewRecord(worksheetID, s, t.now())

	t.append(ctx, "worksheets.TrackSession", t.browser.Session, rec, 0)
	t.append(ctx, "worksheets.TrackLocal", t.browser.Local, rec, MaxLocalRecords)
	return rec
}

func (t *Tracker) append(ctx context.Context, op string, store storage.Store, rec model.WorksheetRecord, limit int) {
	if store == nil {
		return
	}
	var records []model.WorksheetRecord
	if _, err := storage.GetJSON(ctx, store, storage.WorksheetSubmissionsKey, &records); err != nil {
		// испорченный список начинается заново
		t.log.Debug("discarding unreadable worksheet records", "op", op, "error", err)
		records = nil
	}
	records = append(records, rec)
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	apperr.Try(op, storage.SetJSON(ctx, store, storage.WorksheetSubmissionsKey, records)).Log(t.log)
}

// Records записи текущей сессии
func (t *Tracker) Records(ctx context.Context) []model.WorksheetRecord {
	var records []model.WorksheetRecord
	if _, err := storage.GetJSON(ctx, t.browser.Session, storage.WorksheetSubmissionsKey, &records); err != nil {
		t.log.Warn("failed to read worksheet records", "error", err)
		return nil
	}
	return records
}

// ParseScoreBadge разбирает бейдж вида "7/10". Нечисловые части считаются нулём.
func ParseScoreBadge(text string) (Score, bool) {
	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return Score{}, false
	}
	return Score{TotalScore: leadingInt(parts[0]), TotalPossible: leadingInt(parts[1])}, true
}

// leadingInt число в начале строки после пробелов, как parseInt
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
