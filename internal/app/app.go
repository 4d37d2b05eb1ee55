package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/IT-Nick/teachassist/internal/app/handlers/http/flashcard_link_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/http/history_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/http/publish_lesson_plan_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/http/quiz_report_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/http/share_quiz_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/http/worksheet_submission_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/answer_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/flashcards_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/flashquiz_handler"
	tgHistory "github.com/IT-Nick/teachassist/internal/app/handlers/telegram/history_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/history_nav_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/login_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/logout_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/publish_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quiz_action_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quiz_edit_text_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quiz_link_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quizrun"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/share_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/take_quiz_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/team_continue_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/team_pick_handler"
	"github.com/IT-Nick/teachassist/internal/app/middleware"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
	"github.com/IT-Nick/teachassist/internal/infra/apiclient"
	"github.com/IT-Nick/teachassist/internal/infra/config"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"gopkg.in/telebot.v4"
)

type Services struct {
	api      *apiclient.Client
	share    *shareService.ShareService
	backends *storage.Backends
	pages    *session.Pages
}

type App struct {
	config *config.Config
	log    *logger.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	redis  *goredis.Client
	server *http.Server

	Services
}

func NewApp(configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	log, err := logger.New(configImpl.Logger.Mode)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: configImpl,
		log:    log,
	}

	// база и redis нужны только выбранным бэкендам хранилищ
	if configImpl.Storage.Local == config.StoragePostgres {
		app.db, err = InitDatabase(configImpl, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	if configImpl.Storage.Session == config.StorageRedis {
		app.redis, err = storage.NewRedisClient(context.Background(), configImpl.Redis.Addr, configImpl.Redis.Password, configImpl.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	return app, nil
}

// Функция для инициализации сервисов и хранилищ
func (app *App) initServices() error {
	backends, err := storage.Open(context.Background(), app.config.Storage, app.db, app.redis)
	if err != nil {
		return err
	}

	app.backends = backends
	app.api = apiclient.New(app.config.API, app.log)
	app.share = shareService.NewShareService(app.config.Share.BaseURL)
	app.pages = session.NewPages(session.Deps{
		API:      app.api,
		Backends: backends,
		Share:    app.share,
		Log:      app.log,
	})
	return nil
}

// ListenAndServeTelegram запускает сервер Telegram бота
func (app *App) ListenAndServeTelegram() error {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	app.log.Info("telegram bot started", "username", bot.Me.Username)
	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Use(middleware.Recover(app.log), middleware.Logger(app.log))

	runner := quizrun.NewRunner(app.bot)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.pages).GetHandlerFunc())
	app.bot.Handle("/help", start_handler.NewStartHandler(app.pages).GetHandlerFunc())
	app.bot.Handle("/login", login_handler.NewLoginHandler(app.pages).GetHandlerFunc())
	app.bot.Handle("/logout", logout_handler.NewLogoutHandler(app.pages).GetHandlerFunc())

	// Ссылка на квиз и выбор команды в режиме collaboration
	app.bot.Handle("/quiz", quiz_link_handler.NewQuizLinkHandler(app.pages).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.TeamPickKey}, team_pick_handler.NewTeamPickHandler(app.pages).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.TeamContinueKey}, team_continue_handler.NewTeamContinueHandler(app.pages).GetHandlerFunc())

	// История квизов с пагинацией и фильтрами
	app.bot.Handle("/history", tgHistory.NewHistoryHandler(app.pages).GetHandlerFunc())
	for _, key := range []string{
		model.HistoryNextKey, model.HistoryPrevKey, model.HistoryEndKey,
		model.HistoryDateKey, model.HistoryTypeKey, model.HistorySortKey,
	} {
		app.bot.Handle(&telebot.InlineButton{Unique: key}, history_nav_handler.NewHistoryNavHandler(app.pages, key).GetHandlerFunc())
	}

	// Карточки, квиз по карточкам и его редактирование
	app.bot.Handle("/flashcards", flashcards_handler.NewFlashcardsHandler(app.pages).GetHandlerFunc())
	app.bot.Handle("/flashquiz", flashquiz_handler.NewFlashquizHandler(app.pages).GetHandlerFunc())
	app.bot.Handle("/take", take_quiz_handler.NewTakeQuizHandler(app.pages, runner).GetHandlerFunc())
	for _, key := range []string{
		model.QuizRetryKey, model.QuizEditKey, model.QuizSaveKey, model.QuizCancelKey, model.QuizTakeKey,
	} {
		app.bot.Handle(&telebot.InlineButton{Unique: key}, quiz_action_handler.NewQuizActionHandler(app.pages, runner, key).GetHandlerFunc())
	}
	app.bot.Handle(telebot.OnText, quiz_edit_text_handler.NewQuizEditTextHandler(app.pages).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.AnswerKey}, answer_handler.NewAnswerHandler(app.pages, runner).GetHandlerFunc())

	app.bot.Handle("/publish", publish_handler.NewPublishHandler(app.pages).GetHandlerFunc())
	app.bot.Handle("/share", share_handler.NewShareHandler(app.pages).GetHandlerFunc())
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	mx := http.NewServeMux()

	mx.Handle("POST /share/quiz", share_quiz_handler.NewShareQuizHandler(app.share, app.log))
	mx.Handle("GET /quizzes/history", history_handler.NewHistoryHandler(app.pages))
	mx.Handle("POST /flashcards/link", flashcard_link_handler.NewFlashcardLinkHandler(app.share))
	mx.Handle("POST /lesson-plans/{id}/publish", publish_lesson_plan_handler.NewPublishLessonPlanHandler(app.pages))
	mx.Handle("POST /worksheets/{id}/submissions", worksheet_submission_handler.NewWorksheetSubmissionHandler(app.pages))
	mx.Handle("POST /reports/quiz", quiz_report_handler.NewQuizReportHandler(app.log))

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: mx,
	}

	app.log.Info("http server listening", "addr", app.server.Addr)
	return app.server.ListenAndServe()
}

// ListenAndServe запускает оба сервера (Telegram и HTTP)
func (app *App) ListenAndServe() error {
	// Запускаем Telegram сервер
	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	// Запускаем HTTP сервер
	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Close закрывает соединения с базой и redis
func (app *App) Close() {
	if app.bot != nil {
		app.bot.Stop()
	}
	if app.db != nil {
		app.db.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.log.Warn("failed to close redis client", "error", err)
		}
	}
	app.log.Sync()
}
