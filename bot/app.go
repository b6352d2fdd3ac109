package bot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vpyshma/baraholka-bot/conversation"
	"github.com/vpyshma/baraholka-bot/core/bootstrap"
	coretelegram "github.com/vpyshma/baraholka-bot/core/telegram"
	"github.com/vpyshma/baraholka-bot/core/telegram/commands"
	"github.com/vpyshma/baraholka-bot/core/telegram/router"
	"github.com/vpyshma/baraholka-bot/core/telegram/ui"
	"github.com/vpyshma/baraholka-bot/models"
	"github.com/vpyshma/baraholka-bot/services"
	"github.com/vpyshma/baraholka-bot/storage"
)

// App assembles the marketplace bot on top of the shared telegram core.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	handlers *handlers
	registry *coretelegram.Registry
}

// New runs the bootstrap pipeline (logger, database, migrations) and wires
// repositories, services, and handlers.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config provided")
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	usersRepo := storage.NewUsers(res.DB)
	adsRepo := storage.NewAds(res.DB)

	h := &handlers{
		adminID: cfg.Telegram.AdminID,
		tracker: conversation.NewTracker(),
		users:   services.NewUsers(usersRepo),
		ads:     services.NewAds(adsRepo, usersRepo),
	}

	return &App{
		cfg:      cfg,
		db:       res.DB,
		handlers: h,
		registry: buildRegistry(h),
	}, nil
}

// buildRegistry maps commands, their menu-button aliases, and the moderation
// callbacks onto the handler set.
func buildRegistry(h *handlers) *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.handleStart,
		Description: "Запуск и главное меню",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.handleHelp,
		Description: "Помощь по использованию",
		Aliases:     []string{btnHelp},
	})
	reg.RegisterCommand("/add", commands.Command{
		Handler:     h.handleAddAd,
		Description: "Добавить объявление",
		Aliases:     []string{btnAddAd},
	})
	reg.RegisterCommand("/myads", commands.Command{
		Handler:     h.handleMyAds,
		Description: "Мои объявления",
		Aliases:     []string{btnMyAds},
	})
	reg.RegisterCommand("/search", commands.Command{
		Handler:     h.handleSearchPrompt,
		Description: "Поиск объявлений",
		Aliases:     []string{btnSearch},
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     h.handleStats,
		Description: "Статистика барахолки",
		AdminOnly:   true,
	})

	_ = reg.RegisterCallback(cbApprove, h.decideHandler(models.DecisionApprove))
	_ = reg.RegisterCallback(cbReject, h.decideHandler(models.DecisionReject))

	registerFallbacks(reg, h)

	return reg
}

func registerFallbacks(reg *coretelegram.Registry, fp ui.FallbackProvider) {
	reg.SetTextFallback(fp.UnknownText())
	reg.SetCallbackNotFound(fp.UnknownCallback())
}

// TelegramRunOptions builds the route table and middleware chain for the
// shared runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	h := a.handlers
	reg := a.registry

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: h.adminReject,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: h.UnknownCallback(),
	}))
	routes = append(routes, router.TextRoutes(h, reg, router.TextOptions{
		UnknownText: h.UnknownText(),
	})...)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
