package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"notes-hub-api/config/common"
	applogger "notes-hub-api/config/logger"
	"notes-hub-api/handler"
	"notes-hub-api/middleware"
	"notes-hub-api/repository"
	"notes-hub-api/routes"
	"notes-hub-api/security"
	"notes-hub-api/usecase"
	"notes-hub-api/ws"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	AppLog *applogger.AppLogger
	*DBConfig
	*security.JWT
	*middleware.Middleware
}

func NewLogrus() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func RunServer() {
	newConfig := common.NewViper()
	app := NewFiber(newConfig)
	log := NewLogrus()
	appLog := applogger.NewLogger()
	newDB := NewDB(newConfig, appLog)
	newValidator := NewValidator()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)

	app.Use(cors.New(cors.Config{
		AllowOrigins: newConfig.GetCorsOrigins(),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	App(&AppConfig{
		App:        app,
		Validate:   newValidator,
		Logger:     log,
		AppLog:     appLog,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: newMiddleware,
	})

	if err := app.Listen(":" + newConfig.GetServerPort()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

func App(aC *AppConfig) {
	newAuthRepository := repository.NewAuthRepository()
	newUserRepository := repository.NewUserRepository()
	newChatRepository := repository.NewChatRepository()
	newMessageRepository := repository.NewMessageRepository()

	newAuthUsecase := usecase.NewAuthUsecase(newAuthRepository, aC.Validate, aC.GetDB(), aC.Logger, aC.JWT)
	newUserUsecase := usecase.NewUserUsecase(newUserRepository, aC.GetDB(), aC.AppLog, aC.JWT)
	newChatUsecase := usecase.NewChatUsecase(newChatRepository, newMessageRepository, aC.Logger, aC.GetDB())
	newMessageUsecase := usecase.NewMessageUsecase(aC.GetDB(), aC.Logger, newMessageRepository, newChatRepository)

	hub := ws.NewHub(aC.Logger)
	presence := ws.NewPresence()
	router := handler.NewEventRouter(hub, presence, newChatUsecase, newMessageUsecase, aC.Logger)

	newAuthHandler := handler.NewAuthHandler(newAuthUsecase, aC.Logger)
	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Logger)
	newChatHandler := handler.NewChatHandler(newChatUsecase, newMessageUsecase, aC.Validate, aC.Logger, router)
	newMessageHandler := handler.NewMessageHandler(newMessageUsecase, aC.Validate, aC.Logger, router)

	wsHandler := handler.NewWebSocketHandler(aC.Logger, aC.AppLog, hub, presence, newChatUsecase, router)

	route := routes.ConfigRoute{
		App:            aC.App,
		Middleware:     aC.Middleware,
		AuthHandler:    newAuthHandler,
		UserHandler:    newUserHandler,
		ChatHandler:    newChatHandler,
		MessageHandler: newMessageHandler,
	}
	route.GetRoute()
	route.GetWebSocketRoute(wsHandler)
}
