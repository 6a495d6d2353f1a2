package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"notes-hub-api/config/common"
)

func NewFiber(cfg *common.Config) *fiber.App {
	appName := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
	})
}

func NewValidator() *validator.Validate {
	return validator.New()
}
