package main

import (
	stdLog "log"
	"time"

	"github.com/Astemirdum/home-library/catalog/app"
	"github.com/Astemirdum/home-library/catalog/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
		config.WithAdminGroup("admin"),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("run ", err)
	}
}
