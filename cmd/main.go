package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jotickets/jotickets/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Info("no .env file found, using environment")
	}

	if err := server.Start(); err != nil {
		logrus.WithError(err).Fatal("server failed to start")
	}
}
