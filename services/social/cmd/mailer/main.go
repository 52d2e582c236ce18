package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fun123/pkg/config"
	"fun123/pkg/logger"
	"fun123/pkg/queue"
	"fun123/services/social/internal/mail"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithConfig(cfg.LogLevel, cfg.LogFormat)

	renderer, err := mail.NewRenderer(cfg.PublicURL, cfg.MailSender)
	if err != nil {
		log.Error("Failed to load mail templates: %v", err)
		panic(err)
	}
	sender := mail.NewSender(cfg, log)

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}
	defer queueClient.Close()

	if err := queueClient.ConsumeMailTasks(mail.Handler(renderer, sender, log)); err != nil {
		log.Error("Failed to consume mail tasks: %v", err)
		panic(err)
	}

	if pending, err := queueClient.QueueLength(); err == nil {
		log.Info("Mailer started, %d mails pending", pending)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Mailer exited")
}
