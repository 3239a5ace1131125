// Command notify_worker consumes login-notification jobs from RabbitMQ and
// sends them through Mailgun. Runs separately from the API server so a slow
// mail provider never delays a login response.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/config"
	"github.com/grainworks/portfolio-api/pkg/helpers"
	"github.com/grainworks/portfolio-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify", cfg.Env)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitMQNotifyQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQNotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("notify worker consuming %q", cfg.RabbitMQNotifyQueue)
	for {
		select {
		case <-ctx.Done():
			logger.Info("notify worker stopping")
			return
		case d, ok := <-msgs:
			if !ok {
				logger.Warn("consume channel closed")
				return
			}
			handleDelivery(ctx, mg, cfg.MailSendEnabled, d, logger)
		}
	}
}

func handleDelivery(ctx context.Context, mg *mailer.Mailgun, sendEnabled bool, d amqp.Delivery, logger *logrus.Logger) {
	var job mailer.LoginNotification
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Warnf("dropping malformed job: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if sendEnabled {
		subject := "New login to your portfolio dashboard"
		text := fmt.Sprintf("A new session was opened for %s at %s.\nIP: %s\nAgent: %s\n",
			job.Email, job.LoginAt.Format("2006-01-02 15:04:05 MST"), job.IP, job.Agent)
		if err := mg.Send(ctx, job.To, subject, text, ""); err != nil {
			logger.Warnf("mail send failed, requeueing: %v", err)
			_ = d.Nack(false, true)
			return
		}
	} else {
		logger.Infof("mail sending disabled, login at %s from %s", job.LoginAt, job.IP)
	}
	_ = d.Ack(false)
}
