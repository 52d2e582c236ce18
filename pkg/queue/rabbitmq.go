package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"fun123/pkg/config"
	"fun123/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MailQueueName  = "mail_queue"
	MailExchange   = "mail"
	MailRoutingKey = "outgoing"
)

// Mail templates rendered by the mail worker.
const (
	TemplateConfirm        = "auth/email/confirm"
	TemplateChangeEmail    = "auth/email/change_email"
	TemplateChangePassword = "auth/email/change_password"
	TemplateResetPassword  = "auth/email/reset_password"
)

// MailTask is one outgoing message. Token is the signed purpose token the
// template links back to.
type MailTask struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Template string    `json:"template"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	QueuedAt time.Time `json:"queued_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		MailExchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		MailQueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		MailQueueName,  // queue name
		MailRoutingKey, // routing key
		MailExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishMailTask queues a message for the mail worker.
func (c *Client) PublishMailTask(task MailTask) error {
	if task.QueuedAt.IsZero() {
		task.QueuedAt = time.Now()
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		MailExchange,   // exchange
		MailRoutingKey, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    task.QueuedAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish mail task to exchange=%s: %v", MailExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Queued mail template=%s to=%s", task.Template, task.To)
	return nil
}

// ConsumeMailTasks hands every queued task to handler. Malformed messages are
// dropped; handler failures are requeued.
func (c *Client) ConsumeMailTasks(handler func(task MailTask) error) error {
	msgs, err := c.channel.Consume(
		MailQueueName, // queue
		"",            // consumer
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from mail queue: %s", MailQueueName)

	go func() {
		for msg := range msgs {
			var task MailTask
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal mail task: %v", err)
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for mail template=%s: %v", task.Template, err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// QueueLength returns the number of messages waiting in the mail queue.
func (c *Client) QueueLength() (int, error) {
	q, err := c.channel.QueueInspect(MailQueueName)
	if err != nil {
		return 0, err
	}
	return q.Messages, nil
}
