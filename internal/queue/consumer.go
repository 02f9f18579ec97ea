package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// StartRegistrationConsumer connects to RabbitMQ and consumes the
// registration.confirmed and registration.cancelled queues, appending
// each event to logs/registrations.log. It is a development stand-in
// for the notification delivery service. The function runs a
// reconnect loop forever; callers start it in its own goroutine.
func StartRegistrationConsumer() {
	url := BrokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logrus.WithError(err).Warnf("registration-consumer: dial failed; retrying in %s", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			logrus.WithError(err).Warn("registration-consumer: consume loop ended; reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logrus.WithError(err).Warn("registration-consumer: set QoS failed")
	}

	for _, name := range []string{ConfirmedQueueName, CancelledQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	confirmed, err := ch.Consume(ConfirmedQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ConfirmedQueueName, err)
	}
	cancelled, err := ch.Consume(CancelledQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", CancelledQueueName, err)
	}

	for {
		var d amqp.Delivery
		var ok bool
		var kind string
		select {
		case d, ok = <-confirmed:
			kind = "confirmed"
		case d, ok = <-cancelled:
			kind = "cancelled"
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := appendToLog(kind, d.Body); err != nil {
			logrus.WithError(err).Warn("registration-consumer: handle message failed")
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func appendToLog(kind string, body []byte) error {
	var line string
	switch kind {
	case "confirmed":
		var ev TicketConfirmedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("%s CONFIRMED ticket=%s event=%q user=%d amount=%d\n",
			time.Now().UTC().Format(time.RFC3339), ev.TicketID, ev.EventTitle, ev.UserID, ev.PriceCents)
	case "cancelled":
		var ev TicketCancelledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("%s CANCELLED ticket=%s event=%q user=%d reason=%s\n",
			time.Now().UTC().Format(time.RFC3339), ev.TicketID, ev.EventTitle, ev.UserID, ev.Reason)
	default:
		return fmt.Errorf("unknown event kind %q", kind)
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "registrations.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}
