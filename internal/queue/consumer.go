package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartFraudConsumer connects to RabbitMQ, declares the scan.suspicious
// queue (durable), and starts consuming alert events.  Each alert is
// appended to logs/fraud.log in a single-line format for manual review.
// The function runs a reconnect loop with exponential backoff and keeps
// running across broker outages; processing errors are logged and the
// offending message is rejected without requeue.
func StartFraudConsumer() error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("fraud-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("fraud-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
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
		log.Printf("fraud-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(suspiciousQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(suspiciousQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleAlert(d.Body); err != nil {
			log.Printf("fraud-consumer: handle alert failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleAlert(body []byte) error {
	var ev SuspiciousScanEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "fraud.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	elapsed := (ev.ScannedAt - ev.LastSeenAt) / 60
	line := fmt.Sprintf("[%s] Suspicious travel | device=%q | from=%q | to=%q | elapsed=%.1f min | required=%d min\n",
		time.Unix(int64(ev.ScannedAt), 0).UTC().Format(time.RFC3339),
		ev.DeviceID, ev.LastLocation, ev.NewLocation, elapsed, ev.RequiredMinutes)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
