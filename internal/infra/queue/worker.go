package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WinbackSender is the outreach channel the worker delivers through.
type WinbackSender interface {
	SendWinback(to, name string, daysSinceLastVisit int) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  WinbackSender
}

func NewWorker(ch *amqp.Channel, mailer WinbackSender) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack off, ack manually after the send succeeds
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload WinbackPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Malformed winback event: %s", err)
				// Poison message. Reject without requeue so it dead-letters.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Winback event for %s (%d days)", payload.Email, payload.DaysSinceLastVisit)

			if err := w.Mailer.SendWinback(payload.Email, payload.Name, payload.DaysSinceLastVisit); err != nil {
				log.Printf("❌ [WORKER] Winback email to %s failed: %s", payload.Email, err)
				d.Nack(false, false)
				continue
			}

			log.Printf("✅ [WORKER] Winback email sent to %s", payload.Email)
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Winback worker waiting on queue '%s'", queueName)
	<-forever
}
