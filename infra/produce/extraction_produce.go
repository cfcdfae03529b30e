package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExtractionExchange   = "document.exchange"
	ExtractionQueue      = "document.extract"
	ExtractionRoutingKey = "document.extract"
)

// ExtractDocumentMessage schedules text extraction for an uploaded file. The
// download URL is presigned and short-lived, so the consumer must act on the
// message promptly.
type ExtractDocumentMessage struct {
	FileID      string `json:"file_id"`
	DownloadURL string `json:"download_url"`
	Timestamp   int64  `json:"timestamp"`
}

// ExtractionProduceService publishes extraction jobs for the consumer worker.
type ExtractionProduceService struct {
	channel *amqp.Channel
}

func InitExtractionProduceService(channel *amqp.Channel) *ExtractionProduceService {
	service := &ExtractionProduceService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		ExtractionExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to declare extraction exchange: %v", err)
		return nil
	}

	queue, err := channel.QueueDeclare(
		ExtractionQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to declare extraction queue: %v", err)
		return nil
	}

	err = channel.QueueBind(
		queue.Name,
		ExtractionRoutingKey,
		ExtractionExchange,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to bind extraction queue: %v", err)
		return nil
	}

	return service
}

func (s *ExtractionProduceService) PublishExtractDocument(ctx context.Context, msg ExtractDocumentMessage) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction message: %w", err)
	}

	err = s.channel.PublishWithContext(ctx,
		ExtractionExchange,
		ExtractionRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish extraction message: %w", err)
	}
	return nil
}
