package produce

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExtractionPublisher schedules document text-extraction jobs.
type ExtractionPublisher interface {
	PublishExtractDocument(ctx context.Context, msg ExtractDocumentMessage) error
}

type Produce struct {
	Extraction ExtractionPublisher
}

func InitProduce(channel *amqp.Channel) *Produce {
	extraction := InitExtractionProduceService(channel)
	if extraction == nil {
		return nil
	}

	return &Produce{
		Extraction: extraction,
	}
}
