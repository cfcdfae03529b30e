package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/atlashq/atlas-project-service/infra"
	"github.com/atlashq/atlas-project-service/infra/produce"
	"github.com/atlashq/atlas-project-service/repository"
)

// ExtractionConsumer handles document text-extraction jobs. It runs with its
// own infra and repository, fully detached from the HTTP request that
// scheduled the job.
type ExtractionConsumer struct {
	channel    *amqp.Channel
	infra      *infra.Infra
	repository *repository.Repository
}

func NewExtractionConsumer(channel *amqp.Channel, infra *infra.Infra, repo *repository.Repository) *ExtractionConsumer {
	return &ExtractionConsumer{
		channel:    channel,
		infra:      infra,
		repository: repo,
	}
}

func (c *ExtractionConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.ExtractionQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register extraction consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Extraction Consumer] Started listening for extraction jobs on queue: %s", produce.ExtractionQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Extraction Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Extraction Consumer] Channel closed")
					return
				}
				c.handleExtractDocument(ctx, msg)
			}
		}
	}()

	return nil
}

// handleExtractDocument performs one extraction round trip. Failures are
// terminal: the message is acked without retry and the file row is left
// untouched, so a null processed_at remains the durable signal that
// extraction never completed.
func (c *ExtractionConsumer) handleExtractDocument(ctx context.Context, msg amqp.Delivery) {
	var payload produce.ExtractDocumentMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Extraction Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	fileID, err := uuid.Parse(payload.FileID)
	if err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Extraction Consumer] Invalid file id %q: %v", payload.FileID, err)
		_ = msg.Nack(false, false)
		return
	}

	if err := c.ProcessExtraction(ctx, fileID, payload.DownloadURL); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Extraction Consumer] Extraction failed for file %s: %v", fileID, err)
	}

	_ = msg.Ack(false)
}

// ProcessExtraction calls the extraction service and persists contents and
// processed_at together in one update.
func (c *ExtractionConsumer) ProcessExtraction(ctx context.Context, fileID uuid.UUID, downloadURL string) error {
	contents, err := c.infra.Extraction.ExtractText(ctx, downloadURL)
	if err != nil {
		return fmt.Errorf("extraction service call failed: %w", err)
	}

	if err := c.repository.Files.MarkProcessed(ctx, fileID, contents, time.Now()); err != nil {
		return fmt.Errorf("failed to persist extraction result: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Extraction Consumer] Extracted %d bytes of text for file %s", len(contents), fileID)
	return nil
}
