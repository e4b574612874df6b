// internal/scoring/tracking/sinks.go
package tracking

import (
	"context"
	"database/sql"
	"encoding/json"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	sdksns "github.com/aws/aws-sdk-go-v2/service/sns"

	"marketplace-scoring/internal/common/aws"
	"marketplace-scoring/internal/common/errors"
	"marketplace-scoring/internal/models"
)

// SNSSink publishes exposure events to an SNS topic as JSON messages.
type SNSSink struct {
	client   *aws.SNSClient
	topicARN string
}

func NewSNSSink(client *aws.SNSClient, topicARN string) *SNSSink {
	return &SNSSink{client: client, topicARN: topicARN}
}

func (s *SNSSink) Publish(ctx context.Context, event models.ExposureEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.NewTrackingPublishFailedError(err)
	}
	_, err = s.client.Publish(ctx, &sdksns.PublishInput{
		TopicArn: awssdk.String(s.topicARN),
		Message:  awssdk.String(string(payload)),
	})
	if err != nil {
		return errors.NewTrackingPublishFailedError(err)
	}
	return nil
}

// PostgresSink appends exposure events to the exposure_events table.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Publish(ctx context.Context, event models.ExposureEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exposure_events (id, user_id, item_type, item_id, score, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.UserID, event.ItemType, event.ItemID, event.Score, event.OccurredAt,
	)
	if err != nil {
		return errors.NewTrackingPublishFailedError(err)
	}
	return nil
}
