// Package stream provides DynamoDB Streams handlers that keep attribute
// stores in step with the host's object tables.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/lattice/store"
)

// Attributes read from the host object's old image.
const (
	AttrObjectKind = "object_kind"
	AttrID         = "id"
)

// Purger deletes every attribute of an object. *fields.Writer implements it.
type Purger interface {
	Purge(ctx context.Context, kind store.ObjectKind, objectID string) (int, error)
}

// Handler processes DynamoDB stream events of host object tables.
type Handler struct {
	purger Purger
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(p Purger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		purger: p,
		logger: logger,
	}
}

// HandleObjectRemoved purges the attributes of host objects deleted from
// their table. This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleObjectRemoved(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Will retry, eventually DLQ
		}
	}
	return nil
}

// processRecord processes a single DynamoDB stream record.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != "REMOVE" {
		return nil
	}

	// KEYS_ONLY streams carry no old image.
	image := record.Change.OldImage
	if len(image) == 0 {
		image = record.Change.Keys
	}

	rawKind := getStringAttr(image, AttrObjectKind)
	kind, err := store.ParseObjectKind(rawKind)
	if err != nil {
		h.logger.Warn("skipping record with unknown object kind",
			"eventID", record.EventID,
			"kind", rawKind,
		)
		return nil
	}

	objectID := getIDAttr(image, AttrID)
	if objectID == "" {
		h.logger.Warn("skipping record without object id",
			"eventID", record.EventID,
			"kind", kind,
		)
		return nil
	}

	deleted, err := h.purger.Purge(ctx, kind, objectID)
	if err != nil {
		return fmt.Errorf("purge %s %s: %w", kind, objectID, err)
	}

	h.logger.Info("purged object attributes",
		"kind", kind,
		"objectID", objectID,
		"deleted", deleted,
	)
	return nil
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

// getNumberAttr extracts a number attribute from a DynamoDB stream image.
func getNumberAttr(image map[string]events.DynamoDBAttributeValue, key string) int64 {
	if v, ok := image[key]; ok {
		if v.DataType() == events.DataTypeNumber {
			n, _ := strconv.ParseInt(v.Number(), 10, 64)
			return n
		}
	}
	return 0
}

// getIDAttr extracts an object id stored as either a string or a number.
func getIDAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if s := getStringAttr(image, key); s != "" {
		return s
	}
	if n := getNumberAttr(image, key); n != 0 {
		return strconv.FormatInt(n, 10)
	}
	return ""
}
