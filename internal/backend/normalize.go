package backend

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"
)

// The backend's documented contract names the job identifier "reviewId".
// Older snapshots of the service used a handful of aliases; those are a
// contract violation now and are logged rather than silently tolerated.
var idAliases = []string{"id", "jobId", "_id", "review_id"}

// extractID pulls the review id out of a decoded JSON object, accepting
// only the documented field name.
func (c *Client) extractID(obj map[string]json.RawMessage) (string, error) {
	if raw, ok := obj["reviewId"]; ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil && id != "" {
			return id, nil
		}
	}

	for _, alias := range idAliases {
		if _, ok := obj[alias]; ok {
			c.log.Error().Str("field", alias).Msg("Backend used undocumented id field, rejecting response")
			return "", fmt.Errorf("%w: id sent as %q", errors.ErrBackendContract, alias)
		}
	}

	return "", fmt.Errorf("%w: missing reviewId", errors.ErrBackendContract)
}

// normalizeSubmitAck maps a 2xx submission response onto the canonical
// SubmitAck.
func (c *Client) normalizeSubmitAck(raw []byte) (*SubmitAck, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBackendContract, err)
	}

	if rawSuccess, ok := obj["success"]; ok {
		var success bool
		if err := json.Unmarshal(rawSuccess, &success); err == nil && !success {
			return nil, BackendError{StatusCode: 200, Message: extractMessage(raw)}
		}
	}

	id, err := c.extractID(obj)
	if err != nil {
		return nil, err
	}

	ack := &SubmitAck{ReviewID: id}
	if rawFilename, ok := obj["filename"]; ok {
		_ = json.Unmarshal(rawFilename, &ack.Filename)
	}
	return ack, nil
}

// statusPayload mirrors the documented status shape, minus the id which
// goes through extractID.
type statusPayload struct {
	Status      string              `json:"status"`
	Filename    string              `json:"filename"`
	Progress    int                 `json:"progress"`
	CreatedAt   time.Time           `json:"createdAt"`
	CompletedAt *time.Time          `json:"completedAt"`
	Result      *model.ReviewResult `json:"result"`
	Error       string              `json:"error"`
}

// normalizeStatus maps the backend's status envelope onto model.Review.
// Unrecognized status strings are preserved; the poller treats them as
// still processing.
func (c *Client) normalizeStatus(raw []byte) (*model.Review, error) {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBackendContract, err)
	}
	if !envelope.Success || len(envelope.Data) == 0 {
		return nil, fmt.Errorf("%w: status envelope missing data", errors.ErrBackendContract)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBackendContract, err)
	}
	id, err := c.extractID(obj)
	if err != nil {
		return nil, err
	}

	var payload statusPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBackendContract, err)
	}

	return &model.Review{
		ID:          id,
		Status:      model.ReviewStatus(payload.Status),
		Filename:    payload.Filename,
		Progress:    payload.Progress,
		CreatedAt:   payload.CreatedAt,
		CompletedAt: payload.CompletedAt,
		Result:      payload.Result,
		Error:       payload.Error,
	}, nil
}
