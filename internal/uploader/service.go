package uploader

import (
	"context"
	"fmt"

	"github.com/DEFRA/content-reviewer-frontend/internal/backend"
	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/internal/poller"
	"github.com/DEFRA/content-reviewer-frontend/internal/storage"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/rs/zerolog"
)

// Service drives one upload session from initiate to a backend review:
// poll the scanner to a terminal state, fetch the scanned object from
// S3, forward it to the backend review service and clean the object up.
type Service struct {
	cfg     *config.Config
	client  *Client
	store   storage.Storage
	backend *backend.Client
	poller  *poller.Poller
	log     zerolog.Logger
}

func NewService(cfg *config.Config, client *Client, store storage.Storage, backendClient *backend.Client, p *poller.Poller) *Service {
	return &Service{
		cfg:     cfg,
		client:  client,
		store:   store,
		backend: backendClient,
		poller:  p,
		log:     logger.Get(),
	}
}

func (s *Service) Initiate(ctx context.Context, redirect string) (*model.UploadSession, error) {
	return s.client.Initiate(ctx, redirect)
}

func (s *Service) Status(ctx context.Context, uploadID string) (*model.UploadSession, error) {
	return s.client.Status(ctx, uploadID)
}

// AwaitAndForward polls the upload session until the scanner reaches a
// terminal state, then submits the scanned file to the backend. The
// session itself is discarded once a review id exists.
func (s *Service) AwaitAndForward(ctx context.Context, uploadID string) (*backend.SubmitAck, error) {
	log := s.log.With().Str("upload_id", uploadID).Logger()

	var last *model.UploadSession
	outcome, err := s.poller.Run(ctx, func(ctx context.Context) (poller.State, error) {
		session, err := s.client.Status(ctx, uploadID)
		if err != nil {
			return poller.StateUnknown, err
		}
		last = session
		switch session.UploadStatus {
		case model.UploadStatusReady:
			return poller.StateDone, nil
		case model.UploadStatusRejected:
			return poller.StateFailed, nil
		default:
			return poller.StatePending, nil
		}
	})
	if err != nil {
		return nil, err
	}

	switch outcome {
	case poller.OutcomeFailed:
		reason := "file failed the virus scan"
		if last != nil && last.Reason != "" {
			reason = last.Reason
		}
		log.Warn().Str("reason", reason).Msg("Upload rejected by scanner")
		return nil, fmt.Errorf("%w: %s", errors.ErrUploadRejected, reason)
	case poller.OutcomeTimedOut:
		return nil, errors.ErrPollTimeout
	}

	if last == nil || last.S3Key == "" {
		return nil, fmt.Errorf("upload session %s ready but missing s3 key", uploadID)
	}

	file, err := s.store.Download(ctx, last.S3Key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scanned file: %w", err)
	}
	defer file.Close()

	ack, err := s.backend.SubmitFile(ctx, last.Filename, last.ContentType, file)
	if err != nil {
		return nil, err
	}

	// The scanned object has served its purpose once the backend has a
	// copy; failures here only leak a temp object, not user data flow.
	if err := s.store.Delete(ctx, last.S3Key); err != nil {
		log.Warn().Err(err).Str("s3_key", last.S3Key).Msg("Failed to delete scanned object")
	}

	log.Info().Str("review_id", ack.ReviewID).Msg("Scanned upload forwarded to backend")
	return ack, nil
}
