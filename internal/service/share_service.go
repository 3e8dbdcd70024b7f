package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// ShareService issues and resolves Fernet-sealed links that expose one job's
// breakdown without authentication.
type ShareService struct {
	keys []*fernet.Key
	ttl  time.Duration
	jobs *JobService
	now  func() time.Time
}

type sharePayload struct {
	JobID  string `json:"jobId"`
	UserID string `json:"userId"`
}

// NewShareService creates a new ShareService. key is a base64 Fernet key;
// when empty, a random key is generated and links die with the process.
func NewShareService(key string, ttl time.Duration, jobs *JobService) (*ShareService, error) {
	var k *fernet.Key
	if key == "" {
		k = new(fernet.Key)
		if err := k.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate share key: %w", err)
		}
	} else {
		var err error
		k, err = fernet.DecodeKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to decode share key: %w", err)
		}
	}

	return &ShareService{
		keys: []*fernet.Key{k},
		ttl:  ttl,
		jobs: jobs,
		now:  time.Now,
	}, nil
}

// CreateShareLink seals a link to one of userID's jobs.
// Returns ErrJobNotFound if the job does not belong to userID.
func (s *ShareService) CreateShareLink(ctx context.Context, userID, jobID string) (model.ShareLink, error) {
	if _, err := s.jobs.GetJob(ctx, userID, jobID); err != nil {
		return model.ShareLink{}, err
	}

	msg, err := json.Marshal(sharePayload{JobID: jobID, UserID: userID})
	if err != nil {
		return model.ShareLink{}, fmt.Errorf("failed to encode share payload: %w", err)
	}

	tok, err := fernet.EncryptAndSign(msg, s.keys[0])
	if err != nil {
		return model.ShareLink{}, fmt.Errorf("failed to seal share token: %w", err)
	}

	return model.ShareLink{
		Token:     string(tok),
		ExpiresAt: s.now().UTC().Add(s.ttl).Format(time.RFC3339),
	}, nil
}

// ResolveShareLink opens a share token and renders the job's current breakdown.
// Forged, corrupted and expired tokens return ErrInvalidShareToken.
func (s *ShareService) ResolveShareLink(ctx context.Context, token string) (model.Breakdown, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), s.ttl, s.keys)
	if msg == nil {
		return model.Breakdown{}, apperrors.ErrInvalidShareToken
	}

	var payload sharePayload
	if err := json.Unmarshal(msg, &payload); err != nil || payload.JobID == "" {
		return model.Breakdown{}, apperrors.ErrInvalidShareToken
	}

	return s.jobs.Breakdown(ctx, payload.UserID, payload.JobID)
}
