package media

import (
	"bytes"
	"context"
	"io"

	mediaerrors "github.com/andreicionca/motivare-absente/internal/media/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	UploadEvidence(ctx context.Context, r io.Reader, rotation int) (UploadResult, error)
	Release(ctx context.Context, publicID string) error
}

type service struct {
	client Client
	logger *zap.Logger
}

func NewService(client Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("media.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("media.service")
	}
	return &service{client: client, logger: l}
}

func (s *service) UploadEvidence(ctx context.Context, r io.Reader, rotation int) (UploadResult, error) {
	data, err := PrepareImage(r, rotation)
	if err != nil {
		s.logger.Warn("prepare evidence failed", zap.Int("rotation", rotation), zap.Error(err))
		return UploadResult{}, err
	}

	name := uuid.NewString()
	res, err := s.client.Upload(ctx, bytes.NewReader(data), name)
	if err != nil {
		s.logger.Error("evidence upload failed", zap.String("name", name), zap.Error(err))
		return UploadResult{}, mediaerrors.ErrUploadFailed.WithDetails(err.Error())
	}

	s.logger.Info("evidence uploaded",
		zap.String("public_id", res.PublicID),
		zap.Int("bytes", len(data)),
	)
	return res, nil
}

func (s *service) Release(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := s.client.Destroy(ctx, publicID); err != nil {
		s.logger.Error("evidence release failed", zap.String("public_id", publicID), zap.Error(err))
		return err
	}
	s.logger.Info("evidence released", zap.String("public_id", publicID))
	return nil
}
