package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreicionca/motivare-absente/internal/config"
	"github.com/andreicionca/motivare-absente/internal/events"
	"github.com/andreicionca/motivare-absente/internal/media"
	"github.com/andreicionca/motivare-absente/internal/messaging/kafka/consumer"
	"github.com/andreicionca/motivare-absente/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer deletes released evidence images from the media host.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	mediaClient, err := media.NewCloudinaryClient(cfg.CloudName, cfg.APIKey, cfg.APISecret, cfg.UploadFolder)
	if err != nil {
		return err
	}

	reader := connection.NewKafkaReader(cfg.KafkaBroker, events.EvidenceReleaseTopic, cfg.KafkaGroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- consumer.ConsumeEvidenceRelease(ctx, reader, mediaClient, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("consumer shutting down")
		cancel()
		return <-errCh
	case err := <-errCh:
		if err != nil {
			logger.Error("consumer stopped", zap.Error(err))
		}
		return err
	}
}
