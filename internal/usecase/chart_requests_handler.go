package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"Jyotisa/internal/domain/models"
	domrepo "Jyotisa/internal/domain/repository"
	pkgkafka "Jyotisa/pkg/kafka"
	applogger "Jyotisa/pkg/logger"
)

// ChartRequestsHandler computes charts requested over Kafka and publishes
// each result keyed by request id.
type ChartRequestsHandler struct {
	topic     string
	reports   *ChartReportUseCase
	publisher domrepo.ChartPublisher
	log       *applogger.Logger
}

func NewChartRequestsHandler(topic string, reports *ChartReportUseCase, publisher domrepo.ChartPublisher, l *applogger.Logger) *ChartRequestsHandler {
	if l == nil {
		l = applogger.NewNop()
	}
	return &ChartRequestsHandler{topic: topic, reports: reports, publisher: publisher, log: l}
}

func (h *ChartRequestsHandler) Topic() string { return h.topic }

// Handle returns an error only for failures worth retrying. Malformed
// messages and invalid birth data are answered with an error result.
func (h *ChartRequestsHandler) Handle(ctx context.Context, b []byte) error {
	var msg models.ChartRequestMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		h.log.Warn("drop malformed chart request", applogger.Error(err))
		return nil
	}

	var rep *models.ChartReport
	in, err := msg.Chart.Birth()
	if err == nil {
		rep, err = h.reports.Report(ctx, in, msg.RequestID)
	}
	res := &models.ChartResultMessage{RequestID: msg.RequestID, Report: rep}
	if err != nil {
		if errors.Is(err, models.ErrProviderUnavailable) {
			return fmt.Errorf("chart request %s: %w", msg.RequestID, err)
		}
		res.Error = err.Error()
	}
	return h.publisher.PublishResult(ctx, res)
}

var _ pkgkafka.MessageHandler = (*ChartRequestsHandler)(nil)
