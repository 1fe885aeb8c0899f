package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"Jyotisa/internal/domain/models"
	"Jyotisa/internal/service/metrics"
	"Jyotisa/internal/usecase"
	xhttp "Jyotisa/pkg/http"
	xlogger "Jyotisa/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// TransitStream pushes a transit snapshot to each websocket client every
// interval, starting immediately on connect.
type TransitStream struct {
	transits *usecase.TransitsUseCase
	interval time.Duration
	logger   *xlogger.Logger
	metrics  *metrics.API
	upgrader websocket.Upgrader
}

func NewTransitStream(transits *usecase.TransitsUseCase, interval time.Duration, logger *xlogger.Logger, m *metrics.API) *TransitStream {
	if interval <= 0 {
		interval = time.Minute
	}
	return &TransitStream{
		transits: transits,
		interval: interval,
		logger:   logger,
		metrics:  m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve validates lat/lon before upgrading the connection.
func (s *TransitStream) Serve(c echo.Context) error {
	req := &models.TransitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.logger.Warn("websocket upgrade", xlogger.Error(err))
		return nil
	}
	s.metrics.StreamOpened()
	defer s.metrics.StreamClosed()
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go s.readPump(conn, cancel)

	s.writePump(ctx, conn, *req.Lat, *req.Lon)
	return nil
}

// readPump consumes control frames and cancels the stream on disconnect.
func (s *TransitStream) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *TransitStream) writePump(ctx context.Context, conn *websocket.Conn, lat, lon float64) {
	push := time.NewTicker(s.interval)
	defer push.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if !s.push(ctx, conn, lat, lon) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case <-push.C:
			if !s.push(ctx, conn, lat, lon) {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push writes one snapshot, or an error envelope when the provider fails.
// It reports false once the connection is unusable.
func (s *TransitStream) push(ctx context.Context, conn *websocket.Conn, lat, lon float64) bool {
	var msg xhttp.APIResponse
	snap, err := s.transits.Now(ctx, lat, lon)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		appErr := toAppError(err)
		s.logger.Warn("transit stream", xlogger.Error(err))
		msg = xhttp.Envelope(appErr.Status, []*xhttp.AppError{appErr})
	} else {
		msg = xhttp.Envelope(http.StatusOK, snap)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		return false
	}
	if snap != nil {
		s.metrics.Pushed()
	}
	return true
}
