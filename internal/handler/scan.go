package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-validation/internal/graph"
	"github.com/iliyamo/train-ticket-validation/internal/queue"
	"github.com/iliyamo/train-ticket-validation/internal/repository"
	"github.com/iliyamo/train-ticket-validation/internal/service"
)

// ScanHandler serves the scan registration and token lookup endpoints used
// by conductor scanner devices.  Both endpoints sit behind the device JWT
// middleware, so c.Get("device_id") identifies the calling scanner.
type ScanHandler struct {
	Registrar *service.ScanRegistrar
	Tickets   *repository.TicketRepo
	Network   *graph.Graph
}

// NewScanHandler constructs a ScanHandler with the provided dependencies.
func NewScanHandler(registrar *service.ScanRegistrar, tickets *repository.TicketRepo, network *graph.Graph) *ScanHandler {
	if registrar == nil || tickets == nil || network == nil {
		panic("nil dependency passed to NewScanHandler")
	}
	return &ScanHandler{Registrar: registrar, Tickets: tickets, Network: network}
}

type scanReq struct {
	Location string `json:"location"`
}

// Register handles PUT /v1/scans/:token.  It records a scan of the raw
// token at the given location and returns the fraud verdict.  A suspicious
// verdict additionally publishes an alert event; the scan has already been
// committed at that point, so publish failures are ignored.
func (h *ScanHandler) Register(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token is required"})
	}
	var body scanReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location is required"})
	}

	now := float64(time.Now().UnixNano()) / 1e9

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Registrar.RegisterScan(ctx, token, body.Location, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if res.Suspicious && res.Prev.HasHistory() {
		deviceID, _ := c.Get("device_id").(string)
		// Best effort: the scan is committed, alerting must not fail it.
		_ = queue.PublishSuspiciousScan(ctx, queue.SuspiciousScanEvent{
			Token:           token,
			DeviceID:        deviceID,
			LastLocation:    *res.Prev.LastLocation,
			LastSeenAt:      *res.Prev.LastSeenAt,
			NewLocation:     body.Location,
			ScannedAt:       now,
			RequiredMinutes: h.Network.MinTravelTime(*res.Prev.LastLocation, body.Location),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    res.Message,
		"ticket":     token,
		"location":   body.Location,
		"suspicious": res.Suspicious,
	})
}

// Lookup handles GET /v1/tickets/:token.  It reports whether the token has
// been seen before and, if so, its last known location.  An unknown token
// is a negative result, not an error.
func (h *ScanHandler) Lookup(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	location, err := h.Tickets.Exists(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"exists": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var loc any
	if location != nil {
		loc = *location
	}
	return c.JSON(http.StatusOK, echo.Map{"exists": true, "location": loc})
}
