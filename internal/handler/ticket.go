package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-validation/internal/graph"
	"github.com/iliyamo/train-ticket-validation/internal/ticket"
)

// TicketHandler serves ticket purchase, signature verification and the
// public endpoints for the route table and verification key.
type TicketHandler struct {
	Issuer  *ticket.Issuer
	Network *graph.Graph
	Keys    *ticket.KeyPair
}

// NewTicketHandler constructs a TicketHandler with the provided dependencies.
func NewTicketHandler(issuer *ticket.Issuer, network *graph.Graph, keys *ticket.KeyPair) *TicketHandler {
	if issuer == nil || network == nil || keys == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Issuer: issuer, Network: network, Keys: keys}
}

type buyReq struct {
	FromStation       string `json:"from_station"`
	ToStation         string `json:"to_station"`
	FromDatetime      string `json:"from_datetime"`
	ToDatetime        string `json:"to_datetime"`
	TicketType        string `json:"ticket_type"`
	ValidatingMethode string `json:"validating_methode"`
	UserProvidedID    string `json:"user_provided_id"`
}

// Buy handles PUT /v1/tickets.  Validation failures return 400 with the
// specific reason; a valid request returns the signed ticket.
func (h *TicketHandler) Buy(c echo.Context) error {
	var req buyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FromStation == "" || req.ToStation == "" || req.UserProvidedID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from_station, to_station and user_provided_id are required"})
	}
	from, err := time.Parse(time.RFC3339, req.FromDatetime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from_datetime, expected RFC3339"})
	}
	to, err := time.Parse(time.RFC3339, req.ToDatetime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to_datetime, expected RFC3339"})
	}

	signed, err := h.Issuer.Issue(ticket.Request{
		FromStation:       req.FromStation,
		ToStation:         req.ToStation,
		FromDatetime:      from,
		ToDatetime:        to,
		TicketType:        req.TicketType,
		ValidatingMethode: req.ValidatingMethode,
		UserProvidedID:    req.UserProvidedID,
	}, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrUnknownOrigin),
			errors.Is(err, ticket.ErrNotDirectlyConnected),
			errors.Is(err, ticket.ErrWindowInPast),
			errors.Is(err, ticket.ErrInvertedWindow):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ticket signing failed"})
	}
	return c.JSON(http.StatusOK, signed)
}

type verifyReq struct {
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`
}

// Verify handles POST /v1/tickets/verify.  The outcome is always a boolean
// verdict; a malformed signature simply verifies as false.
func (h *TicketHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Payload == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payload is required"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": h.Keys.Verify(req.Payload, req.Signature)})
}

// Routes handles GET /v1/routes.  It returns every station mapped to its
// directly connected neighbours.
func (h *TicketHandler) Routes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Network.Routes())
}

// PublicKey handles GET /v1/public-key.  Clients use the returned PEM text
// to verify tickets offline.
func (h *TicketHandler) PublicKey(c echo.Context) error {
	pemText, err := h.Keys.PublicPEM()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "public key unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"public_key": pemText})
}
