package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-validation/internal/config"
	"github.com/iliyamo/train-ticket-validation/internal/repository"
	"github.com/iliyamo/train-ticket-validation/internal/utils"
)

// DeviceAuthHandler bundles dependencies for the scanner-device auth
// endpoints.
type DeviceAuthHandler struct {
	Cfg     config.Config
	Devices *repository.DeviceRepo
}

// NewDeviceAuthHandler constructs a DeviceAuthHandler.
func NewDeviceAuthHandler(cfg config.Config, devices *repository.DeviceRepo) *DeviceAuthHandler {
	return &DeviceAuthHandler{Cfg: cfg, Devices: devices}
}

// ----- DTOs -----

type deviceReq struct {
	DeviceID string `json:"device_id"`
	Secret   string `json:"secret"`
}

type tokenResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Token exchanges a device ID and secret for a short-lived access token.
func (h *DeviceAuthHandler) Token(c echo.Context) error {
	var req deviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.DeviceID == "" || req.Secret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_id/secret required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dev, err := h.Devices.GetByDeviceID(ctx, req.DeviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !utils.VerifySecret(dev.SecretHash, req.Secret) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewDeviceToken(h.Cfg.JWTSecret, dev.DeviceID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Token: access.Token, Expires: access.Exp})
}

// Register provisions a new scanner device.  The request must carry the
// shared provisioning key in the X-Provision-Key header; fleet onboarding
// is an operator action, not a public signup.
func (h *DeviceAuthHandler) Register(c echo.Context) error {
	if c.Request().Header.Get("X-Provision-Key") != h.Cfg.ProvisionKey {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid provision key"})
	}
	var req deviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.DeviceID == "" || req.Secret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_id/secret required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Devices.Create(ctx, req.DeviceID, req.Secret, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "device already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create device failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "device_id": req.DeviceID})
}
