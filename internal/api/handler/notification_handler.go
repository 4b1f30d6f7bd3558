package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/api/metrics"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/queue"
)

// DeliveryQueue accepts notifications for asynchronous delivery.
type DeliveryQueue interface {
	Enqueue(d queue.Delivery) error
	Pending() int
}

type NotificationHandler struct {
	service ports.NotificationService
	queue   DeliveryQueue
}

// NewNotificationHandler wires the handler. With a nil queue, Send delivers
// inline.
func NewNotificationHandler(service ports.NotificationService, q DeliveryQueue) *NotificationHandler {
	return &NotificationHandler{service: service, queue: q}
}

// List returns every notification.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  notificationResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]notificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationResponse(n))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one notification.
//
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  notificationResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id} [get]
func (h *NotificationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationResponse(n))
}

// Create records a notification for an invoice.
//
// @Summary      Create a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      notificationRequest  true  "Notification"
// @Success      201   {object}  notificationResponse
// @Failure      400   {object}  map[string]any
// @Router       /v1/notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	n, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toNotificationResponse(n))
}

// Update replaces a notification. The send timestamp is kept.
//
// @Summary      Update a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Notification ID"
// @Param        body  body      notificationRequest  true  "Notification"
// @Success      200   {object}  notificationResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /v1/notifications/{id} [put]
func (h *NotificationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	n, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNotificationResponse(n))
}

// Delete removes a notification.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Security     BearerAuth
// @Param        id   path  int  true  "Notification ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Send queues a notification for delivery. A notification that was already
// sent is left alone.
//
// @Summary      Deliver a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  messageResponse
// @Success      202  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /v1/notifications/{id}/send [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	n, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.Sent {
		return c.JSON(http.StatusOK, messageResponse{Message: "notification already sent"})
	}

	if h.queue == nil {
		if err := h.service.Deliver(ctx, id); err != nil {
			metrics.NotificationDeliveriesTotal.WithLabelValues("failed").Inc()
			return err
		}
		metrics.NotificationDeliveriesTotal.WithLabelValues("sent").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "notification sent"})
	}

	err = h.queue.Enqueue(queue.Delivery{NotificationID: n.ID, InvoiceID: n.InvoiceID})
	metrics.DeliveryQueueDepth.Set(float64(h.queue.Pending()))
	if errors.Is(err, queue.ErrQueueFull) {
		metrics.NotificationDeliveriesTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusServiceUnavailable, "delivery queue full, retry later")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "notification queued"})
}

func (h *NotificationHandler) bind(c echo.Context) (notificationRequest, error) {
	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
