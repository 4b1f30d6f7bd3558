package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/api/metrics"
	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List returns invoices, optionally filtered by type and status.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Receivable or Payable"
// @Param        status  query     string  false  "Paid, Pending or Overdue"
// @Success      200     {array}   invoiceResponse
// @Failure      400     {object}  map[string]any
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	filter := ports.InvoiceFilter{
		Type:   domain.InvoiceType(c.QueryParam("type")),
		Status: domain.InvoiceStatus(c.QueryParam("status")),
	}
	invoices, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one invoice.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  invoiceResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	inv, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// Create adds an invoice. A Pending invoice already past its due date is
// stored as Overdue.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      invoiceRequest  true  "Invoice"
// @Success      201   {object}  invoiceResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	inv, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	metrics.InvoicesWrittenTotal.WithLabelValues("create", string(inv.Type)).Inc()
	return c.JSON(http.StatusCreated, toInvoiceResponse(inv))
}

// Update replaces an invoice.
//
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Invoice ID"
// @Param        body  body      invoiceRequest  true  "Invoice"
// @Success      200   {object}  invoiceResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	inv, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	metrics.InvoicesWrittenTotal.WithLabelValues("update", string(inv.Type)).Inc()
	return c.JSON(http.StatusOK, toInvoiceResponse(inv))
}

// Delete removes an invoice and its notifications.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  int  true  "Invoice ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.InvoicesWrittenTotal.WithLabelValues("delete", "").Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *InvoiceHandler) bind(c echo.Context) (invoiceRequest, error) {
	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
