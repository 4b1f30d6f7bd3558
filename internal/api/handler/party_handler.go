package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// PartyHandler serves /v1/clients and /v1/suppliers; the kind is fixed by the
// service it wraps.
type PartyHandler struct {
	service ports.PartyService
}

func NewPartyHandler(service ports.PartyService) *PartyHandler {
	return &PartyHandler{service: service}
}

// List returns every party of the handler's kind.
//
// @Summary      List clients or suppliers
// @Tags         parties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Party
// @Router       /v1/clients [get]
// @Router       /v1/suppliers [get]
func (h *PartyHandler) List(c echo.Context) error {
	parties, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, parties)
}

// Get returns one party.
//
// @Summary      Get a client or supplier
// @Tags         parties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID"
// @Success      200  {object}  domain.Party
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id} [get]
// @Router       /v1/suppliers/{id} [get]
func (h *PartyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create adds a party.
//
// @Summary      Create a client or supplier
// @Tags         parties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      partyRequest  true  "Client or supplier"
// @Success      201   {object}  domain.Party
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]string
// @Router       /v1/clients [post]
// @Router       /v1/suppliers [post]
func (h *PartyHandler) Create(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	p, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update replaces a party.
//
// @Summary      Update a client or supplier
// @Tags         parties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "ID"
// @Param        body  body      partyRequest  true  "Client or supplier"
// @Success      200   {object}  domain.Party
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /v1/clients/{id} [put]
// @Router       /v1/suppliers/{id} [put]
func (h *PartyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req, err := h.bind(c)
	if err != nil {
		return err
	}
	p, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a party together with its invoices.
//
// @Summary      Delete a client or supplier
// @Tags         parties
// @Security     BearerAuth
// @Param        id   path  int  true  "ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id} [delete]
// @Router       /v1/suppliers/{id} [delete]
func (h *PartyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PartyHandler) bind(c echo.Context) (partyRequest, error) {
	var req partyRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
