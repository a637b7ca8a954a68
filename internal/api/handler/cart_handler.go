package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kedaipos/counter/internal/core/ports"
)

// CartHandler exposes cart mutation. Every response is the full state
// snapshot, so the UI renders from one shape regardless of which mutation
// produced it.
type CartHandler struct {
	checkout ports.CheckoutService
}

func NewCartHandler(checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{checkout: checkout}
}

type addItemRequest struct {
	MenuID string `json:"menuId" validate:"required"`
}

type setQuantityRequest struct {
	// Quantity may arrive negative from free-typed input; the flow
	// controller clamps it to zero.
	Quantity int `json:"quantity"`
}

// Add handles POST /pos/cart/items — one more unit of a menu item.
//
// @Summary      Add a menu item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Item to add"
// @Success      200   {object}  ports.StateSnapshot
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /pos/cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	snap, err := h.checkout.AddItem(c.Request().Context(), sessionID, req.MenuID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// SetQuantity handles PUT /pos/cart/items/:menuID.
//
// @Summary      Set a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        menuID  path      string              true  "Menu item id"
// @Param        body    body      setQuantityRequest  true  "New quantity"
// @Success      200     {object}  ports.StateSnapshot
// @Failure      409     {object}  errorResponse
// @Router       /pos/cart/items/{menuID} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	snap, err := h.checkout.SetQuantity(c.Request().Context(), sessionID, c.Param("menuID"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Remove handles DELETE /pos/cart/items/:menuID.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        menuID  path      string  true  "Menu item id"
// @Success      200     {object}  ports.StateSnapshot
// @Failure      409     {object}  errorResponse
// @Router       /pos/cart/items/{menuID} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	snap, err := h.checkout.RemoveItem(c.Request().Context(), sessionID, c.Param("menuID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Clear handles DELETE /pos/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  ports.StateSnapshot
// @Failure      409  {object}  errorResponse
// @Router       /pos/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	snap, err := h.checkout.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// State handles GET /pos/state — the current snapshot, no mutation.
//
// @Summary      Current order attempt state
// @Tags         cart
// @Produce      json
// @Success      200  {object}  ports.StateSnapshot
// @Failure      401  {object}  errorResponse
// @Router       /pos/state [get]
func (h *CartHandler) State(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	snap, err := h.checkout.State(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
