package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kedaipos/counter/internal/core/ports"
)

// CheckoutHandler drives order creation and payment settlement.
type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type placeOrderRequest struct {
	Mode         string `json:"mode" validate:"required,oneof=DINE_IN TAKEAWAY"`
	TableNumber  string `json:"tableNumber"`
	CustomerName string `json:"customerName"`
}

type confirmPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=CASH QRIS TRANSFER"`
	// CashReceived is decoded as a decimal string or number; only read for
	// cash payments.
	CashReceived decimal.Decimal `json:"cashReceived"`
}

type paymentResponse struct {
	OrderCode string              `json:"orderCode"`
	Method    string              `json:"paymentMethod"`
	Change    decimal.Decimal     `json:"change"`
	State     ports.StateSnapshot `json:"state"`
}

// PlaceOrder handles POST /pos/checkout/order.
//
// @Summary      Create the order on the backend
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Fulfillment details"
// @Success      200   {object}  ports.StateSnapshot
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /pos/checkout/order [post]
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	snap, err := h.checkout.PlaceOrder(c.Request().Context(), sessionID, ports.PlaceOrderInput{
		Mode:         req.Mode,
		TableNumber:  req.TableNumber,
		CustomerName: req.CustomerName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// ConfirmPayment handles POST /pos/checkout/payment.
//
// @Summary      Confirm payment for the placed order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      confirmPaymentRequest  true  "Payment details"
// @Success      200   {object}  paymentResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /pos/checkout/payment [post]
func (h *CheckoutHandler) ConfirmPayment(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	outcome, err := h.checkout.ConfirmPayment(c.Request().Context(), sessionID, ports.ConfirmPaymentInput{
		Method:   req.PaymentMethod,
		Tendered: req.CashReceived,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paymentResponse{
		OrderCode: outcome.OrderCode,
		Method:    string(outcome.Method),
		Change:    outcome.Change,
		State:     outcome.Snapshot,
	})
}

// CancelPayment handles DELETE /pos/checkout/payment.
//
// @Summary      Abandon the placed order and unfreeze the cart
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  ports.StateSnapshot
// @Failure      409  {object}  errorResponse
// @Router       /pos/checkout/payment [delete]
func (h *CheckoutHandler) CancelPayment(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	snap, err := h.checkout.CancelPayment(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
