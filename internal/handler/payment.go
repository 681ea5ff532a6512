package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Vibhav-y/GitTool/internal/middleware"
)

type CreateOrderRequest struct {
	PackageID string `json:"packageId"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (h *Handler) GetPackages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"packages": h.paymentSvc.ListPackages(),
	})
}

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	order, err := h.paymentSvc.CreateOrder(c.UserContext(), middleware.GetUserID(c), req.PackageID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(order)
}

func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	result, err := h.paymentSvc.VerifyPayment(c.UserContext(), middleware.GetUserID(c), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.tokenSvc.GetBalance(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"balance": balance})
}

func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	transactions, err := h.tokenSvc.ListTransactions(c.UserContext(), middleware.GetUserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"transactions": transactions})
}
