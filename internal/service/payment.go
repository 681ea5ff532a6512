package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/razorpay"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

type PaymentService struct {
	orders   OrderStore
	gateway  PaymentGateway
	currency string
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewPaymentService(orders OrderStore, gateway PaymentGateway, currency string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		orders:   orders,
		gateway:  gateway,
		currency: currency,
		log:      log,
		now:      time.Now,
	}
}

// SetNotifier sets the notifier for purchase notifications
func (s *PaymentService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *PaymentService) ListPackages() []model.TokenPackageView {
	pkgs := model.TokenPackages()
	views := make([]model.TokenPackageView, 0, len(pkgs))
	for _, p := range pkgs {
		views = append(views, p.View())
	}
	return views
}

// CreateOrder opens a gateway order for a package and records it as created.
func (s *PaymentService) CreateOrder(ctx context.Context, userID uuid.UUID, packageID string) (*model.CreatedOrder, error) {
	pkg, ok := model.LookupTokenPackage(packageID)
	if !ok {
		return nil, ErrUnknownPackage
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   pkg.Amount,
		Currency: s.currency,
		Receipt:  fmt.Sprintf("tok_%s_%d", userID.String()[:8], s.now().UnixMilli()),
		Notes: map[string]string{
			"userId":    userID.String(),
			"packageId": pkg.ID,
			"tokens":    strconv.FormatInt(pkg.Tokens, 10),
		},
	})
	if err != nil {
		return nil, err
	}

	record := &model.PaymentOrder{
		UserID:          userID,
		ProviderOrderID: order.ID,
		PackageID:       pkg.ID,
		Amount:          pkg.Amount,
		Currency:        s.currency,
		Tokens:          pkg.Tokens,
		Status:          model.OrderStatusCreated,
	}
	if err := s.orders.CreatePaymentOrder(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.log.Info("payment order created", "user_id", userID, "order_id", order.ID, "package", pkg.ID)

	return &model.CreatedOrder{
		OrderID:  order.ID,
		Amount:   pkg.Amount,
		Currency: s.currency,
		KeyID:    s.gateway.KeyID(),
		Tokens:   pkg.Tokens,
	}, nil
}

// VerifyPayment checks the checkout signature and credits the order's
// tokens exactly once. Nothing is written unless the signature matches.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID uuid.UUID, orderID, paymentID, signature string) (*model.VerifiedPayment, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, invalid("Missing payment verification fields")
	}

	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		s.log.Warn("payment signature mismatch", "user_id", userID, "order_id", orderID)
		return nil, ErrInvalidSignature
	}

	order, err := s.orders.GetPaymentOrder(ctx, orderID, userID)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusPaid {
		return nil, ErrAlreadyProcessed
	}

	tokens, balance, err := s.complete(ctx, order, paymentID)
	if err != nil {
		return nil, err
	}

	return &model.VerifiedPayment{
		Success:     true,
		TokensAdded: tokens,
		NewBalance:  balance,
	}, nil
}

// complete runs the created -> paid transition together with the credit.
func (s *PaymentService) complete(ctx context.Context, order *model.PaymentOrder, paymentID string) (int64, int64, error) {
	description := fmt.Sprintf("Purchased %d tokens", order.Tokens)

	paid, balance, err := s.orders.CompletePaymentOrder(ctx, order.ProviderOrderID, order.UserID, paymentID, description)
	switch {
	case errors.Is(err, repository.ErrPaymentAlreadyPaid):
		return 0, 0, ErrAlreadyProcessed
	case errors.Is(err, repository.ErrPaymentNotFound):
		return 0, 0, ErrOrderNotFound
	case err != nil:
		return 0, 0, err
	}

	s.log.Info("payment completed",
		"user_id", paid.UserID,
		"order_id", paid.ProviderOrderID,
		"payment_id", paymentID,
		"tokens", paid.Tokens,
		"balance", balance,
	)

	if s.notifier != nil {
		if err := s.notifier.SendPurchase(paid, balance); err != nil {
			s.log.Warn("failed to send purchase notification", "order_id", paid.ProviderOrderID, "err", err)
		}
	}

	return paid.Tokens, balance, nil
}
