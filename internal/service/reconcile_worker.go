package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Vibhav-y/GitTool/internal/config"
	"github.com/Vibhav-y/GitTool/internal/model"
	"github.com/Vibhav-y/GitTool/internal/razorpay"
)

// ReconcileWorker completes orders whose payment was captured by the gateway
// but never verified by the client, e.g. because the browser was closed
// before the checkout callback fired.
type ReconcileWorker struct {
	orders     OrderStore
	gateway    PaymentGateway
	paymentSvc *PaymentService
	cfg        config.WorkerConfig
	log        *slog.Logger
}

func NewReconcileWorker(
	orders OrderStore,
	gateway PaymentGateway,
	paymentSvc *PaymentService,
	cfg config.WorkerConfig,
	log *slog.Logger,
) *ReconcileWorker {
	return &ReconcileWorker{
		orders:     orders,
		gateway:    gateway,
		paymentSvc: paymentSvc,
		cfg:        cfg,
		log:        log.With("component", "reconcile_worker"),
	}
}

// Start begins the background worker
func (w *ReconcileWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.ReconcileInterval)
	defer ticker.Stop()

	w.log.Info("started", "interval", w.cfg.ReconcileInterval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopped")
			return
		case <-ticker.C:
			w.processStaleOrders(ctx)
		}
	}
}

func (w *ReconcileWorker) processStaleOrders(ctx context.Context) {
	orders, err := w.orders.GetStaleCreatedOrders(ctx, w.cfg.ReconcileGrace, w.cfg.ReconcileMaxAge)
	if err != nil {
		w.log.Error("failed to load stale orders", "err", err)
		return
	}

	if len(orders) == 0 {
		return
	}

	w.log.Debug("checking stale orders", "count", len(orders))

	for i := range orders {
		if ctx.Err() != nil {
			return
		}
		w.processOrder(ctx, &orders[i])
	}
}

func (w *ReconcileWorker) processOrder(ctx context.Context, order *model.PaymentOrder) {
	payments, err := w.gateway.FetchOrderPayments(ctx, order.ProviderOrderID)
	if err != nil {
		w.log.Warn("failed to fetch order payments", "order_id", order.ProviderOrderID, "err", err)
		return
	}

	var captured *razorpay.Payment
	for i := range payments {
		if payments[i].Status == razorpay.PaymentStatusCaptured {
			captured = &payments[i]
			break
		}
	}
	if captured == nil {
		return
	}

	_, _, err = w.paymentSvc.complete(ctx, order, captured.ID)
	if errors.Is(err, ErrAlreadyProcessed) {
		return
	}
	if err != nil {
		w.log.Error("failed to complete order", "order_id", order.ProviderOrderID, "err", err)
		return
	}

	w.log.Info("order reconciled", "order_id", order.ProviderOrderID, "payment_id", captured.ID)
}
