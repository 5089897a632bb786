package api

import (
	"context" // Request and compensation contexts
	"errors"  // Error values
	"fmt"     // Error wrapping
	"time"    // Timestamps

	"pc_house/internal/domain"  // Importing domain models
	"pc_house/internal/metrics" // Payment outcome counter
	"pc_house/internal/store"   // Document store

	"github.com/sirupsen/logrus"       // Logging library
	"go.mongodb.org/mongo-driver/bson" // Update documents
)

var (
	// errOrderGone means the order disappeared between the ownership check and the update
	errOrderGone = errors.New("order no longer exists")
	// errOrderPaid means a concurrent confirmation flagged the order first
	errOrderPaid = errors.New("order already paid")
)

// confirmOrderPayment writes the payment and then flags the order as paid.
//
// The two writes are independent, so the payment insert is undone when the
// order update fails or matches nothing. The update only matches an unpaid
// order, so of two racing confirmations exactly one keeps its payment. A failed undo leaves a payment with
// no paid order; that case is logged with both identifiers for manual
// reconciliation.
func confirmOrderPayment(ctx context.Context, st store.Store, order *domain.Order, req ConfirmPaymentRequest, requestID string) (store.UpdateResult, error) {
	payment := domain.Payment{
		OrderID:       order.ID,          // Paid order
		TransactionID: req.TransactionID, // Gateway transaction
		Amount:        req.Amount,        // Charged amount
	}
	ins, err := st.InsertOne(ctx, store.Payments, payment)
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("record payment: %w", err)
	}

	set := bson.M{"paid": true, "transactionId": req.TransactionID}
	res, err := st.UpdateOne(ctx, store.Orders, bson.M{"_id": order.ID, "paid": false}, set, false)
	if err == nil && res.MatchedCount == 0 {
		err = unmatchedOrderError(ctx, st, order)
	}
	fields := logrus.Fields{
		"request_id":     requestID,
		"order_id":       order.ID.Hex(),
		"payment_id":     ins.InsertedID,
		"transaction_id": req.TransactionID,
		"amount":         req.Amount,
	}
	if err == nil {
		metrics.PaymentConfirmations.WithLabelValues(metrics.PaymentConfirmed).Inc()
		fields["timestamp"] = time.Now().Format(time.RFC3339)
		logrus.WithFields(fields).Info("Order paid") // Log successful confirmation
		return res, nil
	}

	// Undo the payment; the request may already be cancelled
	undoCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, undoErr := st.DeleteOne(undoCtx, store.Payments, bson.M{"_id": ins.InsertedID}); undoErr != nil {
		metrics.PaymentConfirmations.WithLabelValues(metrics.PaymentFailed).Inc()
		fields["error"] = err.Error()
		fields["undo_error"] = undoErr.Error()
		logrus.WithFields(fields).Error("Payment recorded but order not marked paid; reconcile manually")
		return store.UpdateResult{}, fmt.Errorf("mark order paid: %w (payment not rolled back: %v)", err, undoErr)
	}
	metrics.PaymentConfirmations.WithLabelValues(metrics.PaymentCompensated).Inc()
	fields["error"] = err.Error()
	logrus.WithFields(fields).Warn("Order update failed, payment rolled back")
	return store.UpdateResult{}, fmt.Errorf("mark order paid: %w", err)
}

// unmatchedOrderError tells a deleted order apart from one paid concurrently
func unmatchedOrderError(ctx context.Context, st store.Store, order *domain.Order) error {
	var current domain.Order
	err := st.FindOne(ctx, store.Orders, store.ByID(order.ID), &current)
	if errors.Is(err, store.ErrNotFound) {
		return errOrderGone
	}
	if err != nil {
		return fmt.Errorf("reload order: %w", err)
	}
	return errOrderPaid
}
