package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/repository"
)

// VerifyPayment handles the gateway callback. The signature decides
// everything: without a verified signature no order ever reaches PAID,
// and the response never discloses whether the order id exists.
func (s *Service) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) (*domain.Order, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: online payment is not configured", ErrGatewayUnavailable)
	}

	if !s.gateway.VerifySignature(gatewayOrderID, paymentID, signature) {
		s.recordSignatureFailure(ctx, gatewayOrderID)
		return nil, ErrInvalidSignature
	}

	order, err := s.orders.GetOrderByGatewayOrderID(ctx, gatewayOrderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		// signed callback for an order we do not hold; reject opaquely
		log.Printf("security: verified callback for unknown gateway order")
		return nil, ErrInvalidSignature
	}
	if err != nil {
		return nil, fmt.Errorf("load order for verification: %w", err)
	}

	if order.Status == domain.PaymentStatusPaid {
		// replayed valid callback: already paid, do not notify again
		return order, nil
	}

	if !domain.CanTransitionTo(order.Status, domain.PaymentStatusPaid) {
		return nil, IllegalTransitionError
	}

	if err := s.orders.MarkOrderPaid(ctx, order.ID, paymentID); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			// lost the race to a concurrent callback; treat as replay
			paid, errGet := s.orders.GetOrderByID(ctx, order.ID)
			if errGet == nil && paid.Status == domain.PaymentStatusPaid {
				return paid, nil
			}
			return nil, IllegalTransitionError
		}
		return nil, fmt.Errorf("mark order paid: %w", err)
	}

	order.Status = domain.PaymentStatusPaid
	order.PaymentID = paymentID

	s.notifier.OrderConfirmed(order)

	return order, nil
}

// recordSignatureFailure moves an awaiting order to PAYMENT_FAILED and logs
// the event. Terminal orders are left alone: a forged callback must never
// regress a verified payment.
func (s *Service) recordSignatureFailure(ctx context.Context, gatewayOrderID string) {
	log.Printf("security: payment callback signature mismatch")

	order, err := s.orders.GetOrderByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return
	}
	if !domain.CanTransitionTo(order.Status, domain.PaymentStatusPaymentFailed) {
		return
	}
	if err := s.orders.MarkOrderPaymentFailed(ctx, order.ID); err != nil &&
		!errors.Is(err, repository.ErrStatusConflict) {
		log.Printf("failed to mark order %s payment failed: %v", order.ID, err)
	}
}
