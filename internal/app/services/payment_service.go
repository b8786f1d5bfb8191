package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/repositories"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/logger"
	"github.com/eduverse/eduverse/internal/pkg/payment"
)

const orderCurrency = "INR"

// paymentService implements IPaymentService
type paymentService struct {
	courseRepo repositories.ICourseRepository
	gateway    payment.Gateway
}

// NewPaymentService creates a new payment service
func NewPaymentService(courseRepo repositories.ICourseRepository, gateway payment.Gateway) IPaymentService {
	return &paymentService{
		courseRepo: courseRepo,
		gateway:    gateway,
	}
}

// CreateOrder opens a payment order at the gateway for a course purchase
func (s *paymentService) CreateOrder(ctx context.Context, actor *models.User, req *dto.CreatePaymentOrderRequest) (*dto.PaymentOrderResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("order_%d_%d", course.ID, time.Now().Unix())
	order, err := s.gateway.CreateOrder(ctx, req.Amount, orderCurrency, receipt)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			return nil, apperrors.NewServiceUnavailableError("payment gateway is not configured")
		}
		if errors.Is(err, payment.ErrOrderCreationError) {
			return nil, apperrors.NewServiceUnavailableError("payment gateway rejected the order")
		}
		return nil, err
	}

	logger.Info().
		Str("orderId", order.ID).
		Int64("courseId", course.ID).
		Int64("userId", actor.ID).
		Msg("Payment order created")

	return &dto.PaymentOrderResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   order.Status,
	}, nil
}

// VerifyPayment checks the gateway callback signature. Verification is
// pure; no enrollment or entitlement is written here.
func (s *paymentService) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.PaymentVerificationResponse, error) {
	err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			return nil, apperrors.NewServiceUnavailableError("payment gateway is not configured")
		}
		if errors.Is(err, payment.ErrSignatureMismatch) {
			logger.Warn().Str("orderId", req.OrderID).Msg("Payment signature mismatch")
			return nil, apperrors.ErrInvalidSignature
		}
		return nil, err
	}

	return &dto.PaymentVerificationResponse{
		Success: true,
		Message: "payment verified successfully",
	}, nil
}
