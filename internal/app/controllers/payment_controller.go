package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/services"
	"github.com/eduverse/eduverse/internal/middleware"
)

// PaymentController handles the mocked payment flow
type PaymentController struct {
	paymentService services.IPaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.IPaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// CreateOrder creates a payment order at the gateway
// @Summary Create a payment order
// @Description Opens a payment order for a course purchase at the configured gateway
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentOrderRequest true "Order amount and course"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentOrderResponse} "Order created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Payment gateway not configured"
// @Router /payments/orders [post]
func (c *PaymentController) CreateOrder(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.CreatePaymentOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	order, err := c.paymentService.CreateOrder(ctx.Request.Context(), user, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("courseId", req.CourseID).Msg("Payment order creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: order})
}

// VerifyPayment verifies a gateway callback signature
// @Summary Verify a payment
// @Description Checks the gateway signature over the order and payment identifiers
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyPaymentRequest true "Order, payment and signature"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentVerificationResponse} "Signature valid"
// @Failure 400 {object} dto.ErrorResponse "Invalid signature"
// @Failure 503 {object} dto.ErrorResponse "Payment gateway not configured"
// @Router /payments/verify [post]
func (c *PaymentController) VerifyPayment(ctx *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.paymentService.VerifyPayment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result})
}
