package dto

// CreatePaymentOrderRequest asks the payment port for a new order
type CreatePaymentOrderRequest struct {
	Amount   int64 `json:"amount" binding:"required,min=1"`
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// PaymentOrderResponse mirrors the order created at the gateway
type PaymentOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// VerifyPaymentRequest carries the gateway callback values to verify
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// PaymentVerificationResponse reports the signature check outcome
type PaymentVerificationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
