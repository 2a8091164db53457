package payment

type CreateIntentRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type IntentResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}
