package support

type CreateTicketRequest struct {
	Subject   string `json:"subject" binding:"required,min=3,max=200"`
	Body      string `json:"body" binding:"required,max=5000"`
	BookingID *int64 `json:"booking_id"`
	Priority  string `json:"priority" binding:"omitempty,oneof=low normal high"`
}

type PostMessageRequest struct {
	Body     string `json:"body" binding:"required,max=5000"`
	Internal bool   `json:"internal"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open in_progress waiting_customer resolved closed"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=open in_progress waiting_customer resolved closed"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
