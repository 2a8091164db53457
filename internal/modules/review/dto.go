package review

type CreateReviewRequest struct {
	BookingID   int64  `json:"booking_id" binding:"required"`
	Rating      int    `json:"rating"`
	Cleanliness int    `json:"cleanliness"`
	Service     int    `json:"service"`
	Value       int    `json:"value"`
	Comment     string `json:"comment" binding:"omitempty,max=2000"`
}

type RespondRequest struct {
	Response string `json:"response" binding:"required,max=2000"`
}

type ListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
