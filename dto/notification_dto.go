package dto

type CreateNotificationDTO struct {
	UserID  string `json:"userId" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Link    string `json:"link"`
}
