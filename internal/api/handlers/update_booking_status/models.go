package update_booking_status

import (
	"strings"

	"github.com/blueclipse/myhustle-booking/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status          string  `json:"status"`
	ResponseMessage *string `json:"responseMessage,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID string) *models.UpdateStatusRequest {
	var message *string
	if r.ResponseMessage != nil {
		trimmed := strings.TrimSpace(*r.ResponseMessage)
		if trimmed != "" {
			message = &trimmed
		}
	}

	return &models.UpdateStatusRequest{
		UserID:          userID,
		Status:          strings.ToUpper(strings.TrimSpace(r.Status)),
		ResponseMessage: message,
	}
}
