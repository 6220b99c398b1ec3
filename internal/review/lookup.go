package review

import "github.com/settlement-service/pkg/models"

// The selected item is always resolved against the current snapshot.
// A nil return means the selection points at something the last refresh
// no longer contains.

func FindWithdrawal(list []models.WithdrawalRequest, id string) *models.WithdrawalRequest {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func FindTicket(list []models.SupportTicket, id string) *models.SupportTicket {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
