package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settlement-service/pkg/models"
)

func TestFindWithdrawal(t *testing.T) {
	list := []models.WithdrawalRequest{
		{ID: "wd-1", Status: models.WithdrawalPending},
		{ID: "wd-2", Status: models.WithdrawalProcessing},
	}

	found := FindWithdrawal(list, "wd-2")
	require.NotNil(t, found)
	assert.Equal(t, models.WithdrawalProcessing, found.Status)

	assert.Nil(t, FindWithdrawal(list, "wd-3"))
	assert.Nil(t, FindWithdrawal(nil, "wd-1"))
}

func TestFindWithdrawalTracksRefreshedSnapshot(t *testing.T) {
	sel := NewSelection()
	sel.Select("wd-1")

	// First snapshot still contains the selected item.
	snapshot := []models.WithdrawalRequest{{ID: "wd-1", Status: models.WithdrawalPending}}
	require.NotNil(t, FindWithdrawal(snapshot, sel.SelectedID()))

	// After a refresh the item may be gone; the selection must resolve
	// to nothing rather than to a stale copy.
	snapshot = []models.WithdrawalRequest{{ID: "wd-9", Status: models.WithdrawalPending}}
	assert.Nil(t, FindWithdrawal(snapshot, sel.SelectedID()))
}

func TestFindTicket(t *testing.T) {
	list := []models.SupportTicket{
		{ID: "tk-1", Status: models.TicketOpen},
	}

	found := FindTicket(list, "tk-1")
	require.NotNil(t, found)
	assert.Equal(t, models.TicketOpen, found.Status)

	assert.Nil(t, FindTicket(list, "tk-2"))
}
