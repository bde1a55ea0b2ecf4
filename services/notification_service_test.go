package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/repository"
)

type fakeSender struct {
	sent []gateways.EmailMessage
	fail bool
}

func (f *fakeSender) Send(_ context.Context, msg gateways.EmailMessage) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestDispatchSendsPendingRows(t *testing.T) {
	db := setupDB(t)
	sender := &fakeSender{}
	n := NewNotificationService(repository.NewOutboxRepository(db), sender, zap.NewNop())

	app := &entity.Application{Code: "abc", FirstName: "Mei", LastName: "Chen", Email: "mei@example.com"}
	require.NoError(t, n.QueueSubmissionConfirmation(app))
	require.NoError(t, n.QueuePaymentReceipt(app))

	sent, err := n.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "mei@example.com", sender.sent[0].To)

	var remaining int64
	db.Model(&entity.EmailOutbox{}).Where("status = ?", entity.OutboxPending).Count(&remaining)
	assert.Zero(t, remaining)

	// nothing left on the next pass
	sent, err = n.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestDispatchRetriesUntilAttemptCap(t *testing.T) {
	db := setupDB(t)
	sender := &fakeSender{fail: true}
	n := NewNotificationService(repository.NewOutboxRepository(db), sender, zap.NewNop())
	n.MaxAttempts = 2

	app := &entity.Application{Code: "abc", Email: "mei@example.com"}
	require.NoError(t, n.QueueStatusUpdate(app))

	for i := 0; i < 3; i++ {
		sent, err := n.DispatchOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, sent)
	}

	var row entity.EmailOutbox
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, entity.OutboxFailed, row.Status)
	assert.Equal(t, 2, row.Attempts)
	assert.Contains(t, row.LastError, "smtp down")

	// a recovered sender delivers fresh rows, not the dead one
	sender.fail = false
	require.NoError(t, n.QueueStatusUpdate(app))
	sent, err := n.DispatchOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}
