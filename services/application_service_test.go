package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeiyuTech/aet-backend/entity"
)

func TestSubmitCreatesApplication(t *testing.T) {
	db := setupDB(t)
	svc := newAppService(t, db)

	res, err := svc.Submit(validSubmission())
	require.NoError(t, err)
	require.NotEmpty(t, res.Code)
	assert.Equal(t, entity.StatusSubmitted, res.Status)
	assert.Equal(t, entity.PaymentPending, res.PaymentStatus)
	// document eval 7day (10000) + 2x extra copy (3000) + first class (700)
	assert.Equal(t, int64(16700), res.TotalCents)

	assert.Equal(t, int64(1), countApplications(t, db))

	app, err := svc.GetByCode(res.Code)
	require.NoError(t, err)
	assert.Equal(t, "Mei", app.FirstName)
	assert.Len(t, app.ServiceSelections, 1)
	assert.Len(t, app.AdditionalServices, 1)
	assert.Nil(t, app.PaymentID)
	assert.Nil(t, app.PaidAt)
	assert.False(t, app.SubmittedAt.IsZero())

	// confirmation email queued through the outbox
	assert.Equal(t, int64(1), countOutbox(t, db))
}

func TestSubmitMissingRequiredFields(t *testing.T) {
	db := setupDB(t)
	svc := newAppService(t, db)

	cases := []struct {
		name   string
		mutate func(*SubmitApplicationReq)
		field  string
	}{
		{"missing first name", func(r *SubmitApplicationReq) { r.FirstName = "" }, "firstName"},
		{"missing last name", func(r *SubmitApplicationReq) { r.LastName = " " }, "lastName"},
		{"missing email", func(r *SubmitApplicationReq) { r.Email = "" }, "email"},
		{"bad email", func(r *SubmitApplicationReq) { r.Email = "not-an-address" }, "email"},
		{"unknown office", func(r *SubmitApplicationReq) { r.Office = "chicago" }, "office"},
		{"unknown delivery", func(r *SubmitApplicationReq) { r.DeliveryMethod = "carrier_pigeon" }, "deliveryMethod"},
		{"unknown purpose", func(r *SubmitApplicationReq) { r.Purpose = "fun" }, "purpose"},
		{"no services", func(r *SubmitApplicationReq) { r.ServiceSelections = nil }, "serviceSelections"},
		{"unknown service type", func(r *SubmitApplicationReq) {
			r.ServiceSelections[0].ServiceType = "astrology"
		}, "serviceSelections"},
		{"unknown speed tier", func(r *SubmitApplicationReq) {
			r.ServiceSelections[0].SpeedTier = "instant"
		}, "serviceSelections"},
		{"zero addon quantity", func(r *SubmitApplicationReq) {
			r.AdditionalServices[0].Quantity = 0
		}, "additionalServices"},
		{"other purpose without text", func(r *SubmitApplicationReq) {
			r.Purpose = PurposeOther
			r.PurposeOther = ""
		}, "purposeOther"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSubmission()
			tc.mutate(req)

			res, err := svc.Submit(req)
			require.Error(t, err)
			assert.Nil(t, res)

			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, fieldErrs, tc.field)
		})
	}

	// no partial records, no emails
	assert.Equal(t, int64(0), countApplications(t, db))
	assert.Equal(t, int64(0), countOutbox(t, db))
}

func TestListByStatusDefaultsToSubmitted(t *testing.T) {
	db := setupDB(t)
	svc := newAppService(t, db)

	_, err := svc.Submit(validSubmission())
	require.NoError(t, err)

	apps, err := svc.ListByStatus("")
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	apps, err = svc.ListByStatus(entity.StatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, apps)
}
