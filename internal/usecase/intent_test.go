package usecase_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-billing/internal/domain"
	"room-billing/internal/usecase"
)

func TestBillingView_Dispatch(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	f.gateway.EXPECT().FetchOccupants(gomock.Any()).Return(occupants, domain.ShapeRooms, nil)
	f.gateway.EXPECT().FetchBalances(gomock.Any()).Return(balances, nil)

	out, err := f.view.Dispatch(ctx, usecase.Reload{})
	require.NoError(t, err)
	assert.Len(t, out.Snapshot.Rows, 3)
	assert.Nil(t, out.Receipt)

	out, err = f.view.Dispatch(ctx, usecase.SetFilter{Filter: domain.FilterUnpaid})
	require.NoError(t, err)
	assert.Equal(t, domain.FilterUnpaid, out.Snapshot.Filter)
	assert.Len(t, out.Snapshot.Rows, 1)

	// A rejected payment still reports the current view.
	out, err = f.view.Dispatch(ctx, usecase.SubmitPayment{Request: domain.PaymentRequest{PatientID: "1", Amount: -100}})
	var vf *domain.ValidationFailure
	assert.ErrorAs(t, err, &vf)
	assert.Nil(t, out.Receipt)
	assert.Equal(t, domain.FilterUnpaid, out.Snapshot.Filter)
	assert.Len(t, out.Snapshot.Rows, 1)
}
