package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-billing/internal/domain"
	"room-billing/internal/usecase"
)

func TestBillingView_SubmitPayment(t *testing.T) {
	paidAt := time.Date(2025, 3, 10, 4, 45, 0, 0, time.UTC)
	request := domain.PaymentRequest{
		PatientID:   "1",
		PatientName: "Ali Valiev",
		Amount:      250,
		Status:      "paid",
		Method:      "card",
		Notes:       "room 101",
	}
	expectedReceipt := func(processedBy string) domain.Receipt {
		return domain.Receipt{
			PaymentID:   "77",
			PatientID:   "1",
			PatientName: "Ali Valiev",
			Amount:      250,
			Status:      "paid",
			Method:      "card",
			Notes:       "room 101",
			Date:        paidAt,
			ProcessedBy: processedBy,
		}
	}

	tests := []struct {
		name        string
		request     domain.PaymentRequest
		setup       func(f viewFixture)
		want        *domain.Receipt
		wantErr     bool
		wantInvalid bool
	}{
		{
			name:        "negative amount never reaches the backend",
			request:     domain.PaymentRequest{PatientID: "1", Amount: -100},
			setup:       func(f viewFixture) {},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:        "missing patient never reaches the backend",
			request:     domain.PaymentRequest{Amount: 100},
			setup:       func(f viewFixture) {},
			wantErr:     true,
			wantInvalid: true,
		},
		{
			name:    "created payment is printed and the view reloaded",
			request: request,
			setup: func(f viewFixture) {
				receipt := expectedReceipt("Aziza Karimova")
				gomock.InOrder(
					f.gateway.EXPECT().CreatePayment(gomock.Any(), request).
						Return(&domain.PaymentRecord{ID: "77", CreatedAt: paidAt}, nil),
					f.gateway.EXPECT().FetchUserProfile(gomock.Any()).
						Return(&domain.UserProfile{FullName: "Aziza Karimova"}, nil),
					f.printer.EXPECT().Print(gomock.Any(), receipt).
						Return("http://clinic/receipt.html?payment_id=77", nil),
					f.gateway.EXPECT().FetchOccupants(gomock.Any()).Return(occupants, domain.ShapeRooms, nil),
					f.gateway.EXPECT().FetchBalances(gomock.Any()).Return(balances, nil),
				)
			},
			want: func() *domain.Receipt {
				r := expectedReceipt("Aziza Karimova")
				r.URL = "http://clinic/receipt.html?payment_id=77"
				return &r
			}(),
		},
		{
			name:    "profile failure falls back to System and printer failure is tolerated",
			request: request,
			setup: func(f viewFixture) {
				f.gateway.EXPECT().CreatePayment(gomock.Any(), request).
					Return(&domain.PaymentRecord{ID: "77", CreatedAt: paidAt}, nil)
				f.gateway.EXPECT().FetchUserProfile(gomock.Any()).Return(nil, errors.New("401"))
				f.printer.EXPECT().Print(gomock.Any(), expectedReceipt(usecase.DefaultProcessedBy)).
					Return("", errors.New("popup blocked"))
				f.gateway.EXPECT().FetchOccupants(gomock.Any()).Return(occupants, domain.ShapeRooms, nil)
				f.gateway.EXPECT().FetchBalances(gomock.Any()).Return(balances, nil)
			},
			want: func() *domain.Receipt {
				r := expectedReceipt(usecase.DefaultProcessedBy)
				return &r
			}(),
		},
		{
			name:    "failed reload after payment still returns the receipt",
			request: request,
			setup: func(f viewFixture) {
				f.gateway.EXPECT().CreatePayment(gomock.Any(), request).
					Return(&domain.PaymentRecord{ID: "77", CreatedAt: paidAt}, nil)
				f.gateway.EXPECT().FetchUserProfile(gomock.Any()).Return(&domain.UserProfile{Email: "desk@clinic.uz"}, nil)
				f.printer.EXPECT().Print(gomock.Any(), gomock.Any()).Return("http://clinic/r", nil)
				f.gateway.EXPECT().FetchOccupants(gomock.Any()).
					Return(nil, domain.FeedShape(""), &domain.FetchFailure{Endpoint: "x/", Err: errors.New("down")})
			},
			want: func() *domain.Receipt {
				r := expectedReceipt("desk@clinic.uz")
				r.URL = "http://clinic/r"
				return &r
			}(),
		},
		{
			name:    "backend rejection is returned without reload",
			request: request,
			setup: func(f viewFixture) {
				f.gateway.EXPECT().CreatePayment(gomock.Any(), request).
					Return(nil, &domain.FetchFailure{Endpoint: "treatment-room-payments/", StatusCode: 400, Err: errors.New("bad")})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newViewFixture(t)
			f.gateway.EXPECT().FetchOccupants(gomock.Any()).Return(occupants, domain.ShapeRooms, nil)
			f.gateway.EXPECT().FetchBalances(gomock.Any()).Return(balances, nil)
			require.NoError(t, f.view.Reload(context.Background()))
			before := f.view.Cache()
			require.NotEmpty(t, before.Active)

			tt.setup(f)

			got, err := f.view.SubmitPayment(context.Background(), tt.request)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				var vf *domain.ValidationFailure
				assert.Equal(t, tt.wantInvalid, errors.As(err, &vf))
				assert.Equal(t, before, f.view.Cache())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBillingView_SubmitPaymentUnknownPatientName(t *testing.T) {
	f := newViewFixture(t)
	request := domain.PaymentRequest{PatientID: "9", Amount: 10}

	f.gateway.EXPECT().CreatePayment(gomock.Any(), request).Return(&domain.PaymentRecord{ID: "1"}, nil)
	f.gateway.EXPECT().FetchUserProfile(gomock.Any()).Return(&domain.UserProfile{}, nil)
	f.printer.EXPECT().Print(gomock.Any(), gomock.Any()).Return("", nil)
	f.gateway.EXPECT().FetchOccupants(gomock.Any()).Return(nil, domain.ShapeFlat, nil)
	f.gateway.EXPECT().FetchBalances(gomock.Any()).Return(nil, nil)

	got, err := f.view.SubmitPayment(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, "Unknown", got.PatientName)
	assert.Equal(t, usecase.DefaultProcessedBy, got.ProcessedBy)
}
