package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCachedRatesReader_GetRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	table := models.RateTable{"USD": 1, "EUR": 0.91}

	tests := []struct {
		name      string
		mockSetup func(reader *MockRatesReader, store *MockRateTableStore)
		want      models.RateTable
		wantErr   error
	}{
		{
			name: "store hit",
			mockSetup: func(reader *MockRatesReader, store *MockRateTableStore) {
				store.EXPECT().Get(ctx, "USD").Return(table, nil)
			},
			want: table,
		},
		{
			name: "store miss fetches and stores",
			mockSetup: func(reader *MockRatesReader, store *MockRateTableStore) {
				store.EXPECT().Get(ctx, "USD").Return(nil, errors.New("miss"))
				reader.EXPECT().GetRates(ctx, "USD").Return(table, nil)
				store.EXPECT().Set(ctx, "USD", table).Return(nil)
			},
			want: table,
		},
		{
			name: "store write failure is not fatal",
			mockSetup: func(reader *MockRatesReader, store *MockRateTableStore) {
				store.EXPECT().Get(ctx, "USD").Return(nil, errors.New("miss"))
				reader.EXPECT().GetRates(ctx, "USD").Return(table, nil)
				store.EXPECT().Set(ctx, "USD", table).Return(errors.New("redis down"))
			},
			want: table,
		},
		{
			name: "provider failure",
			mockSetup: func(reader *MockRatesReader, store *MockRateTableStore) {
				store.EXPECT().Get(ctx, "USD").Return(nil, errors.New("miss"))
				reader.EXPECT().GetRates(ctx, "USD").Return(nil, errors.New("provider down"))
			},
			wantErr: errors.New("provider down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewMockRatesReader(ctrl)
			store := NewMockRateTableStore(ctrl)
			tt.mockSetup(reader, store)

			got, err := NewCachedRatesReader(reader, store).GetRates(ctx, "USD")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
