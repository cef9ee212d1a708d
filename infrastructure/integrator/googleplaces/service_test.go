package googleplaces

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	googledomain "github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/domain"
	clientmocks "github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/placesclient/mocks"
)

func float64Ptr(f float64) *float64 {
	return &f
}

func TestCollectRankedPlaces_RadiusSemantics(t *testing.T) {
	tests := []struct {
		name           string
		radiusKm       *float64
		expectedMeters int
	}{
		{
			name:           "Raio ausente usa o padrão de 1,5 km",
			radiusKm:       nil,
			expectedMeters: 1500,
		},
		{
			name:           "Raio abaixo do piso é elevado para 500 m",
			radiusKm:       float64Ptr(0.2),
			expectedMeters: 500,
		},
		{
			name:           "Raio informado é convertido para metros",
			radiusKm:       float64Ptr(10),
			expectedMeters: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := clientmocks.NewMockClient(ctrl)
			client.EXPECT().
				Geocode("SW1A 1AA").
				Return(&googledomain.GeoPoint{Lat: 51.5, Lng: -0.14}, nil)
			client.EXPECT().
				NearbySearch(51.5, -0.14, tt.expectedMeters, "barbearia").
				Return([]googledomain.Place{}, nil)

			integrator := New(nil, client)

			result, err := integrator.CollectRankedPlaces("SW1A 1AA", "barbearia", tt.radiusKm)
			assert.NoError(t, err)
			assert.Equal(t, 51.5, result.CenterLat)
			assert.Empty(t, result.Items)
		})
	}
}

func TestCollectRankedPlaces_RankAndRating(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := clientmocks.NewMockClient(ctrl)
	client.EXPECT().
		Geocode("SW1A 1AA").
		Return(&googledomain.GeoPoint{Lat: 51.5, Lng: -0.14}, nil)
	client.EXPECT().
		NearbySearch(51.5, -0.14, 1500, "barbearia").
		Return([]googledomain.Place{
			{PlaceID: "a", Name: "Barbearia A", Rating: float64Ptr(4.567)},
			{PlaceID: "b", Name: "Barbearia B"},
		}, nil)

	integrator := New(nil, client)

	result, err := integrator.CollectRankedPlaces("SW1A 1AA", "barbearia", nil)
	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Items[0].Rank)
	assert.Equal(t, 2, result.Items[1].Rank)
	assert.Equal(t, 4.57, *result.Items[0].Rating)
	assert.Nil(t, result.Items[1].Rating)
}

func TestCollectRankedPlaces_ProviderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := clientmocks.NewMockClient(ctrl)
	client.EXPECT().
		Geocode("SW1A 1AA").
		Return(&googledomain.GeoPoint{Lat: 51.5, Lng: -0.14}, nil)
	client.EXPECT().
		NearbySearch(51.5, -0.14, 1500, "barbearia").
		Return(nil, errors.New("nearby search falhou (status: ZERO_RESULTS)"))

	integrator := New(nil, client)

	result, err := integrator.CollectRankedPlaces("SW1A 1AA", "barbearia", nil)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}
