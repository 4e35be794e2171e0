package memory

import (
	"context"
	"testing"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/proximity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDealers(t *testing.T) {
	dealers, err := SeedDealers()
	require.NoError(t, err)
	require.Len(t, dealers, 10)

	first := dealers[0]
	assert.Equal(t, "toyota-of-dallas", first.ID)
	assert.Equal(t, "Toyota of Dallas", first.Name)
	assert.Equal(t, "75220", first.Address.PostalCode)
	assert.InDelta(t, 32.8679, first.Coordinates.Lat, 1e-9)
	assert.InDelta(t, -96.8765, first.Coordinates.Lon, 1e-9)
	assert.Equal(t, "Closed", first.Hours["Sunday"])
	assert.Equal(t, []string{"sales", "service", "parts"}, first.Services)
	require.NotNil(t, first.Reviews)
	assert.Equal(t, 1234, first.Reviews.Count)
}

func TestParseDealers_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":     `{`,
		"missing id":   `[{"name":"x","coordinates":{"lat":1,"lon":1}}]`,
		"duplicate id": `[{"id":"a","coordinates":{"lat":1,"lon":1}},{"id":"a","coordinates":{"lat":2,"lon":2}}]`,
		"bad coords":   `[{"id":"a","coordinates":{"lat":100,"lon":1}}]`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDealers([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestDealerStore_GetDealer(t *testing.T) {
	dealers, err := SeedDealers()
	require.NoError(t, err)
	s := NewDealerStore(dealers)

	d, err := s.GetDealer(context.Background(), "toyota-of-richardson")
	require.NoError(t, err)
	assert.Equal(t, "Richardson", d.Address.City)

	_, err = s.GetDealer(context.Background(), "honda-of-dallas")
	assert.ErrorIs(t, err, domain.ErrDealerNotFound)

	assert.NoError(t, s.Ping(context.Background()))
}

func TestDealerStore_ListReturnsCopy(t *testing.T) {
	s := NewDealerStore([]domain.Dealer{{ID: "a"}, {ID: "b"}})

	list, err := s.ListDealers(context.Background())
	require.NoError(t, err)
	list[0].ID = "mutated"

	again, err := s.ListDealers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].ID)
}

func TestSeedDealers_NearRichardson(t *testing.T) {
	dealers, err := SeedDealers()
	require.NoError(t, err)

	origin := domain.Coordinates{Lat: 32.9857, Lon: -96.7501}
	ranked := proximity.Rank(origin, dealers, 10, 3)

	require.NotEmpty(t, ranked)
	assert.Equal(t, "toyota-of-richardson", ranked[0].Dealer.ID)
	for _, r := range ranked {
		assert.LessOrEqual(t, r.DistanceMiles, 10.0)
	}
}
