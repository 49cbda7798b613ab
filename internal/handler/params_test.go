package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-rentals/service-rental/internal/domain/vehicle"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/vehicles?"+rawQuery, nil)
	return c
}

func TestParseVehicleFilter(t *testing.T) {
	c := testContext(t, "brand=TESLA,MERCEDES&seats=2,5&has_sidecar=true&min_price=50&max_price=200&page=2&limit=25&sort=-price_per_day")

	filter, err := parseVehicleFilter(c)
	require.NoError(t, err)

	assert.Equal(t, []vehicle.Brand{vehicle.BrandTesla, vehicle.BrandMercedes}, filter.Brands)
	assert.Equal(t, []uint8{2, 5}, filter.Seats)
	require.NotNil(t, filter.HasSidecar)
	assert.True(t, *filter.HasSidecar)
	require.NotNil(t, filter.MinPrice)
	assert.Equal(t, 50.0, *filter.MinPrice)
	require.NotNil(t, filter.MaxPrice)
	assert.Equal(t, 200.0, *filter.MaxPrice)
	assert.Equal(t, 2, filter.Pagination.Page)
	assert.Equal(t, 25, filter.Pagination.Limit)
	assert.Equal(t, "-price_per_day", filter.Pagination.Sort)
}

func TestParseVehicleFilterEmpty(t *testing.T) {
	filter, err := parseVehicleFilter(testContext(t, ""))
	require.NoError(t, err)

	assert.Nil(t, filter.Brands)
	assert.Nil(t, filter.Seats)
	assert.Nil(t, filter.HasSidecar)
	assert.Nil(t, filter.MinPrice)
	assert.Zero(t, filter.Pagination.Page)
	assert.Zero(t, filter.Pagination.Limit)
}

func TestParseVehicleFilterNamesOffendingField(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"brand=FERRARI", "invalid brand: FERRARI"},
		{"fuel_type=GASOLINE", "invalid fuel_type: GASOLINE"},
		{"gearbox=CVT", "invalid gearbox: CVT"},
		{"seats=lots", "invalid seats: lots"},
		{"seats=300", "invalid seats: 300"},
		{"engine_cc=big", "invalid engine_cc: big"},
		{"year_of_production=recent", "invalid year_of_production: recent"},
		{"has_sidecar=maybe", "invalid has_sidecar: maybe"},
		{"min_price=cheap", "invalid min_price: cheap"},
		{"added_at_from=yesterday", "invalid added_at_from: yesterday"},
		{"brand=TESLA,FERRARI", "invalid brand: FERRARI"},
		{"page=abc", "invalid page: abc"},
		{"limit=ten", "invalid limit: ten"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := parseVehicleFilter(testContext(t, tt.query))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestTimeParamAcceptsDates(t *testing.T) {
	c := testContext(t, "added_at_from=2026-01-15&added_at_to=2026-02-01T10:30:00Z")

	from, err := timeParam(c, "added_at_from")
	require.NoError(t, err)
	require.NotNil(t, from)
	assert.Equal(t, "2026-01-15", from.Format("2006-01-02"))

	to, err := timeParam(c, "added_at_to")
	require.NoError(t, err)
	require.NotNil(t, to)
	assert.Equal(t, 10, to.Hour())
}

func TestCsvParamTrimsAndDropsEmpties(t *testing.T) {
	c := testContext(t, "model=MODEL_3%2C+%2CMODEL_Y%2C")
	assert.Equal(t, []string{"MODEL_3", "MODEL_Y"}, csvParam(c, "model"))
}
