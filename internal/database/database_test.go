package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"airbus_twin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	dbPath := filepath.Join(t.TempDir(), "airbus_twin_test.db")

	db, err := New(dbPath)
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db
}

func testSpec(acType string) models.AircraftSpec {
	return models.AircraftSpec{
		Type:       models.AircraftType(acType),
		WingspanM:  35.8,
		LengthM:    37.57,
		HeightM:    11.76,
		MTOWKg:     78000,
		RangeKm:    6150,
		Passengers: models.Passengers{Typical: 180, Max: 194},
		Engines:    "CFM56-5B",
		Runway:     models.RunwayRequirements{TakeoffM: 2100, LandingM: 1500},
		Gate: models.GateRequirements{
			WingspanClearanceM: 36, LengthClearanceM: 38, HeightClearanceM: 12,
			Bridge: models.BridgeStandard,
		},
		FuelCapacityL:    27200,
		ServiceCeilingFt: 39800,
		Generation:       models.GenerationNone,
	}
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db)
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "dir", "db.sqlite"))
	assert.Error(t, err)
}

func TestAircraftSpecRepository_InsertAndLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AircraftSpecRepository()

	populated, err := repo.IsTablePopulated()
	require.NoError(t, err)
	assert.False(t, populated)

	a321 := testSpec("A321")
	a321.LengthM = 44.51
	require.NoError(t, repo.InsertBatch([]models.AircraftSpec{testSpec("A320"), a321}))

	populated, err = repo.IsTablePopulated()
	require.NoError(t, err)
	assert.True(t, populated)

	specs, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, testSpec("A320"), specs[0])
	assert.Equal(t, a321, specs[1])
}

func TestAircraftSpecRepository_UpsertKeepsOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AircraftSpecRepository()

	require.NoError(t, repo.InsertBatch([]models.AircraftSpec{testSpec("A320"), testSpec("A321")}))

	updated := testSpec("A320")
	updated.RangeKm = 6300
	require.NoError(t, repo.InsertBatch([]models.AircraftSpec{updated}))

	specs, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, models.AircraftType("A320"), specs[0].Type)
	assert.Equal(t, 6300.0, specs[0].RangeKm)
}

func TestAircraftSpecRepository_InsertEmpty(t *testing.T) {
	db := setupTestDB(t)

	err := db.AircraftSpecRepository().InsertBatch(nil)
	assert.NoError(t, err)
}

func TestAircraftSpecRepository_LoadFromCSV(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AircraftSpecRepository()

	require.NoError(t, repo.LoadFromCSV("datasets/airbus_fleet_specs.csv", 3))

	specs, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, specs, 7)
	assert.Equal(t, models.AircraftType("A319neo"), specs[0].Type)
	assert.Equal(t, models.AircraftType("A380"), specs[6].Type)
	assert.Equal(t, models.BridgeDoubleDeck, specs[6].Gate.Bridge)
	assert.Equal(t, 525, specs[6].Passengers.Typical)
	assert.Equal(t, models.GenerationLatest, specs[5].Generation)
}

func TestAircraftSpecRepository_LoadFromCSV_BadNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := db.AircraftSpecRepository()

	path := filepath.Join(t.TempDir(), "specs.csv")
	csvData := strings.Join([]string{
		"type,wingspan_m,length_m,height_m,mtow_kg,range_km,passengers_typical,passengers_max,engines,takeoff_m,landing_m,wingspan_clearance_m,length_clearance_m,height_clearance_m,bridge_compatibility,fuel_capacity_l,service_ceiling_ft",
		"A320,wide,37.57,11.76,78000,6150,180,194,CFM56,2100,1500,36,38,12,standard,27200,39800",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	err := repo.LoadFromCSV(path, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wingspan_m")
}

func TestAircraftSpecRepository_LoadFromCSV_MissingFile(t *testing.T) {
	db := setupTestDB(t)

	err := db.AircraftSpecRepository().LoadFromCSV(filepath.Join(t.TempDir(), "nope.csv"), 10)
	assert.Error(t, err)
}

func TestDiversionAirportRepository_DefaultCatalogue(t *testing.T) {
	db := setupTestDB(t)
	repo := db.DiversionAirportRepository()

	require.NoError(t, repo.LoadFromReader(strings.NewReader(DefaultDiversionAirportsCSV), 5))

	airports, err := repo.List()
	require.NoError(t, err)
	require.NotEmpty(t, airports)
	for i := 1; i < len(airports); i++ {
		assert.Less(t, airports[i-1].ICAO, airports[i].ICAO)
	}

	egll, found, err := repo.Get("egll")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "London Heathrow", egll.Name)
	assert.True(t, egll.A380Capable)
	assert.Equal(t, 3902.0, egll.RunwayLengthM)

	shannon, found, err := repo.Get("EINN")
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, shannon.A380Capable)
	assert.False(t, shannon.MaintenanceCapable)
	assert.True(t, shannon.FuelAvailable)
}

func TestDiversionAirportRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)

	_, found, err := db.DiversionAirportRepository().Get("ZZZZ")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDiversionAirportRepository_ReplaceByICAO(t *testing.T) {
	db := setupTestDB(t)
	repo := db.DiversionAirportRepository()

	require.NoError(t, repo.InsertBatch([]models.DiversionCandidate{
		{ICAO: "CYQX", Name: "Gander", Lat: 48.94, Lon: -54.57, RunwayLengthM: 3109, FuelAvailable: true},
	}))
	require.NoError(t, repo.InsertBatch([]models.DiversionCandidate{
		{ICAO: "CYQX", Name: "Gander Intl", Lat: 48.94, Lon: -54.57, RunwayLengthM: 3109, WideBodyCapable: true},
	}))

	airports, err := repo.List()
	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "Gander Intl", airports[0].Name)
	assert.True(t, airports[0].WideBodyCapable)
	assert.False(t, airports[0].FuelAvailable)
}

func TestDiversionAirportRepository_SkipsRowsWithoutICAO(t *testing.T) {
	db := setupTestDB(t)
	repo := db.DiversionAirportRepository()

	csvData := "icao,name,lat,lon,runway_length_m,wide_body_capable\n" +
		",Nameless,10,10,2000,false\n" +
		"lpla,Lajes,38.76,-27.09,3314,true\n"
	require.NoError(t, repo.LoadFromReader(strings.NewReader(csvData), 10))

	airports, err := repo.List()
	require.NoError(t, err)
	require.Len(t, airports, 1)
	assert.Equal(t, "LPLA", airports[0].ICAO)
	assert.True(t, airports[0].WideBodyCapable)
}
