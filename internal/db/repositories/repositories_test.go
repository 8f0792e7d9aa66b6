package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ffc/aircraft-tracker/internal/config"
	"ffc/aircraft-tracker/internal/db"
	"ffc/aircraft-tracker/internal/models/dtos"
	"ffc/aircraft-tracker/internal/models/gorm"
)

var testFleet = []config.TrackedAircraft{
	{Registration: "N31401", ICAO24: "a3581f"},
	{Registration: "N773SP", ICAO24: "aa75ca"},
}

// setupTestDB opens a fresh sqlite database, migrates the schema and seeds
// the test fleet. The returned path lets tests attach a second sqlx handle.
func setupTestDB(t *testing.T) (*gormlib.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tracker.db")
	orm, err := gormlib.Open(sqlite.Open(path), &gormlib.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(orm); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	repo := NewAircraftRepository(orm)
	if err := repo.SeedTrackedAircraft(context.Background(), testFleet); err != nil {
		t.Fatalf("Failed to seed aircraft: %v", err)
	}
	return orm, path
}

func TestSeedTrackedAircraft_Idempotent(t *testing.T) {
	orm, _ := setupTestDB(t)
	repo := NewAircraftRepository(orm)
	ctx := context.Background()

	// Seeding again must not duplicate rows
	if err := repo.SeedTrackedAircraft(ctx, testFleet); err != nil {
		t.Fatalf("Expected no error on re-seed, got %v", err)
	}

	var count int64
	if err := orm.Model(&gorm.Aircraft{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count aircraft: %v", err)
	}
	if count != int64(len(testFleet)) {
		t.Errorf("Expected %d aircraft, got %d", len(testFleet), count)
	}
}

func TestFindByICAO24_NormalizesCase(t *testing.T) {
	orm, _ := setupTestDB(t)
	repo := NewAircraftRepository(orm)
	ctx := context.Background()

	aircraft, err := repo.FindByICAO24(ctx, "A3581F")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if aircraft == nil || aircraft.Registration != "N31401" {
		t.Fatalf("Expected N31401 for A3581F, got %+v", aircraft)
	}

	missing, err := repo.FindByICAO24(ctx, "ffffff")
	if err != nil {
		t.Fatalf("Expected no error for unknown icao24, got %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown icao24, got %+v", missing)
	}
}

func TestFlightSessionSave_Deduplicates(t *testing.T) {
	orm, _ := setupTestDB(t)
	aircraftRepo := NewAircraftRepository(orm)
	repo := NewFlightSessionRepository(orm, aircraftRepo)
	ctx := context.Background()

	record := dtos.FlightRecord{
		ICAO24:          "a3581f",
		FirstSeen:       1700000000,
		LastSeen:        1700003600,
		DurationMinutes: 60,
	}

	firstID, err := repo.Save(ctx, record)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if firstID == 0 {
		t.Fatal("Expected a row id for a tracked aircraft")
	}

	secondID, err := repo.Save(ctx, record)
	if err != nil {
		t.Fatalf("Expected no error on re-save, got %v", err)
	}
	if secondID != firstID {
		t.Errorf("Expected re-save to return existing id %d, got %d", firstID, secondID)
	}

	var count int64
	if err := orm.Model(&gorm.FlightSession{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 session, got %d", count)
	}

	// A different observation window is a different flight
	record.LastSeen = 1700007200
	record.DurationMinutes = 120
	thirdID, err := repo.Save(ctx, record)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if thirdID == firstID {
		t.Error("Expected a new row for a different window")
	}
}

func TestFlightSessionSave_DropsUntrackedAircraft(t *testing.T) {
	orm, _ := setupTestDB(t)
	repo := NewFlightSessionRepository(orm, NewAircraftRepository(orm))

	id, err := repo.Save(context.Background(), dtos.FlightRecord{
		ICAO24:    "ffffff",
		FirstSeen: 1700000000,
		LastSeen:  1700003600,
	})
	if err != nil {
		t.Fatalf("Expected untracked aircraft to be dropped silently, got %v", err)
	}
	if id != 0 {
		t.Errorf("Expected id 0 for dropped record, got %d", id)
	}
}

func TestStatusHistorySaveBatch_SkipsUntracked(t *testing.T) {
	orm, _ := setupTestDB(t)
	repo := NewStatusHistoryRepository(orm, NewAircraftRepository(orm))

	altitude := 3500.0
	saved, err := repo.SaveBatch(context.Background(), []dtos.StateSnapshot{
		{ICAO24: "a3581f", Altitude: &altitude, LastContact: 1700000000},
		{ICAO24: "ffffff", LastContact: 1700000000},
		{ICAO24: "aa75ca", OnGround: true, LastContact: 1700000001},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if saved != 2 {
		t.Errorf("Expected 2 snapshots saved, got %d", saved)
	}
}

func TestCleanupExpired_RetentionBoundary(t *testing.T) {
	orm, _ := setupTestDB(t)
	aircraftRepo := NewAircraftRepository(orm)
	statusRepo := NewStatusHistoryRepository(orm, aircraftRepo)
	sessionRepo := NewFlightSessionRepository(orm, aircraftRepo)
	ctx := context.Background()

	aircraft, err := aircraftRepo.FindByICAO24(ctx, "a3581f")
	if err != nil || aircraft == nil {
		t.Fatalf("Failed to load seeded aircraft: %v", err)
	}

	now := time.Now().Unix()
	stale := now - 49*3600
	fresh := now - 47*3600

	for _, ts := range []int64{stale, fresh} {
		if err := orm.Create(&gorm.StatusHistory{AircraftID: aircraft.ID, Timestamp: ts}).Error; err != nil {
			t.Fatalf("Failed to insert status row: %v", err)
		}
		session := gorm.FlightSession{
			AircraftID: aircraft.ID,
			FirstSeen:  ts - 3600,
			LastSeen:   ts,
		}
		if err := orm.Create(&session).Error; err != nil {
			t.Fatalf("Failed to insert session row: %v", err)
		}
	}

	removedStatus, err := statusRepo.CleanupExpired(ctx, 48)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removedStatus != 1 {
		t.Errorf("Expected 1 status row removed, got %d", removedStatus)
	}

	removedSessions, err := sessionRepo.CleanupExpired(ctx, 48)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removedSessions != 1 {
		t.Errorf("Expected 1 session removed, got %d", removedSessions)
	}

	// The 47h-old rows are inside the retention window and must survive
	var statuses, sessions int64
	orm.Model(&gorm.StatusHistory{}).Count(&statuses)
	orm.Model(&gorm.FlightSession{}).Count(&sessions)
	if statuses != 1 || sessions != 1 {
		t.Errorf("Expected 1 surviving row per table, got %d statuses and %d sessions", statuses, sessions)
	}
}

func TestFlightQueryRepository_ReadsPersistedFlights(t *testing.T) {
	orm, path := setupTestDB(t)
	aircraftRepo := NewAircraftRepository(orm)
	sessionRepo := NewFlightSessionRepository(orm, aircraftRepo)
	ctx := context.Background()

	now := time.Now().Unix()
	flights := []dtos.FlightRecord{
		{ICAO24: "a3581f", FirstSeen: now - 7200, LastSeen: now - 3600, DurationMinutes: 60},
		{ICAO24: "a3581f", FirstSeen: now - 14400, LastSeen: now - 12600, DurationMinutes: 30},
		{ICAO24: "aa75ca", FirstSeen: now - 10800, LastSeen: now - 7200, DurationMinutes: 60},
	}
	for _, f := range flights {
		if _, err := sessionRepo.Save(ctx, f); err != nil {
			t.Fatalf("Failed to save flight: %v", err)
		}
	}

	sqlxDB, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open sqlx handle: %v", err)
	}
	defer sqlxDB.Close()
	queries := NewFlightQueryRepository(sqlxDB)

	recent, err := queries.RecentFlights(ctx, 48)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 recent flights, got %d", len(recent))
	}
	// Newest departure first
	if recent[0].DepartureTime < recent[1].DepartureTime {
		t.Error("Expected flights ordered by departure time descending")
	}

	history, err := queries.AircraftHistory(ctx, "N31401", 48)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 flights for N31401, got %d", len(history))
	}
	if history[0].Registration != "N31401" || history[0].ICAO24 != "a3581f" {
		t.Errorf("Expected joined aircraft columns, got %+v", history[0])
	}

	stats, err := queries.AircraftStats(ctx, "N31401", 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.TotalFlights != 2 {
		t.Errorf("Expected 2 flights in stats, got %d", stats.TotalFlights)
	}
	if stats.TotalFlightTimeMin != 90 {
		t.Errorf("Expected 90 minutes total, got %d", stats.TotalFlightTimeMin)
	}
	if stats.TotalFlightTimeHours != 1.5 {
		t.Errorf("Expected 1.5 hours total, got %v", stats.TotalFlightTimeHours)
	}
}
