package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"gazetteer-service/internal/domain"
)

var sample = []domain.Settlement{
	{AncientName: "Sparta", ModernName: "Sparti", Latitude: 37.0755, Longitude: 22.4301, Type: "Polis"},
	{AncientName: "Athens", ModernName: "Athina", Latitude: 37.9838, Longitude: 23.7275, Type: "Major Polis"},
	{AncientName: "Delphi", ModernName: "Delfoi", Latitude: 38.4824, Longitude: 22.5010, Type: "Sanctuary"},
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSqliteSeedAndListKeepsOrder(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, InitSchema(db))
	require.NoError(t, InitSchema(db), "schema init must be idempotent")
	require.NoError(t, Seed(db, sample))

	repo := NewSqliteSettlementRepository(db)
	got, err := repo.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(sample))

	settlements, err := domain.ValidateStrict(got)
	require.NoError(t, err)
	assert.Equal(t, sample, settlements)
}

func TestSqliteSeedReplacesPreviousCatalog(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, InitSchema(db))
	require.NoError(t, Seed(db, sample))
	require.NoError(t, Seed(db, sample[:1]))

	got, err := NewSqliteSettlementRepository(db).ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sparta", got[0].AncientName)
}

func TestSqliteSeedRejectsInvalidBatch(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, InitSchema(db))
	require.NoError(t, Seed(db, sample))

	bad := append([]domain.Settlement{}, sample...)
	bad = append(bad, domain.Settlement{AncientName: "Nowhere", ModernName: "X", Latitude: 95, Longitude: 0, Type: "Polis"})

	err := Seed(db, bad)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	got, err := NewSqliteSettlementRepository(db).ListCandidates(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, len(sample), "rejected batch must leave the table untouched")
}

func TestNilDB(t *testing.T) {
	assert.Error(t, InitSchema(nil))
	assert.Error(t, Seed(nil, sample))
	assert.Error(t, InitPostgresSchema(context.Background(), nil))
	assert.Error(t, SeedPostgres(context.Background(), nil, sample))

	_, err := NewSqliteSettlementRepository(nil).ListCandidates(context.Background())
	assert.Error(t, err)
	_, err = NewSQLSettlementRepository(nil).ListCandidates(context.Background())
	assert.Error(t, err)
}

func TestPostgresListCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"ancient_name", "modern_name", "latitude", "longitude", "type"}).
		AddRow("Athens", "Athina", 37.9838, 23.7275, "Major Polis").
		AddRow("Sparta", "Sparti", 37.0755, 22.4301, "Polis")
	mock.ExpectQuery("SELECT ancient_name, modern_name, latitude, longitude, type").WillReturnRows(rows)

	got, err := NewSQLSettlementRepository(db).ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Athens", got[0].AncientName)
	assert.Equal(t, 22.4301, got[1].Longitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListCandidatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err = NewSQLSettlementRepository(db).ListCandidates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSeedPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM settlements").WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare("INSERT INTO settlements")
	for i, s := range sample {
		prep.ExpectExec().
			WithArgs(i+1, s.AncientName, s.ModernName, s.Latitude, s.Longitude, s.Type).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, SeedPostgres(context.Background(), db, sample))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgresRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM settlements").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectPrepare("INSERT INTO settlements").
		ExpectExec().
		WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	err = SeedPostgres(context.Background(), db, sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sparta")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgresReplacesPreviousCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reseed := []domain.Settlement{sample[2], sample[0]}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM settlements").WillReturnResult(sqlmock.NewResult(0, 3))
	prep := mock.ExpectPrepare("INSERT INTO settlements")
	for i, s := range reseed {
		prep.ExpectExec().
			WithArgs(i+1, s.AncientName, s.ModernName, s.Latitude, s.Longitude, s.Type).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, SeedPostgres(context.Background(), db, reseed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgresReseedDropsStaleRows(t *testing.T) {
	// SQLite accepts the Postgres seed statements, so the round-trip runs in memory.
	db := openMemory(t)
	require.NoError(t, InitSchema(db))
	ctx := context.Background()

	require.NoError(t, SeedPostgres(ctx, db, sample))
	require.NoError(t, SeedPostgres(ctx, db, []domain.Settlement{sample[2], sample[0]}))

	got, err := NewSQLSettlementRepository(db).ListCandidates(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.AncientName)
	}
	assert.Equal(t, []string{"Delphi", "Sparta"}, names)
}

func TestSeedPostgresClearFailureWritesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM settlements").WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = SeedPostgres(context.Background(), db, sample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitPostgresSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS settlements").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, InitPostgresSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
