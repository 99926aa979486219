package repositories

import (
	"context"
	"net/url"
	"testing"

	"bestiary/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func listParams(t *testing.T, query url.Values) domain.ListParams {
	t.Helper()
	p, err := domain.NewListParams(query)
	if err != nil {
		t.Fatalf("params error: %v", err)
	}
	return p
}

func creatureRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "type", "habitat", "danger_level", "description"})
}

func TestListAllFiltersClauseAndBindingOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	p := listParams(t, url.Values{
		"search":         {"drag"},
		"type":           {"reptile"},
		"minDangerLevel": {"5"},
	})

	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE name LIKE \? AND type = \? AND danger_level >= \? ORDER BY name ASC LIMIT \? OFFSET \?`).
		WithArgs("%drag%", "reptile", "5", 10, 0).
		WillReturnRows(creatureRows().AddRow(1, "Dragon", "reptile", "mountain", 9, "breathes fire"))

	repo := CreatureRepository{DB: db}
	creatures, err := repo.List(context.Background(), p)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(creatures) != 1 || creatures[0].Name != "Dragon" {
		t.Fatalf("unexpected result: %+v", creatures)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListHabitatFilterAppendedLast(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	p := listParams(t, url.Values{
		"search":  {"wy"},
		"habitat": {"swamp"},
	})

	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE name LIKE \? AND habitat = \? ORDER BY name ASC LIMIT \? OFFSET \?`).
		WithArgs("%wy%", "swamp", 10, 0).
		WillReturnRows(creatureRows())

	repo := CreatureRepository{DB: db}
	if _, err := repo.List(context.Background(), p); err != nil {
		t.Fatalf("list error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListNoFiltersNoWhereClause(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	p := listParams(t, url.Values{"page": {"3"}, "limit": {"25"}, "sortBy": {"danger_level"}, "sortOrder": {"desc"}})

	mock.ExpectQuery(`SELECT (.+) FROM creatures ORDER BY danger_level DESC LIMIT \? OFFSET \?`).
		WithArgs(25, 50).
		WillReturnRows(creatureRows())

	repo := CreatureRepository{DB: db}
	creatures, err := repo.List(context.Background(), p)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if creatures == nil || len(creatures) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", creatures)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListQueryFailureIsDataAccessError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM creatures`).
		WillReturnError(context.DeadlineExceeded)

	repo := CreatureRepository{DB: db}
	_, err = repo.List(context.Background(), listParams(t, url.Values{}))
	if !domain.IsDataAccess(err) {
		t.Fatalf("expected DataAccessError, got %v", err)
	}
}

func TestCreateOnlyNameBindsThreeValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO creatures \(name, created_at, updated_at\) VALUES \(\?, \?, \?\)`).
		WithArgs("Wyrm", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE id = \? LIMIT 1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "habitat", "danger_level", "description", "created_at", "updated_at"}).
			AddRow(7, "Wyrm", "", "", 0, "", "2025-01-01 10:00:00", "2025-01-01 10:00:00"))

	repo := CreatureRepository{DB: db}
	creature, err := repo.Create(context.Background(), map[string]string{"name": "Wyrm"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if creature.ID != 7 || creature.Name != "Wyrm" {
		t.Fatalf("unexpected creature: %+v", creature)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateAllFieldsColumnOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO creatures \(name, type, habitat, danger_level, description, created_at, updated_at\) VALUES \(\?, \?, \?, \?, \?, \?, \?\)`).
		WithArgs("Dragon", "reptile", "mountain", "9", "breathes fire", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE id = \? LIMIT 1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "habitat", "danger_level", "description", "created_at", "updated_at"}).
			AddRow(2, "Dragon", "reptile", "mountain", 9, "breathes fire", "2025-01-01 10:00:00", "2025-01-01 10:00:00"))

	repo := CreatureRepository{DB: db}
	body := map[string]string{
		"name":         "Dragon",
		"type":         "reptile",
		"habitat":      "mountain",
		"danger_level": "9",
		"description":  "breathes fire",
	}
	creature, err := repo.Create(context.Background(), body)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if creature.DangerLevel != 9 {
		t.Fatalf("unexpected creature: %+v", creature)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateInvalidID(t *testing.T) {
	repo := CreatureRepository{}

	for _, id := range []int64{0, -4} {
		err := repo.Update(context.Background(), id, map[string]string{"name": "x"})
		if !domain.IsValidation(err) {
			t.Fatalf("id=%d: expected ValidationError, got %v", id, err)
		}
		if err.Error() != "Invalid creature id" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
}

func TestUpdateNoFieldsRejected(t *testing.T) {
	repo := CreatureRepository{}

	err := repo.Update(context.Background(), 5, map[string]string{"danger_level": "  "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateSetsOnlySuppliedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE creatures SET name = \?, danger_level = \?, updated_at = \? WHERE id = \?`).
		WithArgs("Hydra", "8", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := CreatureRepository{DB: db}
	if err := repo.Update(context.Background(), 3, map[string]string{"name": "Hydra", "danger_level": "8"}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := CreatureRepository{DB: db}

	if err := repo.Delete(context.Background(), -1); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	mock.ExpectExec(`DELETE FROM creatures WHERE id = \?`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 9); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE id = \? LIMIT 1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := CreatureRepository{DB: db}
	_, err = repo.GetByID(context.Background(), 42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// Create followed by a list filtered on the creature's type must surface the
// new record exactly once.
func TestCreateThenListRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO creatures \(name, type, created_at, updated_at\) VALUES \(\?, \?, \?, \?\)`).
		WithArgs("Basilisk", "reptile", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE id = \? LIMIT 1`).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "habitat", "danger_level", "description", "created_at", "updated_at"}).
			AddRow(11, "Basilisk", "reptile", "", 0, "", "2025-01-01 10:00:00", "2025-01-01 10:00:00"))
	mock.ExpectQuery(`SELECT (.+) FROM creatures WHERE type = \? ORDER BY name ASC LIMIT \? OFFSET \?`).
		WithArgs("reptile", 10, 0).
		WillReturnRows(creatureRows().AddRow(11, "Basilisk", "reptile", "", 0, ""))

	repo := CreatureRepository{DB: db}

	created, err := repo.Create(context.Background(), map[string]string{"name": "Basilisk", "type": "reptile"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	creatures, err := repo.List(context.Background(), listParams(t, url.Values{"type": {"reptile"}}))
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	matches := 0
	for _, c := range creatures {
		if c.ID == created.ID {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("created record appeared %d times, want 1", matches)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
