package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bestiary/internal/domain"
	"bestiary/internal/domain/models"
	"bestiary/internal/utils"
)

const timeLayout = "2006-01-02 15:04:05"

// creatureColumns is the fixed list projection. Never SELECT * here; the
// response contract must not drift with the schema.
const creatureColumns = `id,
       name,
       COALESCE(type,''),
       COALESCE(habitat,''),
       COALESCE(danger_level,0),
       COALESCE(description,'')`

// creatureFields are the client-writable columns, in statement order.
var creatureFields = []string{"name", "type", "habitat", "danger_level", "description"}

type CreatureRepository struct {
	DB *sql.DB
}

// List runs the filtered, sorted, paginated creature query. Filter clauses
// and their bindings are appended in lock-step, in a fixed order, and joined
// with AND. Sort field and direction are the only interpolated strings; both
// come from the closed enums produced by domain.NewListParams.
func (r CreatureRepository) List(ctx context.Context, p domain.ListParams) ([]models.Creature, error) {
	query := "SELECT " + creatureColumns + " FROM creatures"
	conditions := []string{}
	bindings := []any{}

	if p.Search != "" {
		conditions = append(conditions, "name LIKE ?")
		bindings = append(bindings, "%"+p.Search+"%")
	}
	if p.Type != "" {
		conditions = append(conditions, "type = ?")
		bindings = append(bindings, p.Type)
	}
	if p.MinDangerLevel != "" {
		conditions = append(conditions, "danger_level >= ?")
		bindings = append(bindings, p.MinDangerLevel)
	}
	if p.Habitat != "" {
		conditions = append(conditions, "habitat = ?")
		bindings = append(bindings, p.Habitat)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY " + p.SortBy.Column() + " " + string(p.SortOrder)
	query += " LIMIT ? OFFSET ?"
	bindings = append(bindings, p.Limit, p.Offset)

	rows, err := r.DB.QueryContext(ctx, query, bindings...)
	if err != nil {
		return nil, r.fail("list", query, bindings, err)
	}
	defer rows.Close()

	creatures := []models.Creature{}
	for rows.Next() {
		var c models.Creature
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Habitat, &c.DangerLevel, &c.Description); err != nil {
			return nil, r.fail("list", query, bindings, err)
		}
		creatures = append(creatures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("list", query, bindings, err)
	}

	// No rows is a valid outcome, not an error.
	return creatures, nil
}

// GetByID fetches a single creature including timestamps.
func (r CreatureRepository) GetByID(ctx context.Context, id int64) (models.Creature, error) {
	if id <= 0 {
		return models.Creature{}, domain.ValidationError{Field: "id", Msg: "Invalid creature id"}
	}

	query := "SELECT " + creatureColumns + `,
       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'),''),
       COALESCE(DATE_FORMAT(updated_at, '%Y-%m-%d %H:%i:%s'),'')
FROM creatures WHERE id = ? LIMIT 1`

	var c models.Creature
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Type,
		&c.Habitat,
		&c.DangerLevel,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Creature{}, domain.NotFoundError{Resource: "creature", Err: err}
	}
	if err != nil {
		return models.Creature{}, r.fail("get", query, []any{id}, err)
	}
	return c, nil
}

// Create builds an INSERT from the non-empty supplied fields plus the two
// server-side timestamps. Column, placeholder and binding order are built
// together and never desynchronize. The created id comes from the driver's
// LastInsertId, which is scoped to this connection, so concurrent writers
// cannot be attributed the wrong row.
func (r CreatureRepository) Create(ctx context.Context, body map[string]string) (models.Creature, error) {
	columns := []string{}
	bindings := []any{}

	for _, field := range creatureFields {
		if v := strings.TrimSpace(body[field]); v != "" {
			columns = append(columns, field)
			bindings = append(bindings, v)
		}
	}

	now := time.Now().Format(timeLayout)
	columns = append(columns, "created_at", "updated_at")
	bindings = append(bindings, now, now)

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	query := "INSERT INTO creatures (" + strings.Join(columns, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"

	res, err := r.DB.ExecContext(ctx, query, bindings...)
	if err != nil {
		return models.Creature{}, r.fail("create", query, bindings, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Creature{}, r.fail("create", query, bindings, err)
	}

	return r.GetByID(ctx, id)
}

// Update builds a SET list from the present, non-empty fields and always
// appends the update timestamp. A payload with zero updatable fields is
// rejected; a timestamp-only update the caller cannot observe is not worth a
// round trip.
func (r CreatureRepository) Update(ctx context.Context, id int64, body map[string]string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "Invalid creature id"}
	}

	assignments := []string{}
	bindings := []any{}

	for _, field := range creatureFields {
		if v := strings.TrimSpace(body[field]); v != "" {
			assignments = append(assignments, field+" = ?")
			bindings = append(bindings, v)
		}
	}
	if len(assignments) == 0 {
		return domain.ValidationError{Field: "body", Msg: "No fields to update"}
	}

	assignments = append(assignments, "updated_at = ?")
	bindings = append(bindings, time.Now().Format(timeLayout))
	bindings = append(bindings, id)

	query := "UPDATE creatures SET " + strings.Join(assignments, ", ") + " WHERE id = ?"

	if _, err := r.DB.ExecContext(ctx, query, bindings...); err != nil {
		return r.fail("update", query, bindings, err)
	}
	return nil
}

// Delete removes a creature by id. Not reachable from any route; kept for
// the repository contract.
func (r CreatureRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "Invalid creature id"}
	}

	query := "DELETE FROM creatures WHERE id = ?"
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return r.fail("delete", query, []any{id}, err)
	}
	return nil
}

// fail logs the statement template and bindings for diagnostics, then wraps
// the cause so callers only ever see a generic data-access failure.
func (r CreatureRepository) fail(op, query string, bindings []any, err error) error {
	utils.LogEvent("", "creatures", op, fmt.Sprintf("query failed template=%q bindings=%v err=%v", query, bindings, err))
	return domain.DataAccessError{Op: op, Query: query, Err: err}
}
