package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lawnchairsociety/towerhouse/internal/decorator"
	"github.com/lawnchairsociety/towerhouse/internal/generator"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

var (
	// ErrLevelNotFound is returned when no level matches the id or name.
	ErrLevelNotFound = errors.New("store: level not found")

	// ErrNameTaken is returned when saving under a name another level uses.
	ErrNameTaken = errors.New("store: level name already taken")
)

// LevelInfo summarises a stored level.
type LevelInfo struct {
	ID         string
	Name       string
	Seed       int64
	Size       grid.Size
	Pruned     int
	Occupied   int
	Placements int
	CreatedAt  time.Time
}

// StoredLevel is a level read back from the database.
type StoredLevel struct {
	LevelInfo
	Grid *grid.Grid
}

// SaveLevel stores a generated level with its placements and returns the
// new level id. name is optional; a non-empty name must be unique.
func (s *Store) SaveLevel(ctx context.Context, name string, level *generator.Level, placements []decorator.Placement) (string, error) {
	id := uuid.New().String()
	size := level.Grid.Size()

	var nullName sql.NullString
	if name != "" {
		nullName = sql.NullString{String: name, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.qb.Build(`
		INSERT INTO levels (id, name, seed, width, depth, floors, height_limits, tiles, pruned, occupied, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id, nullName, level.Seed, size.Width, size.Depth, size.Floors,
		strings.Join(level.Grid.EncodeLimits(), "\n"), encodeTiles(level.Grid),
		level.Stats.Pruned, level.Stats.Occupied, time.Now().UTC(),
	)
	if err != nil {
		if s.dialect.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %q", ErrNameTaken, name)
		}
		return "", fmt.Errorf("failed to insert level: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.qb.Build(`
		INSERT INTO placements (level_id, seq, kind, cell_x, cell_y, cell_z, pos_x, pos_y, pos_z, yaw)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return "", fmt.Errorf("failed to prepare placement insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range placements {
		_, err := stmt.ExecContext(ctx, id, i, p.Kind.String(),
			p.Cell.X, p.Cell.Y, p.Cell.Z,
			p.Position.X, p.Position.Y, p.Position.Z, p.Yaw)
		if err != nil {
			return "", fmt.Errorf("failed to insert placement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit level: %w", err)
	}
	return id, nil
}

// encodeTiles stacks the text rows of every floor, bottom floor first.
func encodeTiles(g *grid.Grid) string {
	var rows []string
	for z := 0; z < g.Size().Floors; z++ {
		rows = append(rows, g.EncodeFloor(z)...)
	}
	return strings.Join(rows, "\n")
}

func decodeTiles(size grid.Size, limits, tiles string) (*grid.Grid, error) {
	rows := strings.Split(tiles, "\n")
	if len(rows) != size.Depth*size.Floors {
		return nil, fmt.Errorf("%w: %d tile rows for %dx%dx%d", grid.ErrMalformed, len(rows), size.Width, size.Depth, size.Floors)
	}
	floors := make([][]string, size.Floors)
	for z := range floors {
		floors[z] = rows[z*size.Depth : (z+1)*size.Depth]
	}
	return grid.Decode(size, strings.Split(limits, "\n"), floors)
}

const levelColumns = `l.id, l.name, l.seed, l.width, l.depth, l.floors, l.pruned, l.occupied, l.created_at,
	(SELECT COUNT(*) FROM placements p WHERE p.level_id = l.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanInfo(row scanner, extra ...any) (LevelInfo, error) {
	var info LevelInfo
	var name sql.NullString
	dest := append([]any{
		&info.ID, &name, &info.Seed,
		&info.Size.Width, &info.Size.Depth, &info.Size.Floors,
		&info.Pruned, &info.Occupied, &info.CreatedAt, &info.Placements,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return info, err
	}
	info.Name = name.String
	return info, nil
}

// LoadLevel reads a level and rebuilds its grid.
func (s *Store) LoadLevel(ctx context.Context, id string) (*StoredLevel, error) {
	return s.loadWhere(ctx, "l.id = ?", id)
}

// LoadLevelByName reads the level saved under name.
func (s *Store) LoadLevelByName(ctx context.Context, name string) (*StoredLevel, error) {
	return s.loadWhere(ctx, "l.name = ?", name)
}

func (s *Store) loadWhere(ctx context.Context, where string, arg any) (*StoredLevel, error) {
	row := s.db.QueryRowContext(ctx, s.qb.Build(
		`SELECT `+levelColumns+`, l.height_limits, l.tiles FROM levels l WHERE `+where), arg)

	var limits, tiles string
	info, err := scanInfo(row, &limits, &tiles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", ErrLevelNotFound, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	g, err := decodeTiles(info.Size, limits, tiles)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", info.ID, err)
	}
	return &StoredLevel{LevelInfo: info, Grid: g}, nil
}

// LoadPlacements returns a level's placements in their original order.
func (s *Store) LoadPlacements(ctx context.Context, id string) ([]decorator.Placement, error) {
	if _, err := s.levelExists(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.qb.Build(`
		SELECT kind, cell_x, cell_y, cell_z, pos_x, pos_y, pos_z, yaw
		FROM placements WHERE level_id = ? ORDER BY seq`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query placements: %w", err)
	}
	defer rows.Close()

	var out []decorator.Placement
	for rows.Next() {
		var p decorator.Placement
		var kind string
		if err := rows.Scan(&kind, &p.Cell.X, &p.Cell.Y, &p.Cell.Z,
			&p.Position.X, &p.Position.Y, &p.Position.Z, &p.Yaw); err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		if p.Kind, err = decorator.ParseKind(kind); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) levelExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.qb.Build(`SELECT COUNT(*) FROM levels WHERE id = ?`), id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up level: %w", err)
	}
	if n == 0 {
		return false, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	return true, nil
}

// ListLevels returns every stored level, oldest first.
func (s *Store) ListLevels(ctx context.Context) ([]LevelInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+levelColumns+` FROM levels l ORDER BY l.created_at, l.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var out []LevelInfo
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteLevel removes a level and its placements.
func (s *Store) DeleteLevel(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.qb.Build(`DELETE FROM placements WHERE level_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete placements: %w", err)
	}
	res, err := tx.ExecContext(ctx, s.qb.Build(`DELETE FROM levels WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete level: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrLevelNotFound, id)
	}
	return tx.Commit()
}
