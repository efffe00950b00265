// migrate-to-postgres copies stored levels from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/levels.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user towerhouse \
//	    -pg-password towerhouse \
//	    -pg-database towerhouse
package main

import (
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/lawnchairsociety/towerhouse/internal/store"
)

func main() {
	// Parse command-line flags
	sqlitePath := flag.String("sqlite", "data/levels.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "towerhouse", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "towerhouse", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "towerhouse", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	src, err := store.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()

	pgConfig := store.DefaultPostgresConfig()
	pgConfig.Host = *pgHost
	pgConfig.Port = *pgPort
	pgConfig.User = *pgUser
	pgConfig.Password = *pgPassword
	pgConfig.Database = *pgDatabase
	pgConfig.SSLMode = *pgSSLMode

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	// Opening the store brings the PostgreSQL schema up to date, so a dry
	// run only counts rows.
	var dst *sql.DB
	if !*dryRun {
		log.Printf("Opening PostgreSQL database: %s", pgConfig)
		pg, err := store.OpenWithConfig(store.Config{Driver: string(store.DialectPostgres), Postgres: pgConfig})
		if err != nil {
			log.Fatalf("Failed to open PostgreSQL database: %v", err)
		}
		defer pg.Close()
		dst = pg.DB()
	}

	// levels first: placements reference them
	tables := []struct {
		name    string
		migrate func(*sql.DB, *sql.DB, bool) (int64, error)
	}{
		{"levels", migrateLevels},
		{"placements", migratePlacements},
	}

	var totalRows int64
	for _, t := range tables {
		log.Printf("Migrating table: %s", t.name)
		count, err := t.migrate(src.DB(), dst, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", t.name, err)
		}
		log.Printf("  Migrated %d rows", count)
		totalRows += count
	}

	log.Println("====================================")
	log.Printf("Migration complete! Total rows migrated: %d", totalRows)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

func migrateLevels(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, name, seed, width, depth, floors, height_limits, tiles, pruned, occupied, created_at
		FROM levels
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, limits, tiles string
		var name sql.NullString
		var seed int64
		var width, depth, floors, pruned, occupied int
		var createdAt time.Time

		if err := rows.Scan(&id, &name, &seed, &width, &depth, &floors, &limits, &tiles, &pruned, &occupied, &createdAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}

		res, err := pg.Exec(`
			INSERT INTO levels (id, name, seed, width, depth, floors, height_limits, tiles, pruned, occupied, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO NOTHING
		`, id, name, seed, width, depth, floors, limits, tiles, pruned, occupied, createdAt)
		if err != nil {
			return count, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}

	return count, rows.Err()
}

func migratePlacements(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT level_id, seq, kind, cell_x, cell_y, cell_z, pos_x, pos_y, pos_z, yaw
		FROM placements
		ORDER BY level_id, seq
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var levelID, kind string
		var seq, cellX, cellY, cellZ int
		var posX, posY, posZ, yaw float64

		if err := rows.Scan(&levelID, &seq, &kind, &cellX, &cellY, &cellZ, &posX, &posY, &posZ, &yaw); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}

		res, err := pg.Exec(`
			INSERT INTO placements (level_id, seq, kind, cell_x, cell_y, cell_z, pos_x, pos_y, pos_z, yaw)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (level_id, seq) DO NOTHING
		`, levelID, seq, kind, cellX, cellY, cellZ, posX, posY, posZ, yaw)
		if err != nil {
			return count, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}

	return count, rows.Err()
}
