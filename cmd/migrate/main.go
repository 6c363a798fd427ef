package main

import (
	"fmt"
	"log"
	"os"

	"cascade-softdelete/internal/bootstrap"
	"cascade-softdelete/internal/model"
	"cascade-softdelete/pkg/database"
	"cascade-softdelete/pkg/softdelete/descriptor"

	"github.com/joho/godotenv"
	"gorm.io/gorm/schema"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Every migrated table must be declared in the soft delete graph
	graph, err := bootstrap.NewExampleGraph()
	if err != nil {
		log.Fatalf("Error: Invalid soft delete graph: %v", err)
	}

	models := model.ExampleModels()
	for _, m := range models {
		tabler, ok := m.(schema.Tabler)
		if !ok {
			log.Fatalf("Error: Model %T has no table name", m)
		}
		t, err := graph.TypeForModel(tabler)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		log.Printf("Table %s: %s soft delete (%s)", t.Table, t.Capability, t.Name)
	}

	// 4. AutoMigrate the soft delete aware tables
	log.Printf("Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Partial indexes back the level one listing of cascade roots
	for _, sql := range deleteRootIndexes(graph) {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

func deleteRootIndexes(graph *descriptor.Graph) []string {
	var stmts []string
	for _, t := range graph.Types() {
		if t.Capability != descriptor.CapabilityCascade {
			continue
		}
		stmts = append(stmts, fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_delete_root ON %s (%s) WHERE %s = 1;",
			t.Table, t.Table, t.KeyColumn, t.FlagColumn,
		))
	}
	return stmts
}
