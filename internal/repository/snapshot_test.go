package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/cleberrangel/burndown-api/internal/model"
)

func seedSnapshot(t *testing.T, db *sql.DB, milestone, date, itemID string, closed bool, hours, effort float64) {
	t.Helper()
	mustExec(t, db, `
		INSERT INTO item_snapshots (milestone, snapshot_date, item_id, item_type, closed, remaining_hours, effort)
		VALUES ($1, $2, $3, 'task', $4, $5, $6)
	`, milestone, date, itemID, closed, hours, effort)
}

func queryWindow() (time.Time, time.Time) {
	return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
}

// TestQueryRemainingExcludesClosed garante que itens fechados nunca
// entram no agregado, em nenhuma unidade
func TestQueryRemainingExcludesClosed(t *testing.T) {
	db := setupTestDB(t)
	seedSnapshot(t, db, "v1.0", "2024-05-01", "T-1", false, 4, 3)
	seedSnapshot(t, db, "v1.0", "2024-05-01", "T-2", false, 6, 5)
	seedSnapshot(t, db, "v1.0", "2024-05-01", "T-3", true, 2, 8)

	repo := NewSnapshotRepository(db)
	from, to := queryWindow()

	items, err := repo.QueryRemaining([]string{"v1.0"}, model.UnitItems, from, to)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(items) != 1 || items[0].Value != 2 {
		t.Errorf("items: esperado [2], veio %v", items)
	}

	hours, err := repo.QueryRemaining([]string{"v1.0"}, model.UnitHours, from, to)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(hours) != 1 || hours[0].Value != 10 {
		t.Errorf("hours: esperado [10], veio %v", hours)
	}

	points, err := repo.QueryRemaining([]string{"v1.0"}, model.UnitPoints, from, to)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(points) != 1 || points[0].Value != 8 {
		t.Errorf("points: esperado [8], veio %v", points)
	}
}

// TestQueryRemainingAggregatesScope soma os snapshots de todos os
// milestones do escopo, ordenados por data
func TestQueryRemainingAggregatesScope(t *testing.T) {
	db := setupTestDB(t)
	seedSnapshot(t, db, "v1.0", "2024-05-01", "T-1", false, 4, 0)
	seedSnapshot(t, db, "v1.0-backend", "2024-05-01", "T-2", false, 6, 0)
	seedSnapshot(t, db, "v1.0", "2024-05-03", "T-1", false, 2, 0)
	// Fora do escopo
	seedSnapshot(t, db, "v2.0", "2024-05-01", "T-9", false, 100, 0)

	repo := NewSnapshotRepository(db)
	from, to := queryWindow()

	curve, err := repo.QueryRemaining([]string{"v1.0", "v1.0-backend"}, model.UnitHours, from, to)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(curve) != 2 {
		t.Fatalf("esperado 2 dias com snapshots, veio %d", len(curve))
	}
	if curve[0].Value != 10 || curve[1].Value != 2 {
		t.Errorf("esperado [10 2], veio [%v %v]", curve[0].Value, curve[1].Value)
	}
	if !curve[0].Date.Before(curve[1].Date) {
		t.Error("curva deveria ser ascendente por data")
	}
}

func TestQueryRemainingEmptyScope(t *testing.T) {
	db := setupTestDB(t)
	seedSnapshot(t, db, "v1.0", "2024-05-01", "T-1", false, 4, 0)

	repo := NewSnapshotRepository(db)
	from, to := queryWindow()

	curve, err := repo.QueryRemaining([]string{"outro"}, model.UnitItems, from, to)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(curve) != 0 {
		t.Errorf("esperado curva vazia, veio %v", curve)
	}
}
