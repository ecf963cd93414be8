package shelf_test

import (
	"math"
	"testing"

	"shelf-go/internal/model"
	"shelf-go/internal/shelf"
)

func TestAggregate(t *testing.T) {
	t.Run("counts sum to total", func(t *testing.T) {
		items := []model.Item{
			{ID: "1", Name: "A", ExpiryDate: "2024-01-10", CreatedAt: 1}, // expired
			{ID: "2", Name: "B", ExpiryDate: "2024-01-15", CreatedAt: 2}, // critical
			{ID: "3", Name: "C", ExpiryDate: "2024-01-18", CreatedAt: 3}, // warning
			{ID: "4", Name: "D", ExpiryDate: "2024-01-25", CreatedAt: 4}, // approaching
			{ID: "5", Name: "E", ExpiryDate: "2024-06-01", CreatedAt: 5}, // safe
			{ID: "6", Name: "F", ExpiryDate: "2024-06-02", CreatedAt: 6}, // safe
		}

		stats := shelf.Aggregate(items, today)

		if stats.Total != 6 {
			t.Errorf("Total = %d, want 6", stats.Total)
		}
		sum := 0
		for _, n := range stats.CountsByStatus {
			sum += n
		}
		if sum != stats.Total {
			t.Errorf("sum of counts = %d, want %d", sum, stats.Total)
		}
		want := map[shelf.Status]int{
			shelf.StatusExpired:     1,
			shelf.StatusCritical:    1,
			shelf.StatusWarning:     1,
			shelf.StatusApproaching: 1,
			shelf.StatusSafe:        2,
		}
		for s, n := range want {
			if stats.CountsByStatus[s] != n {
				t.Errorf("CountsByStatus[%s] = %d, want %d", s, stats.CountsByStatus[s], n)
			}
		}
	})

	t.Run("critical count follows alarm level", func(t *testing.T) {
		items := []model.Item{
			{ID: "1", Name: "A", ExpiryDate: "2024-01-10", CreatedAt: 1}, // expired, level 3
			{ID: "2", Name: "B", ExpiryDate: "2024-01-15", CreatedAt: 2}, // critical, level 3
			{ID: "3", Name: "C", ExpiryDate: "2024-01-18", CreatedAt: 3}, // warning, level 2
			{ID: "4", Name: "D", ExpiryDate: "2024-01-25", CreatedAt: 4}, // approaching, level 1
		}

		stats := shelf.Aggregate(items, today)

		if stats.CriticalCount != 3 {
			t.Errorf("CriticalCount = %d, want 3", stats.CriticalCount)
		}
		if got, want := stats.HealthRatio, 0.25; math.Abs(got-want) > 1e-9 {
			t.Errorf("HealthRatio = %v, want %v", got, want)
		}
	})

	t.Run("empty inventory", func(t *testing.T) {
		stats := shelf.Aggregate(nil, today)

		if stats.Total != 0 {
			t.Errorf("Total = %d, want 0", stats.Total)
		}
		if stats.HealthRatio != 1.0 {
			t.Errorf("HealthRatio = %v, want 1.0", stats.HealthRatio)
		}
		if len(stats.CountsByStatus) != len(shelf.Statuses) {
			t.Fatalf("CountsByStatus has %d entries, want %d", len(stats.CountsByStatus), len(shelf.Statuses))
		}
		for _, s := range shelf.Statuses {
			if n, ok := stats.CountsByStatus[s]; !ok || n != 0 {
				t.Errorf("CountsByStatus[%s] = %d, %v; want 0, true", s, n, ok)
			}
		}
	})

	t.Run("all healthy", func(t *testing.T) {
		items := []model.Item{
			{ID: "1", Name: "A", ExpiryDate: "2024-06-01", CreatedAt: 1},
			{ID: "2", Name: "B", ExpiryDate: "2024-01-25", CreatedAt: 2},
		}

		stats := shelf.Aggregate(items, today)

		if stats.CriticalCount != 0 {
			t.Errorf("CriticalCount = %d, want 0", stats.CriticalCount)
		}
		if stats.HealthRatio != 1.0 {
			t.Errorf("HealthRatio = %v, want 1.0", stats.HealthRatio)
		}
	})
}
