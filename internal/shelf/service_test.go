package shelf_test

import (
	"errors"
	"strings"
	"testing"

	"shelf-go/internal/shelf"
	"shelf-go/internal/testutil"
)

func newTestService(t *testing.T) (*shelf.ShelfService, *testutil.RecorderSink, *testutil.StubClock) {
	t.Helper()
	clock := testutil.FixedClock()
	store := shelf.NewStore(testutil.NewTestBlobStore(), shelf.NopLogger{}, clock, testutil.NewStubIDGenerator())
	store.Load()
	sink := testutil.NewRecorderSink()
	svc := shelf.NewShelfService(store, testutil.NewTestDatabase(t), sink, shelf.NopLogger{}, clock)
	return svc, sink, clock
}

func TestShelfService_BeepLevels(t *testing.T) {
	t.Run("add beeps softly", func(t *testing.T) {
		svc, sink, _ := newTestService(t)

		if _, err := svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")}); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if got := sink.Beeps(); len(got) != 1 || got[0] != shelf.BeepSoft {
			t.Errorf("Beeps() = %v, want [%d]", got, shelf.BeepSoft)
		}
	})

	t.Run("update beeps softly", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		item, _ := svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})

		if _, err := svc.UpdateItem(item.ID, shelf.ItemInput{Notes: str("fresh")}); err != nil {
			t.Fatalf("UpdateItem() error = %v", err)
		}
		if got := sink.Beeps(); len(got) != 2 || got[1] != shelf.BeepSoft {
			t.Errorf("Beeps() = %v, want second beep %d", got, shelf.BeepSoft)
		}
	})

	t.Run("delete beeps noticeably", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		item, _ := svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})

		if err := svc.DeleteItem(item.ID); err != nil {
			t.Fatalf("DeleteItem() error = %v", err)
		}
		if got := sink.Beeps(); len(got) != 2 || got[1] != shelf.BeepNoticeable {
			t.Errorf("Beeps() = %v, want second beep %d", got, shelf.BeepNoticeable)
		}
	})

	t.Run("failed mutation stays silent", func(t *testing.T) {
		svc, sink, _ := newTestService(t)

		if err := svc.DeleteItem("nope"); !errors.Is(err, shelf.ErrNotFound) {
			t.Fatalf("DeleteItem() error = %v, want ErrNotFound", err)
		}
		if got := sink.Beeps(); len(got) != 0 {
			t.Errorf("Beeps() = %v, want none", got)
		}
	})
}

func TestShelfService_ListItems(t *testing.T) {
	t.Run("unfiltered list is silent", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})
		before := len(sink.Beeps())

		svc.ListItems("", shelf.FilterAll)
		if got := sink.Beeps(); len(got) != before {
			t.Errorf("Beeps() = %v, want no new beeps", got)
		}
	})

	t.Run("active filter beeps noticeably", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})
		before := len(sink.Beeps())

		got := svc.ListItems("", shelf.FilterStatus(shelf.StatusWarning))
		if len(got) != 1 {
			t.Fatalf("ListItems() returned %d items, want 1", len(got))
		}
		beeps := sink.Beeps()
		if len(beeps) != before+1 || beeps[len(beeps)-1] != shelf.BeepNoticeable {
			t.Errorf("Beeps() = %v, want trailing %d", beeps, shelf.BeepNoticeable)
		}
	})
}

func TestShelfService_CheckAlarms(t *testing.T) {
	t.Run("fires once per item per run", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Old Milk"), ExpiryDate: str("2024-01-14")}) // expired
		svc.AddItem(shelf.ItemInput{Name: str("Yogurt"), ExpiryDate: str("2024-01-15")})   // critical
		svc.AddItem(shelf.ItemInput{Name: str("Beans"), ExpiryDate: str("2024-06-01")})    // safe

		fired := svc.CheckAlarms()
		if len(fired) != 2 {
			t.Fatalf("CheckAlarms() fired %d alarms, want 2", len(fired))
		}

		alerts := sink.Alerts()
		if len(alerts) != 2 {
			t.Fatalf("Alerts() = %d, want 2", len(alerts))
		}
		if alerts[0].Title != "Expiry alert" {
			t.Errorf("alert title = %q, want %q", alerts[0].Title, "Expiry alert")
		}
		if !strings.Contains(alerts[0].Body, "Old Milk") {
			t.Errorf("alert body = %q, want it to name the item", alerts[0].Body)
		}

		// Repeat check stays quiet.
		if again := svc.CheckAlarms(); len(again) != 0 {
			t.Errorf("second CheckAlarms() fired %d alarms, want 0", len(again))
		}
		if got := sink.Alerts(); len(got) != 2 {
			t.Errorf("Alerts() after repeat = %d, want 2", len(got))
		}
	})

	t.Run("urgent beep accompanies each alert", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Old Milk"), ExpiryDate: str("2024-01-10")})
		before := len(sink.Beeps())

		svc.CheckAlarms()
		beeps := sink.Beeps()
		if len(beeps) != before+1 || beeps[len(beeps)-1] != shelf.BeepUrgent {
			t.Errorf("Beeps() = %v, want trailing %d", beeps, shelf.BeepUrgent)
		}
	})

	t.Run("new urgent items fire on later checks", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Old Milk"), ExpiryDate: str("2024-01-10")})

		svc.CheckAlarms()
		svc.AddItem(shelf.ItemInput{Name: str("Expired Cream"), ExpiryDate: str("2024-01-12")})

		fired := svc.CheckAlarms()
		if len(fired) != 1 || fired[0].Item.Name != "Expired Cream" {
			t.Fatalf("CheckAlarms() fired %v, want only the new item", fired)
		}
		if got := sink.Alerts(); len(got) != 2 {
			t.Errorf("Alerts() = %d, want 2", len(got))
		}
	})

	t.Run("warning level does not alarm", func(t *testing.T) {
		svc, sink, _ := newTestService(t)
		svc.AddItem(shelf.ItemInput{Name: str("Yogurt"), ExpiryDate: str("2024-01-18")})

		if fired := svc.CheckAlarms(); len(fired) != 0 {
			t.Errorf("CheckAlarms() fired %d alarms, want 0", len(fired))
		}
		if got := sink.Alerts(); len(got) != 0 {
			t.Errorf("Alerts() = %d, want 0", len(got))
		}
	})
}

func TestShelfService_GetItem(t *testing.T) {
	svc, _, _ := newTestService(t)
	item, _ := svc.AddItem(shelf.ItemInput{Name: str("Milk"), ExpiryDate: str("2024-01-20")})

	got, err := svc.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if got.Name != "Milk" {
		t.Errorf("Name = %q, want %q", got.Name, "Milk")
	}

	if _, err := svc.GetItem("nope"); !errors.Is(err, shelf.ErrNotFound) {
		t.Errorf("GetItem(nope) error = %v, want ErrNotFound", err)
	}
}

func TestShelfService_Stats(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.AddItem(shelf.ItemInput{Name: str("Old Milk"), ExpiryDate: str("2024-01-10")})
	svc.AddItem(shelf.ItemInput{Name: str("Beans"), ExpiryDate: str("2024-06-01")})

	stats := svc.Stats()
	if stats.Total != 2 {
		t.Errorf("Total = %d, want 2", stats.Total)
	}
	if stats.CriticalCount != 1 {
		t.Errorf("CriticalCount = %d, want 1", stats.CriticalCount)
	}
}
