package equitytax

import "testing"

func TestLoadSalesFiltersAndOrders(t *testing.T) {
	repo := repoWith(nil, []*Sale{
		saleOn("s3", "2024-11-01", 1, 10),
		saleOn("s1", "2024-02-01", 1, 10),
		saleOn("s0", "2023-12-31", 1, 10),
		saleOn("s2", "2024-02-01", 1, 10), // same day as s1, ordered by id
	})

	sales, err := repo.LoadSales(2024)
	if err != nil {
		t.Fatalf("LoadSales failed: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("LoadSales(2024) returned %d sales, want 3", len(sales))
	}
	for i, want := range []string{"s1", "s2", "s3"} {
		if sales[i].ID != want {
			t.Errorf("sales[%d] = %s, want %s", i, sales[i].ID, want)
		}
	}
}

func TestSaveLotUpsert(t *testing.T) {
	repo := NewMemoryRepository()

	lot := lotOn("l1", "2024-01-10", 100, 10)
	if err := repo.SaveLot(lot); err != nil {
		t.Fatal(err)
	}

	updated := lotOn("l1", "2024-01-10", 100, 10)
	updated.Remaining = Q(60)
	if err := repo.SaveLot(updated); err != nil {
		t.Fatal(err)
	}

	lots, err := repo.LoadLots("ACME")
	if err != nil {
		t.Fatal(err)
	}
	if len(lots) != 1 {
		t.Fatalf("upsert produced %d lots, want 1", len(lots))
	}
	if !lots[0].Remaining.Equal(Q(60)) {
		t.Errorf("remaining = %s, want the updated 60", lots[0].Remaining)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	base := repoWith([]*Lot{lotOn("l1", "2024-01-10", 100, 10)}, nil)

	snap := base.Snapshot()
	snapLots, err := snap.LoadLots("ACME")
	if err != nil {
		t.Fatal(err)
	}
	snapLots[0].consume(Q(100))

	baseLots, err := base.LoadLots("ACME")
	if err != nil {
		t.Fatal(err)
	}
	if !baseLots[0].Remaining.Equal(Q(100)) {
		t.Errorf("consuming in a snapshot mutated the base: remaining = %s", baseLots[0].Remaining)
	}
}

func TestRepositoryEnumeration(t *testing.T) {
	globLot := lotOn("g1", "2023-05-01", 10, 1)
	globLot.Security = GLOB
	repo := repoWith(
		[]*Lot{lotOn("a2", "2024-06-01", 10, 1), globLot, lotOn("a1", "2024-01-10", 10, 1)},
		[]*Sale{saleOn("s1", "2024-09-01", 1, 10)},
	)

	lots := repo.Lots()
	if len(lots) != 3 {
		t.Fatalf("Lots() returned %d, want 3", len(lots))
	}
	// ordered by ticker, then acquisition date
	for i, want := range []string{"a1", "a2", "g1"} {
		if lots[i].ID != want {
			t.Errorf("lots[%d] = %s, want %s", i, lots[i].ID, want)
		}
	}
	if sales := repo.Sales(); len(sales) != 1 || sales[0].ID != "s1" {
		t.Errorf("Sales() = %v, want [s1]", sales)
	}
}
