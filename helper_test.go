package equitytax

var (
	ACME = Security{Ticker: "ACME", Name: "Acme Corp"}
	GLOB = Security{Ticker: "GLOB", Name: "Globex"}
)

// lotOn is a helper for tests to create an open RSU lot from consts.
func lotOn(id, acquired string, shares, costPerShare float64) *Lot {
	q := Q(shares)
	return &Lot{
		ID:           id,
		Equity:       RSU,
		Security:     ACME,
		Acquired:     MustParseDate(acquired),
		Shares:       q,
		CostPerShare: USD(costPerShare),
		Remaining:    q,
	}
}

// saleOn is a helper for tests to create a sale from consts. The reported
// acquisition date is left absent.
func saleOn(id, saleDate string, shares, proceedsPerShare float64) *Sale {
	return &Sale{
		ID:               id,
		Security:         ACME,
		Equity:           RSU,
		SaleDate:         MustParseDate(saleDate),
		Shares:           Q(shares),
		ProceedsPerShare: USD(proceedsPerShare),
	}
}

// repoWith is a helper for tests to build an in-memory repository.
func repoWith(lots []*Lot, sales []*Sale) *MemoryRepository {
	repo := NewMemoryRepository()
	for _, l := range lots {
		if err := repo.SaveLot(l); err != nil {
			panic(err.Error())
		}
	}
	for _, s := range sales {
		if err := repo.SaveSale(s); err != nil {
			panic(err.Error())
		}
	}
	return repo
}
