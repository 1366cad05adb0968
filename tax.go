package equitytax

// TaxInput is everything the tax engine needs for one computation.
type TaxInput struct {
	Year   int
	Status FilingStatus

	// Ordinary is ordinary income before the standard deduction: wages,
	// interest and non-qualified dividends. Realized gains go in the two
	// gain fields, never here, so a net loss stays subject to the cap.
	Ordinary Money
	// ShortTermGain is the net short-term capital gain, negative for a
	// loss. A gain is taxed as ordinary income.
	ShortTermGain Money
	// LongTermGain is the net long-term capital gain, negative for a loss.
	LongTermGain Money
	// InvestmentIncome is total net investment income for NIIT purposes.
	InvestmentIncome Money
	// AMTPreferences are preference items added to the AMT base, e.g. the
	// bargain element of ISO exercises.
	AMTPreferences Money
}

// TaxResult is the itemized liability the engine produces. Every component
// is rounded to cents; Total is the sum of the rounded components.
type TaxResult struct {
	Year   int
	Status FilingStatus

	TaxableOrdinary Money // federal taxable ordinary income after deductions

	OrdinaryTax Money
	LTCGTax     Money
	StateTax    Money
	NIIT        Money
	AMT         Money

	CapitalLossApplied   Money // net loss deducted against ordinary income this year
	CapitalLossCarryover Money // loss beyond the cap, carried to next year

	Total Money
}

// TaxEngine applies bracket tables to income components. All rate and
// threshold values come from the injected tables, never from this engine.
type TaxEngine struct {
	tables *TaxTables
}

// NewTaxEngine creates a tax engine over an immutable table set.
func NewTaxEngine(tables *TaxTables) *TaxEngine {
	return &TaxEngine{tables: tables}
}

// Compute returns the itemized liability for the input. It fails with a
// MissingBracketDataError when no tables exist for the requested year and
// filing status; that case is fatal, not recoverable.
func (e *TaxEngine) Compute(in TaxInput) (*TaxResult, error) {
	st, err := e.tables.Lookup(in.Year, in.Status)
	if err != nil {
		return nil, err
	}
	yt, err := e.tables.Year(in.Year)
	if err != nil {
		return nil, err
	}

	result := &TaxResult{Year: in.Year, Status: in.Status}

	// A loss on one side first offsets the gain on the other, per the
	// capital netting rules.
	short, long := in.ShortTermGain, in.LongTermGain
	if short.IsNegative() != long.IsNegative() {
		offset := minMoney(short.Abs(), long.Abs())
		if short.IsNegative() {
			short, long = short.Add(offset), long.Sub(offset)
		} else {
			short, long = short.Sub(offset), long.Add(offset)
		}
	}

	// Whatever nets to a loss is capped before it reduces ordinary
	// income; anything beyond the cap carries over to next year.
	if loss := short.Add(long).Neg(); loss.IsPositive() {
		result.CapitalLossApplied = minMoney(loss, st.CapitalLossCap)
		result.CapitalLossCarryover = loss.Sub(result.CapitalLossApplied)
		short, long = USD(0), USD(0)
	}
	gain := long

	// Short-term gains are taxed as ordinary income.
	ordinary := in.Ordinary.Add(short).Sub(result.CapitalLossApplied)
	result.TaxableOrdinary = zeroFloor(ordinary.Sub(st.StandardDeduction))

	ordinaryTax := st.Ordinary.Tax(result.TaxableOrdinary)

	// Long-term gains stack on top of ordinary income: the LTCG brackets
	// see ordinary income plus gain, only the gain slice is taxed here.
	ltcgTax := st.LTCG.StackedTax(result.TaxableOrdinary, gain)

	stateTaxable := zeroFloor(ordinary.Add(gain).Sub(st.StateStandardDeduction))
	stateTax := st.State.Tax(stateTaxable)

	niit := e.niit(in, ordinary, gain, st, yt)
	amt := e.amt(in, ordinary, gain, ordinaryTax.Add(ltcgTax), st, yt)

	result.OrdinaryTax = ordinaryTax.Round()
	result.LTCGTax = ltcgTax.Round()
	result.StateTax = stateTax.Round()
	result.NIIT = niit.Round()
	result.AMT = amt.Round()
	result.Total = result.OrdinaryTax.
		Add(result.LTCGTax).
		Add(result.StateTax).
		Add(result.NIIT).
		Add(result.AMT)
	return result, nil
}

// niit computes the Net Investment Income Tax: a flat rate on the lesser
// of net investment income and income over the filing-status threshold.
func (e *TaxEngine) niit(in TaxInput, ordinary, gain Money, st *StatusTables, yt *YearTables) Money {
	magi := ordinary.Add(gain)
	over := zeroFloor(magi.Sub(st.NIITThreshold))
	if over.IsZero() {
		return USD(0)
	}
	base := minMoney(zeroFloor(in.InvestmentIncome), over)
	return base.MulRate(yt.NIITRate)
}

// amt computes the Alternative Minimum Tax: exemption subtracted from the
// AMT-adjusted base, phased out above the phaseout start, the low/high
// rate split applied at the breakpoint, and the excess of the tentative
// minimum tax over regular tax (if positive) owed as AMT.
func (e *TaxEngine) amt(in TaxInput, ordinary, gain, regularTax Money, st *StatusTables, yt *YearTables) Money {
	// The standard deduction is not allowed against AMT, so the base
	// starts from income before it.
	base := ordinary.Add(gain).Add(in.AMTPreferences)

	exemption := st.AMTExemption.
		Sub(zeroFloor(base.Sub(st.AMTPhaseoutStart)).MulRate(yt.AMTPhaseoutRate))
	exemption = zeroFloor(exemption)

	amtTaxable := zeroFloor(base.Sub(exemption))
	breakpoint := yt.AMTRateBreakpoint[in.Status]

	var tentative Money
	if amtTaxable.LessThanOrEqual(breakpoint) {
		tentative = amtTaxable.MulRate(yt.AMTLowRate)
	} else {
		tentative = breakpoint.MulRate(yt.AMTLowRate).
			Add(amtTaxable.Sub(breakpoint).MulRate(yt.AMTHighRate))
	}

	return zeroFloor(tentative.Sub(regularTax))
}

// zeroFloor clamps a negative amount to zero.
func zeroFloor(m Money) Money {
	if m.IsNegative() {
		return USD(0)
	}
	return m
}
