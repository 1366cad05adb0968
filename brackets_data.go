package equitytax

import "github.com/shopspring/decimal"

// Pure data: federal and California tables for tax years 2024 and 2025.
// Values are per the IRS revenue procedures and FTB inflation adjustments
// for each year. No logic lives here beyond the construction helpers.

func rate(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bracket(upper float64, r string) Bracket {
	return Bracket{Upper: USD(upper), Rate: rate(r)}
}

func top(r string) Bracket { return Bracket{Rate: rate(r), Unbounded: true} }

func mustSchedule(brackets ...Bracket) Schedule {
	s, err := NewSchedule(brackets...)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// DefaultTaxTables returns the shipped bracket tables.
func DefaultTaxTables() *TaxTables {
	return NewTaxTables(year2024(), year2025())
}

func year2024() *YearTables {
	return &YearTables{
		Year:            2024,
		AMTLowRate:      rate("0.26"),
		AMTHighRate:     rate("0.28"),
		AMTPhaseoutRate: rate("0.25"),
		NIITRate:        rate("0.038"),
		AMTRateBreakpoint: map[FilingStatus]Money{
			Single:                  USD(232600),
			MarriedFilingJointly:    USD(232600),
			MarriedFilingSeparately: USD(116300),
			HeadOfHousehold:         USD(232600),
		},
		Statuses: map[FilingStatus]StatusTables{
			Single: {
				Ordinary: mustSchedule(
					bracket(11600, "0.10"), bracket(47150, "0.12"), bracket(100525, "0.22"),
					bracket(191950, "0.24"), bracket(243725, "0.32"), bracket(609350, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(47025, "0"), bracket(518900, "0.15"), top("0.20")),
				State:                  caSchedule2024(1),
				StandardDeduction:      USD(14600),
				StateStandardDeduction: USD(5540),
				AMTExemption:           USD(85700),
				AMTPhaseoutStart:       USD(609350),
				NIITThreshold:          USD(200000),
				CapitalLossCap:         USD(3000),
			},
			MarriedFilingJointly: {
				Ordinary: mustSchedule(
					bracket(23200, "0.10"), bracket(94300, "0.12"), bracket(201050, "0.22"),
					bracket(383900, "0.24"), bracket(487450, "0.32"), bracket(731200, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(94050, "0"), bracket(583750, "0.15"), top("0.20")),
				State:                  caSchedule2024(2),
				StandardDeduction:      USD(29200),
				StateStandardDeduction: USD(11080),
				AMTExemption:           USD(133300),
				AMTPhaseoutStart:       USD(1218700),
				NIITThreshold:          USD(250000),
				CapitalLossCap:         USD(3000),
			},
			MarriedFilingSeparately: {
				Ordinary: mustSchedule(
					bracket(11600, "0.10"), bracket(47150, "0.12"), bracket(100525, "0.22"),
					bracket(191950, "0.24"), bracket(243725, "0.32"), bracket(365600, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(47025, "0"), bracket(291850, "0.15"), top("0.20")),
				State:                  caSchedule2024(1),
				StandardDeduction:      USD(14600),
				StateStandardDeduction: USD(5540),
				AMTExemption:           USD(66650),
				AMTPhaseoutStart:       USD(609350),
				NIITThreshold:          USD(125000),
				CapitalLossCap:         USD(1500),
			},
			HeadOfHousehold: {
				Ordinary: mustSchedule(
					bracket(16550, "0.10"), bracket(63100, "0.12"), bracket(100500, "0.22"),
					bracket(191950, "0.24"), bracket(243700, "0.32"), bracket(609350, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(63000, "0"), bracket(551350, "0.15"), top("0.20")),
				State:                  caHoHSchedule2024(),
				StandardDeduction:      USD(21900),
				StateStandardDeduction: USD(11080),
				AMTExemption:           USD(85700),
				AMTPhaseoutStart:       USD(609350),
				NIITThreshold:          USD(200000),
				CapitalLossCap:         USD(3000),
			},
		},
	}
}

func year2025() *YearTables {
	return &YearTables{
		Year:            2025,
		AMTLowRate:      rate("0.26"),
		AMTHighRate:     rate("0.28"),
		AMTPhaseoutRate: rate("0.25"),
		NIITRate:        rate("0.038"),
		AMTRateBreakpoint: map[FilingStatus]Money{
			Single:                  USD(239100),
			MarriedFilingJointly:    USD(239100),
			MarriedFilingSeparately: USD(119550),
			HeadOfHousehold:         USD(239100),
		},
		Statuses: map[FilingStatus]StatusTables{
			Single: {
				Ordinary: mustSchedule(
					bracket(11925, "0.10"), bracket(48475, "0.12"), bracket(103350, "0.22"),
					bracket(197300, "0.24"), bracket(250525, "0.32"), bracket(626350, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(48350, "0"), bracket(533400, "0.15"), top("0.20")),
				State:                  caSchedule2025(1),
				StandardDeduction:      USD(15000),
				StateStandardDeduction: USD(5707),
				AMTExemption:           USD(88100),
				AMTPhaseoutStart:       USD(626350),
				NIITThreshold:          USD(200000),
				CapitalLossCap:         USD(3000),
			},
			MarriedFilingJointly: {
				Ordinary: mustSchedule(
					bracket(23850, "0.10"), bracket(96950, "0.12"), bracket(206700, "0.22"),
					bracket(394600, "0.24"), bracket(501050, "0.32"), bracket(751600, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(96700, "0"), bracket(600050, "0.15"), top("0.20")),
				State:                  caSchedule2025(2),
				StandardDeduction:      USD(30000),
				StateStandardDeduction: USD(11414),
				AMTExemption:           USD(137000),
				AMTPhaseoutStart:       USD(1252700),
				NIITThreshold:          USD(250000),
				CapitalLossCap:         USD(3000),
			},
			MarriedFilingSeparately: {
				Ordinary: mustSchedule(
					bracket(11925, "0.10"), bracket(48475, "0.12"), bracket(103350, "0.22"),
					bracket(197300, "0.24"), bracket(250525, "0.32"), bracket(375800, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(48350, "0"), bracket(300000, "0.15"), top("0.20")),
				State:                  caSchedule2025(1),
				StandardDeduction:      USD(15000),
				StateStandardDeduction: USD(5707),
				AMTExemption:           USD(68500),
				AMTPhaseoutStart:       USD(626350),
				NIITThreshold:          USD(125000),
				CapitalLossCap:         USD(1500),
			},
			HeadOfHousehold: {
				Ordinary: mustSchedule(
					bracket(17000, "0.10"), bracket(64850, "0.12"), bracket(103350, "0.22"),
					bracket(197300, "0.24"), bracket(250500, "0.32"), bracket(626350, "0.35"), top("0.37")),
				LTCG:                   mustSchedule(bracket(64750, "0"), bracket(566700, "0.15"), top("0.20")),
				State:                  caHoHSchedule2025(),
				StandardDeduction:      USD(22500),
				StateStandardDeduction: USD(11414),
				AMTExemption:           USD(88100),
				AMTPhaseoutStart:       USD(626350),
				NIITThreshold:          USD(200000),
				CapitalLossCap:         USD(3000),
			},
		},
	}
}

// caSchedule2024 scales the California single-filer thresholds; joint
// filers use exactly doubled bounds.
func caSchedule2024(mult float64) Schedule {
	return mustSchedule(
		bracket(10756*mult, "0.01"), bracket(25499*mult, "0.02"), bracket(40245*mult, "0.04"),
		bracket(55866*mult, "0.06"), bracket(70606*mult, "0.08"), bracket(360659*mult, "0.093"),
		bracket(432787*mult, "0.103"), bracket(721314*mult, "0.113"), top("0.123"))
}

func caHoHSchedule2024() Schedule {
	return mustSchedule(
		bracket(21527, "0.01"), bracket(51000, "0.02"), bracket(65744, "0.04"),
		bracket(81364, "0.06"), bracket(96107, "0.08"), bracket(490493, "0.093"),
		bracket(588593, "0.103"), bracket(980987, "0.113"), top("0.123"))
}

func caSchedule2025(mult float64) Schedule {
	return mustSchedule(
		bracket(11079*mult, "0.01"), bracket(26264*mult, "0.02"), bracket(41452*mult, "0.04"),
		bracket(57541*mult, "0.06"), bracket(72724*mult, "0.08"), bracket(371478*mult, "0.093"),
		bracket(445770*mult, "0.103"), bracket(742955*mult, "0.113"), top("0.123"))
}

func caHoHSchedule2025() Schedule {
	return mustSchedule(
		bracket(22173, "0.01"), bracket(52527, "0.02"), bracket(67717, "0.04"),
		bracket(83808, "0.06"), bracket(98994, "0.08"), bracket(505197, "0.093"),
		bracket(606243, "0.103"), bracket(1010394, "0.113"), top("0.123"))
}
