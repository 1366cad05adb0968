// Package equitytax computes an individual's tax liability on equity
// compensation (RSU, ISO, ESPP) and investment income, and reconciles
// broker-reported sale transactions against known acquisition lots to
// produce IRS-correct capital gain and loss figures. It is designed to be
// local-first and auditable: every number in a result can be traced back to
// a lot, a sale, or a bracket table entry.
//
// The core functionalities include:
//   - Reconciliation: matching every sale of a tax year to the lots that
//     funded it (FIFO), synthesizing a best-effort lot when no acquisition
//     record exists, and classifying every data deficiency encountered
//     along the way into an actionable DataGapReport.
//   - Tax Computation: applying progressive federal and state bracket
//     tables, long-term capital gains stacking, the Net Investment Income
//     Tax, the Alternative Minimum Tax, and capital-loss-carryover limits
//     to produce an itemized liability.
//   - Bracket Tables: versioned-by-year, keyed-by-filing-status rate
//     tables, validated at construction and immutable afterwards.
//   - Data Persistence: encoding and decoding of equity events, lots and
//     sales to and from human-readable JSONL, plus a SQLite-backed
//     repository in the store subpackage.
//
// This package serves as the foundational logic for the `ect` command-line
// tool. All monetary arithmetic is exact: values flow through the Money and
// Quantity wrappers around shopspring decimals, never through floats.
package equitytax
