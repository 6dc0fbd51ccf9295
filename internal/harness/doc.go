// Package harness runs fixture sets against functions under test.
//
// The harness resolves which fixture set applies to a function, invokes the
// function once per case, compares the outcome with the case's expectation and
// prints one verdict line per case:
//
//	✅ TEST 0
//	❌ TEST 1 | arguments: ([1, 2, 3], (1, 3), 5) | expected: [1, 2, 3] | obtained: [1, 5]
//	The pair may not be present in the list.
//
// # Outcomes
//
// A case expecting an error kind passes when the function returns (or panics
// with) a matching error. A different error, or no error, is a recorded
// failure and the batch continues.
//
// A case expecting a value passes when the result is structurally equal to the
// expected value; nil and empty slices or maps are equal. A mismatch is a
// recorded failure. An error or panic on such a case is treated as a crash of
// the function under test: the hint is printed with a ❗ prefix and the error
// is returned as is, aborting the remaining cases.
//
// A batch with recorded failures returns a *BatchError carrying the count.
//
// # Dispatch
//
// Fixture sets are selected by an explicit keyword or inferred from the
// function's name: the first keyword of the catalog that occurs in the name,
// ignoring case, wins.
//
//	err := harness.Test(reference.MergePair, "")        // inferred: "merge"
//	err = harness.Test(harness.Named("f", fn), "decode") // explicit
//
// # Deterministic Output
//
// Values are rendered with sorted map keys so diagnostics are identical
// across runs and can be compared against golden files (see RunWithGolden).
package harness
