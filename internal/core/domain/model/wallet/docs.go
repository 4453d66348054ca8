// Package wallet models the buyer ledger: a non-negative balance and the
// append-only transactions that explain it. The sum of completed transaction
// amounts always equals the balance.
package wallet
