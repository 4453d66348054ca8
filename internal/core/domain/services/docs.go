// Package services holds domain services that span aggregates. The ledger
// moves money between wallets and orders, the checkout splitter turns a cart
// into per-merchant order groups, and the progress estimator reports how far
// a delivery has come.
package services
