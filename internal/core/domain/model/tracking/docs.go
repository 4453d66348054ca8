// Package tracking models courier location samples and delivery progress.
package tracking
