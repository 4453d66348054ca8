// Package order contains the Order aggregate and its fulfillment state machine.
//
// An order is created in preparing with its payment pending. The merchant marks
// it ready, exactly one courier claims it (ready -> pickup), the same courier
// delivers it, and an admin or the settlement job completes it. Cancellation is
// allowed from preparing, ready and pickup depending on who asks. Every change
// records a domain event that ends up in the outbox.
package order
