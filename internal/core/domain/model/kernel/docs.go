// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain: identifiers, coordinates, money and the acting principal.
package kernel
