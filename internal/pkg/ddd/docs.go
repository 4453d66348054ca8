// Package ddd contains the small building blocks shared by aggregates: the
// domain event record and the recorder aggregates embed to collect events
// until the unit of work moves them into the outbox.
package ddd
