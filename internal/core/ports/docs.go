// Package ports declares what the application core needs from the outside:
// persistence behind a unit of work, the order cache, the location store,
// the catalog, the geocoder and the event publisher.
package ports
