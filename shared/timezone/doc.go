// Package timezone pins every timestamp the service produces to one IANA
// location, set from APP_TIMEZONE through Init. Until Init runs, or when the
// name cannot be loaded, the location is UTC.
//
// Booking schedules are parsed with Parse so that a pickup of
// "2025-03-01 09:00" means 09:00 at the rental office, not on the server.
package timezone
