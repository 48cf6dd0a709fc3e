package timezone

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation atomic.Pointer[time.Location]

// Init loads name as the application location. An empty name selects UTC,
// an unknown one falls back to UTC and is reported.
func Init(name string) error {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		appLocation.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		appLocation.Store(time.UTC)

		return fmt.Errorf("failed to load timezone %q, use IANA names like Asia/Jakarta: %w", name, err)
	}

	appLocation.Store(loc)

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return nil
}

func Location() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(Location())
}

// Parse reads value as a wall clock time in the application location.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
