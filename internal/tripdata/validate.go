package tripdata

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bikeshare-cli/internal/model"
)

// ErrTimeWindow is returned when a trip falls outside the expected date.
var ErrTimeWindow = eris.New("data error: time range incorrect")

// CheckTimeWindow returns ErrTimeWindow if any trip starts or ends on a day
// other than date. date may be a plain date or a full timestamp; only its
// calendar day is used. An empty date disables the check.
func CheckTimeWindow[T model.TripRecord](trips []T, date string) error {
	if date == "" {
		return nil
	}
	day, err := parseDay(date)
	if err != nil {
		return err
	}

	for _, r := range trips {
		t := r.Base()
		if !sameDay(t.StartTime.Time, day) || !sameDay(t.EndTime.Time, day) {
			return eris.Wrapf(ErrTimeWindow, "trip %d runs %s to %s, expected %s",
				t.TripID, t.StartTime, t.EndTime, day.Format(time.DateOnly))
		}
	}
	return nil
}

func parseDay(date string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, model.TimeLayout} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("tripdata: parse date %q", date)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
