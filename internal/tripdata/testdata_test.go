package tripdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const rawTripsCSV = `trip_id,start_time,end_time,bikeid,tripduration,from_station_id,from_station_name,to_station_id,to_station_name,usertype,gender,birthyear
23479388,2019-07-25 00:00:12,2019-07-25 00:06:42,2402,390.0,77,Clinton St & Madison St,199,Wabash Ave & Grand Ave,Subscriber,Male,1989
23479389,2019-07-25 00:01:05,2019-07-25 00:21:05,5480,"1,200.0",35,Streeter Dr & Grand Ave,35,Streeter Dr & Grand Ave,Customer,,
23479390,2019-07-24 23:55:00,2019-07-25 00:10:00,1010,900.0,77,Clinton St & Madison St,35,Streeter Dr & Grand Ave,Subscriber,Female,1990
23479391,2019-07-25 23:50:00,2019-07-26 00:05:00,1011,900.0,199,Wabash Ave & Grand Ave,77,Clinton St & Madison St,Subscriber,Male,1985
23479392,2019-07-25 08:00:00,2019-07-25 08:10:00,,600.0,199,Wabash Ave & Grand Ave,77,Clinton St & Madison St,Subscriber,Male,1985
23479393,2019-07-25 07:30:00,2019-07-25 07:40:00,2402,600.0,199,Wabash Ave & Grand Ave,999,Unknown,Subscriber,Male,1985
23479394,2019-07-25 07:15:00,2019-07-25 07:20:00,1012,250.0,35,Streeter Dr & Grand Ave,77,Clinton St & Madison St,Subscriber,Female,1992
`

const rawStationsCSV = `data__stations__station_id,data__stations__name,data__stations__lon,data__stations__lat,data__stations__capacity
77,Clinton St & Madison St,-87.640552,41.882242,23
199,Wabash Ave & Grand Ave,-87.626804,41.891466,15
35,Streeter Dr & Grand Ave,-87.612043,41.892278,47
`

func testWindow(t *testing.T) Window {
	t.Helper()
	w, err := NewWindow("2019-07-25 00:00:00", "2019-07-26 00:00:00", "2006-01-02 15:04:05")
	require.NoError(t, err)
	return w
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	return v
}
