package testutil

// Helpers and configuration for tests.

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flyer26/zet-display/parse"
)

// BuildZip assembles an in-memory zip archive from a map of filename
// to lines of content.
func BuildZip(t testing.TB, files map[string][]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// BuildFeed zips the given files, filling in blank required tables,
// and opens the result as a static feed.
func BuildFeed(t testing.TB, files map[string][]string) *parse.StaticFeed {
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id,stop_name,stop_lat,stop_lon"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id,route_id,service_id"}
	}

	feed, err := parse.OpenStatic(BuildZip(t, files))
	require.NoError(t, err)

	return feed
}
