package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2-simulator/internal/config"
)

const feed = `{"teams": {
	"Vitality": [{"name": "ZywOo", "rating": 97}, {"name": "apEX", "rating": 82}],
	"Astralis": [{"name": "device", "rating": 88}]
}}`

func TestDecodeTeamsFile(t *testing.T) {
	f, err := DecodeTeamsFile([]byte(feed))
	require.NoError(t, err)

	teams := f.SortedTeams()
	require.Len(t, teams, 2)
	assert.Equal(t, "Astralis", teams[0].Name)
	assert.Equal(t, []FeedPlayer{{Name: "ZywOo", Rating: 97}, {Name: "apEX", Rating: 82}}, teams[1].Players)
}

func TestDecodeTeamsFile_Rejects(t *testing.T) {
	for name, doc := range map[string]string{
		"malformed":      `{"teams": [`,
		"nameless team":  `{"teams": {" ": []}}`,
		"nameless entry": `{"teams": {"G2": [{"rating": 80}]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTeamsFile([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRosterClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	client := NewRosterClient(&config.Config{RosterFeedURL: srv.URL + "/teams.json"})

	f, err := client.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, f.Teams, 2)

	_, err = client.Fetch(context.Background(), srv.URL+"/missing.json")
	assert.ErrorContains(t, err, "404")
}

func TestRosterClient_NoURL(t *testing.T) {
	client := NewRosterClient(&config.Config{})
	_, err := client.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoFeedURL)
}
