package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/locmeta/pkg/site"
	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

func TestFetchProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octo" {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte(`{"login":"octo","public_repos":7,"followers":3,"following":1,"public_gists":0}`))
	}))
	t.Cleanup(srv.Close)

	p, err := site.FetchProfile(context.Background(), srv.URL+"/", "octo", source.Options{})
	require.NoError(t, err)
	assert.Equal(t, site.Profile{Login: "octo", PublicRepos: 7, Followers: 3, Following: 1}, p)

	_, err = site.FetchProfile(context.Background(), srv.URL, "ghost", source.Options{})

	var fetchErr *source.FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.ErrorIs(t, err, source.ErrHTTPStatus)
}

func TestFetchProfile_BadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	t.Cleanup(srv.Close)

	_, err := site.FetchProfile(context.Background(), srv.URL, "octo", source.Options{})

	var fetchErr *source.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.NotErrorIs(t, err, source.ErrHTTPStatus)
}

func TestFetchProfile_BasePath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/octo" {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte(`{"login":"octo","name":"The Octocat","public_gists":8}`))
	}))
	t.Cleanup(srv.Close)

	p, err := site.FetchProfile(context.Background(), srv.URL+"/api", "octo", source.Options{Client: srv.Client()})
	require.NoError(t, err)
	assert.Equal(t, site.Profile{Login: "octo", Name: "The Octocat", PublicGists: 8}, p)
}
