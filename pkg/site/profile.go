package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"

	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

// GitHubAPI is the base URL of the public GitHub REST API.
const GitHubAPI = "https://api.github.com"

// Profile is the subset of a public GitHub user shown on the home page.
type Profile struct {
	Login       string `json:"login"       yaml:"login"`
	Name        string `json:"name"        yaml:"name"`
	PublicRepos int    `json:"public_repos" yaml:"public_repos"`
	PublicGists int    `json:"public_gists" yaml:"public_gists"`
	Followers   int    `json:"followers"   yaml:"followers"`
	Following   int    `json:"following"   yaml:"following"`
}

// newGitHubClient returns an unauthenticated client talking to the API at base.
func newGitHubClient(base string, opts source.Options) (*github.Client, error) {
	if base == "" {
		base = GitHubAPI
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", base, err)
	}

	httpClient := opts.Client
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = source.DefaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	client := github.NewClient(httpClient)
	client.BaseURL = u

	return client, nil
}

// FetchProfile reads the public profile of username from the API at base.
// Every failure is a *source.FetchError.
func FetchProfile(ctx context.Context, base, username string, opts source.Options) (Profile, error) {
	client, err := newGitHubClient(base, opts)
	if err != nil {
		return Profile{}, &source.FetchError{Source: base, Err: err}
	}

	src := client.BaseURL.String() + "users/" + url.PathEscape(username)

	user, _, err := client.Users.Get(ctx, username)
	if err != nil {
		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) && respErr.Response != nil {
			err = fmt.Errorf("%w: %s: %w", source.ErrHTTPStatus, respErr.Response.Status, err)
		}

		return Profile{}, &source.FetchError{Source: src, Err: err}
	}

	return Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		PublicRepos: user.GetPublicRepos(),
		PublicGists: user.GetPublicGists(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}, nil
}
