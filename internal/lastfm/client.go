// Package lastfm announces playing tracks to Last.fm.
package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNotAuthenticated is returned when an operation requires authentication.
var ErrNotAuthenticated = errors.New("not authenticated")

// Client wraps the Last.fm API.
type Client struct {
	api        *lastfm.Api
	apiKey     string
	sessionKey string
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api:    lastfm.New(apiKey, apiSecret),
		apiKey: apiKey,
	}
}

// SetSessionKey sets the authenticated session key.
func (c *Client) SetSessionKey(key string) {
	c.sessionKey = key
	c.api.SetSession(key)
}

// IsAuthenticated returns true if a session key is set.
func (c *Client) IsAuthenticated() bool {
	return c.sessionKey != ""
}

// GetToken requests an authentication token from Last.fm.
func (c *Client) GetToken() (string, error) {
	result, err := c.api.GetToken()
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return result, nil
}

// GetAuthURL returns the URL where the user authorizes token.
func (c *Client) GetAuthURL(token string, callback string) string {
	u := fmt.Sprintf("https://www.last.fm/api/auth/?api_key=%s&token=%s", c.apiKey, token)
	if callback != "" {
		u += "&cb=" + callback
	}
	return u
}

// GetSession exchanges an authorized token for a session key.
func (c *Client) GetSession(token string) (username, sessionKey string, err error) {
	if err := c.api.LoginWithToken(token); err != nil {
		return "", "", fmt.Errorf("get session: %w", err)
	}

	sessionKey = c.api.GetSessionKey()
	c.sessionKey = sessionKey

	userInfo, err := c.api.User.GetInfo(nil)
	if err != nil {
		// the session is usable without a username
		return "unknown", sessionKey, nil //nolint:nilerr // username is optional
	}
	return userInfo.Name, sessionKey, nil
}

// UpdateNowPlaying sends a "now playing" notification to Last.fm.
func (c *Client) UpdateNowPlaying(track NowPlayingTrack) error {
	if !c.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	params := lastfm.P{
		"artist": track.Artist,
		"track":  track.Track,
	}
	if track.Album != "" {
		params["album"] = track.Album
	}
	if track.Duration > 0 {
		params["duration"] = int(track.Duration.Seconds())
	}

	if _, err := c.api.Track.UpdateNowPlaying(params); err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}
