package storage

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type CookieStore interface {
	SaveCookie(host string, c *http.Cookie) error
	DeleteCookie(host, name, path string) error
	ListCookies(host string) ([]*http.Cookie, error)
	ClearCookies(host string) error
}

// SessionJar is an http.CookieJar that writes every cookie it receives
// through to a CookieStore, so the login session outlives the process.
// Cookies the server expires (logout) are removed from the store as well.
type SessionJar struct {
	mu    sync.Mutex
	jar   *cookiejar.Jar
	store CookieStore
	base  *url.URL
	log   logrus.FieldLogger
}

func NewSessionJar(store CookieStore, baseURL string, log logrus.FieldLogger) (*SessionJar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	cookies, err := store.ListCookies(base.Host)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if len(cookies) > 0 {
		jar.SetCookies(base, cookies)
		log.WithField("host", base.Host).Debugf("restored %d session cookies", len(cookies))
	}

	return &SessionJar{
		jar:   jar,
		store: store,
		base:  base,
		log:   log,
	}, nil
}

func (j *SessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)

	now := time.Now()
	for _, c := range cookies {
		var err error
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			err = j.store.DeleteCookie(u.Host, c.Name, c.Path)
		} else {
			persisted := *c
			if c.MaxAge > 0 {
				persisted.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
			}
			err = j.store.SaveCookie(u.Host, &persisted)
		}
		if err != nil {
			j.log.WithError(err).WithField("cookie", c.Name).Warn("could not persist cookie")
		}
	}
}

func (j *SessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// HasSession reports whether any cookie would be sent to the base URL.
func (j *SessionJar) HasSession() bool {
	return len(j.Cookies(j.base)) > 0
}

// Clear forgets every cookie for the base URL, in memory and on disk.
func (j *SessionJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.jar = jar
	return j.store.ClearCookies(j.base.Host)
}
