// Package remote talks to the contest site: it logs in, keeps the session
// cookies on disk and uploads submissions.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// DefaultBaseURL is the production site
const DefaultBaseURL = "https://atcoder.jp"

const requestTimeout = 30 * time.Second

var (
	ErrLoginFailed    = errors.New("login failed: check your username and password")
	ErrNotLoggedIn    = errors.New("not logged in. Run 'atc login' first")
	ErrSubmitRejected = errors.New("submission was not accepted")
)

// Submission is one source upload.
type Submission struct {
	Contest    string
	Problem    string
	LanguageID string
	Source     []byte
}

// Judge is the remote judge as seen by the CLI.
type Judge interface {
	Login(ctx context.Context, username, password string) error
	Submit(ctx context.Context, s Submission) error
	SubmissionsURL(contest string) string
}

var _ Judge = (*Client)(nil)

// Client implements Judge over HTTP with a cookie session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session *Session
	logger  *zap.Logger
}

// New builds a client and restores any saved session cookies.
func New(baseURL string, session *Session, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Jar: jar, Timeout: requestTimeout},
		session: session,
		logger:  logger,
	}
	if err := session.Load(jar, u); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// Login posts the login form and saves the session on success.
func (c *Client) Login(ctx context.Context, username, password string) error {
	token, err := c.csrfToken(ctx, "/login")
	if err != nil {
		return err
	}

	form := url.Values{
		"username":   {username},
		"password":   {password},
		"csrf_token": {token},
	}
	final, err := c.postForm(ctx, "/login", form)
	if err != nil {
		return err
	}
	if final.Path == "/login" {
		return ErrLoginFailed
	}
	c.logger.Debug("logged in", zap.String("user", username), zap.String("landed", final.Path))
	return c.session.Save(c.http.Jar, c.baseURL)
}

// Submit uploads a solution. The site answers a successful submission with
// a redirect to the user's submissions list.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	if !c.session.Exists() {
		return ErrNotLoggedIn
	}
	if s.LanguageID == "" {
		return fmt.Errorf("no submit language id configured; set language.submit_language_id")
	}

	path := fmt.Sprintf("/contests/%s/submit", s.Contest)
	token, err := c.csrfToken(ctx, path)
	if err != nil {
		if errors.Is(err, errFieldNotFound) {
			return ErrNotLoggedIn
		}
		return err
	}

	form := url.Values{
		"data.TaskScreenName": {taskScreenName(s.Contest, s.Problem)},
		"data.LanguageId":     {s.LanguageID},
		"sourceCode":          {string(s.Source)},
		"csrf_token":          {token},
	}
	final, err := c.postForm(ctx, path, form)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(final.Path, "/submissions/me") {
		return fmt.Errorf("%w (landed on %s)", ErrSubmitRejected, final.Path)
	}
	c.logger.Debug("submitted", zap.String("contest", s.Contest), zap.String("problem", s.Problem))
	return nil
}

// SubmissionsURL is the page listing the user's submissions to contest.
func (c *Client) SubmissionsURL(contest string) string {
	return c.endpoint(fmt.Sprintf("/contests/%s/submissions/me", contest))
}

func taskScreenName(contest, problem string) string {
	return strings.ReplaceAll(contest, "-", "_") + "_" + strings.ToLower(problem)
}

func (c *Client) csrfToken(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return "", fmt.Errorf("build request failed: %w", err)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("GET %s failed: %d - %s", path, res.StatusCode, bytes.TrimSpace(body))
	}
	return formValue(res.Body, "csrf_token")
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, res.Body)

	c.logger.Debug("form posted", zap.String("path", path), zap.Int("status", res.StatusCode), zap.Duration("elapsed", time.Since(start)))
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("POST %s failed: %d", path, res.StatusCode)
	}
	return res.Request.URL, nil
}
