// Пакет github получает публичные метаданные репозиториев через GitHub REST API
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v62/github"
)

// ErrRepoNotFound возвращается, когда GitHub отвечает 404
var ErrRepoNotFound = errors.New("GitHub repo not found")

// Repo содержит поля репозитория, которые сохраняются в проекте
type Repo struct {
	FullName      string
	Name          string
	HTMLURL       string
	Description   string
	Homepage      string
	DefaultBranch string
	Stars         int
	Forks         int
	Language      *string
	Topics        []string
}

// Client оборачивает go-github клиента
type Client struct {
	gh *gogithub.Client
}

// NewClient создаёт клиента; token необязателен и передаётся как bearer
func NewClient(httpClient *http.Client, token string) *Client {
	gh := gogithub.NewClient(httpClient)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	return &Client{gh: gh}
}

// WithBaseURL направляет запросы на другой адрес API (GitHub Enterprise, тесты)
func (c *Client) WithBaseURL(base string) (*Client, error) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	c.gh.BaseURL = u
	return c, nil
}

// GetRepo возвращает метаданные репозитория owner/name
func (c *Client) GetRepo(ctx context.Context, owner, name string) (*Repo, error) {
	r, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrRepoNotFound
		}
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	return &Repo{
		FullName:      r.GetFullName(),
		Name:          r.GetName(),
		HTMLURL:       r.GetHTMLURL(),
		Description:   r.GetDescription(),
		Homepage:      r.GetHomepage(),
		DefaultBranch: r.GetDefaultBranch(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Language:      r.Language,
		Topics:        r.Topics,
	}, nil
}
