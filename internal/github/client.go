// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/rollup/internal/config"
	"github.com/danielolaszy/rollup/internal/logging"
	"github.com/danielolaszy/rollup/pkg/models"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client      *github.Client
	graphqlPath string
}

// Identifiers are the GraphQL node IDs a discussion is created under.
type Identifiers struct {
	RepositoryID string
	CategoryID   string
}

// NewClient creates a GitHub API client for the configured domain,
// authenticating every request with the configured token.
func NewClient(cfg config.GitHubConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	domain := cfg.Domain
	if domain == "" {
		domain = "github.com"
	}
	apiURL := apiURLForDomain(domain)

	logging.Info("github configuration",
		"domain", domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(cfg.Token))

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	if domain != "github.com" {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}

		client.BaseURL = parsedURL
		client.UploadURL = parsedURL
	}

	return newClient(client, domain), nil
}

func newClient(client *github.Client, domain string) *Client {
	return &Client{client: client, graphqlPath: graphqlPath(domain)}
}

// apiURLForDomain returns the REST API base URL of a GitHub domain.
func apiURLForDomain(domain string) string {
	if domain == "" || domain == "github.com" {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// FetchIdentifiers resolves the repository ID and the ID of the discussion
// category with the given slug. Failing to resolve either one is an error.
func (c *Client) FetchIdentifiers(ctx context.Context, owner, repo, categorySlug string) (Identifiers, error) {
	var ids Identifiers

	var resp repoAndCategoryIDsResponse
	err := c.runGraphQL(ctx, repoAndCategoryIDsQuery, map[string]any{
		"owner": owner,
		"name":  repo,
	}, &resp)
	if err != nil {
		logging.Error("failed to fetch repository and category ids",
			"owner", owner,
			"repo", repo,
			"error", err)
		return ids, err
	}
	if err := joinErrors(resp.Errors); err != nil {
		return ids, err
	}

	if r := resp.Data.Repository; r != nil {
		ids.RepositoryID = r.ID
		for _, node := range r.DiscussionCategories.Nodes {
			if node.Slug == categorySlug {
				ids.CategoryID = node.ID
				break
			}
		}
	}

	if ids.RepositoryID == "" {
		return ids, fmt.Errorf("repository %s/%s not found", owner, repo)
	}
	if ids.CategoryID == "" {
		return ids, fmt.Errorf("discussion category %q not found in %s/%s", categorySlug, owner, repo)
	}

	logging.Debug("resolved discussion identifiers",
		"repository_id", ids.RepositoryID,
		"category_id", ids.CategoryID)

	return ids, nil
}

// FetchIssuesWithComments retrieves open and closed issues updated at or
// after since, each with its comments created or edited since then. A zero
// since fetches everything. Pull requests are skipped.
//
// When a request fails the issues collected so far are returned together
// with the error.
func (c *Client) FetchIssuesWithComments(ctx context.Context, owner, repo string, since time.Time) ([]models.RawIssue, error) {
	opts := &github.IssueListByRepoOptions{
		State: "all",
		Since: since,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var result []models.RawIssue
	for {
		logging.Debug("fetching issues page", "owner", owner, "repo", repo, "page", opts.Page)

		issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			logging.Error("failed to fetch github issues", "error", err)
			return result, fmt.Errorf("failed to fetch GitHub issues: %w", err)
		}

		for _, issue := range issues {
			// Skip pull requests (they're also returned by the Issues API)
			if issue.PullRequestLinks != nil {
				continue
			}

			comments, err := c.listComments(ctx, owner, repo, issue.GetNumber(), since)
			if err != nil {
				logging.Error("failed to fetch issue comments",
					"issue_number", issue.GetNumber(),
					"error", err)
				return result, fmt.Errorf("failed to fetch comments for issue %s#%d: %w", repo, issue.GetNumber(), err)
			}

			result = append(result, toRawIssue(issue, comments))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("fetched github issues", "count", len(result))
	return result, nil
}

func (c *Client) listComments(ctx context.Context, owner, repo string, number int, since time.Time) ([]models.RawComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}
	if !since.IsZero() {
		opts.Since = &since
	}

	var result []models.RawComment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, err
		}

		for _, comment := range comments {
			result = append(result, models.RawComment{
				Body:      comment.GetBody(),
				CreatedAt: comment.GetCreatedAt(),
				URL:       comment.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func toRawIssue(issue *github.Issue, comments []models.RawComment) models.RawIssue {
	state := models.StateOpen
	if issue.GetState() == "closed" {
		state = models.StateClosed
	}

	return models.RawIssue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     state,
		UpdatedAt: issue.GetUpdatedAt(),
		ClosedAt:  issue.ClosedAt,
		Comments:  comments,
	}
}

// CreateDiscussion creates a discussion in the given category and returns
// its URL.
func (c *Client) CreateDiscussion(ctx context.Context, repositoryID, categoryID, title, body string) (string, error) {
	var resp createDiscussionResponse
	err := c.runGraphQL(ctx, createDiscussionMutation, map[string]any{
		"repositoryId": repositoryID,
		"categoryId":   categoryID,
		"title":        title,
		"body":         body,
	}, &resp)
	if err != nil {
		logging.Error("failed to create discussion", "title", title, "error", err)
		return "", err
	}
	if err := joinErrors(resp.Errors); err != nil {
		return "", err
	}

	if resp.Data.CreateDiscussion == nil || resp.Data.CreateDiscussion.Discussion.URL == "" {
		return "", fmt.Errorf("create discussion returned no url")
	}

	discussionURL := resp.Data.CreateDiscussion.Discussion.URL
	logging.Info("created discussion", "url", discussionURL)
	return discussionURL, nil
}
