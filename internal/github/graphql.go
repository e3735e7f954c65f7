package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const repoAndCategoryIDsQuery = `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    id
    discussionCategories(first: 100) {
      nodes {
        id
        slug
      }
    }
  }
}`

const createDiscussionMutation = `mutation($repositoryId: ID!, $categoryId: ID!, $title: String!, $body: String!) {
  createDiscussion(input: { repositoryId: $repositoryId, categoryId: $categoryId, title: $title, body: $body }) {
    discussion {
      id
      url
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type repoAndCategoryIDsResponse struct {
	Data struct {
		Repository *struct {
			ID                   string `json:"id"`
			DiscussionCategories struct {
				Nodes []struct {
					ID   string `json:"id"`
					Slug string `json:"slug"`
				} `json:"nodes"`
			} `json:"discussionCategories"`
		} `json:"repository"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type createDiscussionResponse struct {
	Data struct {
		CreateDiscussion *struct {
			Discussion struct {
				ID  string `json:"id"`
				URL string `json:"url"`
			} `json:"discussion"`
		} `json:"createDiscussion"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// graphqlPath returns the GraphQL endpoint relative to the REST base URL.
// github.com serves it next to the REST API, GitHub Enterprise one level
// above /api/v3/.
func graphqlPath(domain string) string {
	if domain == "" || domain == "github.com" {
		return "graphql"
	}
	return "../graphql"
}

// runGraphQL posts query through the go-github client so requests share its
// authentication, user agent and error handling.
func (c *Client) runGraphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	req, err := c.client.NewRequest(http.MethodPost, c.graphqlPath, graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}

	if _, err := c.client.Do(ctx, req, out); err != nil {
		return fmt.Errorf("github graphql request failed: %w", err)
	}
	return nil
}

func joinErrors(errs []graphqlError) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return fmt.Errorf("github graphql errors: %s", strings.Join(messages, "; "))
}
