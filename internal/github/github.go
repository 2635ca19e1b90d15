package github

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Orange-Health/deploy-report/internal/utils/timefmt"
)

const (
	branchesPerPage = 200
	requestTimeout  = 15 * time.Second
)

// EmptyReport is rendered when a repository has no matching branches.
const EmptyReport = "No common branches found"

// Options configures a Client.
type Options struct {
	BaseURL     string
	WebURL      string
	Org         string
	Token       string
	UseBearer   bool
	VerifySSL   bool
	Concurrency int
	Match       string
}

// Client is a minimal GitHub REST client scoped to branch listings.
type Client struct {
	opts   Options
	client *http.Client
	log    *logrus.Logger
}

type branch struct {
	Name string `json:"name"`
}

type commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Committer struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

func New(opts Options, log *logrus.Logger) *Client {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 5
	}
	if opts.Match == "" {
		opts.Match = "common"
	}
	transCfg := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !opts.VerifySSL},
	}
	return &Client{
		opts: opts,
		client: &http.Client{
			Transport: transCfg,
			Timeout:   requestTimeout,
		},
		log: log,
	}
}

// CommonBranchReport lists the repository branches whose name contains the
// match substring and renders one fixed-width line per branch with its
// latest commit metadata. Branches whose commit lookup fails are dropped.
func (c *Client) CommonBranchReport(ctx context.Context, repo string) (string, error) {
	branches, err := c.listBranches(ctx, repo)
	if err != nil {
		return "", err
	}

	var common []string
	for _, b := range branches {
		if strings.Contains(strings.ToLower(b.Name), c.opts.Match) {
			common = append(common, b.Name)
		}
	}

	// Indexed slice keeps API return order under the concurrent fetch.
	lines := make([]string, len(common))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, name := range common {
		i, name := i, name
		g.Go(func() error {
			line, ok := c.branchLine(ctx, repo, name)
			if ok {
				lines[i] = line
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var kept []string
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return EmptyReport, nil
	}
	return strings.Join(kept, "\n"), nil
}

func (c *Client) listBranches(ctx context.Context, repo string) ([]branch, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/branches?per_page=%d", c.opts.BaseURL, c.opts.Org, repo, branchesPerPage)

	var branches []branch
	if err := c.getJSON(ctx, url, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// branchLine renders one report line; ok is false when the branch should be
// dropped from the listing.
func (c *Client) branchLine(ctx context.Context, repo, name string) (string, bool) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits/%s", c.opts.BaseURL, c.opts.Org, repo, name)

	var cm commit
	if err := c.getJSON(ctx, url, &cm); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"repo":   repo,
			"branch": name,
		}).Debug("dropping branch, commit fetch failed")
		return "", false
	}
	if cm.SHA == "" || cm.Commit.Committer.Date == "" {
		c.log.WithFields(logrus.Fields{
			"repo":   repo,
			"branch": name,
		}).Debug("dropping branch, incomplete commit metadata")
		return "", false
	}

	permalink := fmt.Sprintf("%s/%s/%s/commit/%s", c.opts.WebURL, c.opts.Org, repo, cm.SHA)
	return fmt.Sprintf("%-22s %-30s %-20s %s",
		name,
		timefmt.ToIST(cm.Commit.Committer.Date),
		cm.Commit.Committer.Name,
		permalink,
	), true
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WithError(err).Error("Failed close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// authHeader picks the scheme: classic tokens use "token", fine-grained ones
// may require "Bearer".
func (c *Client) authHeader() string {
	if c.opts.UseBearer {
		return "Bearer " + c.opts.Token
	}
	return "token " + c.opts.Token
}
