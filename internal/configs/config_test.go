package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s2", cfg.Namespace)
	assert.True(t, cfg.UseCache)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, 10, cfg.CountWorkers)
	assert.Equal(t, 5, cfg.GithubConcurrency)
	assert.Equal(t, "report.html", cfg.ReportFile)
	assert.Equal(t, "Orange-Health", cfg.GithubOrg)
	assert.Contains(t, cfg.CacheDir, ".k8s-deploy-cache")
	assert.NotEmpty(t, cfg.Services.Ordered())
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	ordered := catalog.Ordered()
	assert.Equal(t, 20, len(ordered))
	assert.Equal(t, "oms-api", ordered[0])
	assert.Equal(t, "bifrost", ordered[len(ordered)-1])

	tests := []struct {
		service string
		repo    string
	}{
		{service: "oms-scheduler", repo: "oms"},
		{service: "oms-web", repo: "oms-web"},
		{service: "partner-worker-high", repo: "partner-api"},
		{service: "occ-api", repo: "occ"},
		{service: "never-deployed", repo: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			assert.Equal(t, tt.repo, catalog.Repo(tt.service))
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.yaml")
	data := `
categories:
  - name: billing
    services: [billing-api, billing-worker]
repos:
  billing-api: billing
  billing-worker: billing
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"billing-api", "billing-worker"}, catalog.Ordered())
	assert.Equal(t, "billing", catalog.Repo("billing-api"))
}

func TestLoadCatalogEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "services.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repos: {}\n"), 0644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
