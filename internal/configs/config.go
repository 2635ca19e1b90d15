package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config defaults
const (
	defaultNamespace    = "s2"
	countWorkers        = 10
	githubConcurrency   = 5
	reportFile          = "report.html"
	cacheDirName        = ".k8s-deploy-cache"
	githubBaseURL       = "https://api.github.com"
	githubWebURL        = "https://github.com"
	githubOrg           = "Orange-Health"
	githubTimeoutSecs   = 15
	branchPerPage       = 200
	branchNameSubstring = "common"
)

func init() {
	fsLog := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fsLog.String("verbose", "info", "verbose level")
	pflag.CommandLine.AddFlagSet(fsLog)
	if err := viper.BindPFlags(fsLog); err != nil {
		fmt.Printf("error binding flags: %v", err)
		os.Exit(2)
		return
	}

	fsReport := pflag.NewFlagSet("report", pflag.ContinueOnError)
	fsReport.String("namespace", defaultNamespace, "Kubernetes namespace to report on")
	fsReport.Bool("fresh", false, "bypass all caches and fetch fresh data")
	fsReport.Bool("auto-refresh", false, "embed a periodic reload hint into the report")
	fsReport.Bool("kube-api", false, "query the cluster through the Kubernetes API instead of kubectl")
	fsReport.Int("count-workers", countWorkers, "number of services processed concurrently")
	fsReport.String("report-file", reportFile, "path of the generated HTML report")
	fsReport.String("cache-dir", "", "cache root directory, default ~/"+cacheDirName)
	fsReport.String("services-file", "", "optional YAML file overriding the service catalog")
	pflag.CommandLine.AddFlagSet(fsReport)
	if err := viper.BindPFlags(fsReport); err != nil {
		fmt.Printf("error binding flags: %v", err)
		os.Exit(1)
	}

	fsGithub := pflag.NewFlagSet("github", pflag.ContinueOnError)
	fsGithub.String("github-base-url", githubBaseURL, "GitHub API base URL")
	fsGithub.String("github-web-url", githubWebURL, "GitHub web base URL used for permalinks")
	fsGithub.String("github-org", githubOrg, "GitHub organization owning the service repositories")
	fsGithub.Int("github-concurrency", githubConcurrency, "parallelism cap for GitHub API calls")
	fsGithub.Bool("verify-ssl", false, "verify TLS certificates on outbound calls")
	pflag.CommandLine.AddFlagSet(fsGithub)
	if err := viper.BindPFlags(fsGithub); err != nil {
		fmt.Printf("error binding flags: %v", err)
		os.Exit(1)
	}
	viper.BindEnv("github-token", "GITHUB_TOKEN")
	viper.BindEnv("github-use-bearer", "GITHUB_USE_BEARER")
	viper.BindEnv("verify-ssl", "VERIFY_SSL")

	fsSp := pflag.NewFlagSet("splunk", pflag.ContinueOnError)
	fsSp.String("splunk-url", "", "Splunk HTTP Events Collector URL")
	fsSp.String("splunk-token", "", "Splunk HTTP Events Collector Token")
	fsSp.Bool("splunk-insecure-skip-verify", false, "Splunk HTTP Events Collector URL skip certificate verification")
	pflag.CommandLine.AddFlagSet(fsSp)
	if err := viper.BindPFlags(fsSp); err != nil {
		fmt.Printf("error binding flags: %v", err)
		os.Exit(1)
	}
	viper.BindEnv("splunk-url", "SPLUNK_URL")
	viper.BindEnv("splunk-token", "SPLUNK_TOKEN")
	viper.BindEnv("splunk-insecure-skip-verify", "SPLUNK_INSECURE_SKIP_VERIFY")

	fsSyslog := pflag.NewFlagSet("syslog", pflag.ContinueOnError)
	fsSyslog.Bool("syslog-enabled", false, "send unhealthy-run alerts to syslog")
	fsSyslog.String("syslog-network", "udp", "syslog network protocol")
	fsSyslog.String("syslog-host", "localhost:514", "syslog server host:port")
	pflag.CommandLine.AddFlagSet(fsSyslog)
	if err := viper.BindPFlags(fsSyslog); err != nil {
		fmt.Printf("error binding flags: %v", err)
		os.Exit(1)
	}
}

// Config is the resolved run configuration.
type Config struct {
	Namespace         string
	UseCache          bool
	AutoRefresh       bool
	VerifySSL         bool
	KubeAPI           bool
	CountWorkers      int
	GithubConcurrency int
	ReportFile        string
	CacheDir          string
	GithubBaseURL     string
	GithubWebURL      string
	GithubOrg         string
	GithubToken       string
	GithubUseBearer   bool
	Services          ServiceCatalog
}

// Load resolves the run configuration from flags and environment. The first
// positional argument, when present, overrides the namespace.
func Load() (Config, error) {
	cfg := Config{
		Namespace:         viper.GetString("namespace"),
		UseCache:          !viper.GetBool("fresh"),
		AutoRefresh:       viper.GetBool("auto-refresh"),
		VerifySSL:         viper.GetBool("verify-ssl"),
		KubeAPI:           viper.GetBool("kube-api"),
		CountWorkers:      viper.GetInt("count-workers"),
		GithubConcurrency: viper.GetInt("github-concurrency"),
		ReportFile:        viper.GetString("report-file"),
		CacheDir:          viper.GetString("cache-dir"),
		GithubBaseURL:     viper.GetString("github-base-url"),
		GithubWebURL:      viper.GetString("github-web-url"),
		GithubOrg:         viper.GetString("github-org"),
		GithubToken:       viper.GetString("github-token"),
		GithubUseBearer:   viper.GetBool("github-use-bearer"),
	}

	if args := pflag.Args(); len(args) > 0 {
		cfg.Namespace = args[0]
	}

	if cfg.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve cache directory: %w", err)
		}
		cfg.CacheDir = filepath.Join(home, cacheDirName)
	}

	cfg.Services = DefaultCatalog()
	if path := viper.GetString("services-file"); path != "" {
		catalog, err := LoadCatalog(path)
		if err != nil {
			return cfg, fmt.Errorf("load services file: %w", err)
		}
		cfg.Services = catalog
	}

	return cfg, nil
}
