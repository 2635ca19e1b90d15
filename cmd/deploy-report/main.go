package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Orange-Health/deploy-report/internal/cache"
	"github.com/Orange-Health/deploy-report/internal/configs"
	"github.com/Orange-Health/deploy-report/internal/github"
	"github.com/Orange-Health/deploy-report/internal/graceful"
	"github.com/Orange-Health/deploy-report/internal/kube"
	"github.com/Orange-Health/deploy-report/internal/logger"
	"github.com/Orange-Health/deploy-report/internal/pipeline"
	"github.com/Orange-Health/deploy-report/internal/progress"
	"github.com/Orange-Health/deploy-report/pkg/alerts"
	"github.com/Orange-Health/deploy-report/pkg/alerts/splunk"
	"github.com/Orange-Health/deploy-report/pkg/alerts/syslog"
	"github.com/Orange-Health/deploy-report/pkg/minio"
)

func main() {
	initConfig()
	log := logger.Init(viper.GetString("verbose"))

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	if cfg.GithubToken == "" {
		log.Error("GITHUB_TOKEN environment variable not set")
		log.Error("export your GitHub token: export GITHUB_TOKEN='ghp_your_token_here'")
		os.Exit(1)
	}

	graceful.Execute(context.Background(), func(ctx context.Context) {
		run(ctx, log, cfg)
	})
}

func run(ctx context.Context, log *logrus.Logger, cfg configs.Config) {
	store, err := cache.NewStore(cfg.CacheDir, cfg.UseCache, log)
	if err != nil {
		log.Fatalf("failed to initialize cache: %s", err)
	}

	var loader pipeline.SnapshotLoader
	if cfg.KubeAPI {
		clientset, err := kube.NewClientset(log)
		if err != nil {
			log.Fatalf("failed to connect to Kubernetes API: %s", err)
		}
		loader = kube.NewAPILoader(clientset, cfg.Namespace, log)
	} else {
		loader = kube.NewLoader(kube.KubectlRunner{Namespace: cfg.Namespace}, log)
	}

	gh := github.New(github.Options{
		BaseURL:     cfg.GithubBaseURL,
		WebURL:      cfg.GithubWebURL,
		Org:         cfg.GithubOrg,
		Token:       cfg.GithubToken,
		UseBearer:   cfg.GithubUseBearer,
		VerifySSL:   cfg.VerifySSL,
		Concurrency: cfg.GithubConcurrency,
	}, log)

	p := pipeline.New(cfg, log, loader, gh, store, progress.NewLogReporter(log))

	if viper.GetBool("minio-enabled") {
		storage, err := minio.NewStorage(log)
		if err != nil {
			log.Fatalf("failed to initialize MinIO storage: %s", err)
		}
		p.WithPublisher(storage)
	}

	senders := alerts.Registry{}
	splunkURL := viper.GetString("splunk-url")
	splunkToken := viper.GetString("splunk-token")
	if len(splunkURL) > 0 && len(splunkToken) > 0 {
		senders.Add(alerts.TypeSplunk, splunk.New(log, splunkURL, splunkToken, viper.GetBool("splunk-insecure-skip-verify")))
	}
	if viper.GetBool("syslog-enabled") {
		sl, err := syslog.New(log, viper.GetString("syslog-network"), viper.GetString("syslog-host"), syslog.DefaultPriority)
		if err != nil {
			log.WithError(err).Error("failed to connect to syslog")
		} else {
			senders.Add(alerts.TypeSyslog, sl)
		}
	}
	if len(senders) > 0 {
		p.WithNotifier(alerts.NewUnhealthyNotifier(senders))
	}

	stats, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("report run failed: %s", err)
	}
	log.Infof("total: %d, healthy: %d, degraded: %d, missing: %d",
		stats.Total, stats.Healthy, stats.Degraded, stats.Missing)
	log.Infof("open with: open %s", cfg.ReportFile)
}

func initConfig() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()
	viper.AutomaticEnv()
}
