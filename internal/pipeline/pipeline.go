package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Orange-Health/deploy-report/internal/cache"
	"github.com/Orange-Health/deploy-report/internal/configs"
	"github.com/Orange-Health/deploy-report/internal/models"
	"github.com/Orange-Health/deploy-report/internal/progress"
	"github.com/Orange-Health/deploy-report/internal/report"
	"github.com/Orange-Health/deploy-report/internal/resolver"
	"github.com/Orange-Health/deploy-report/internal/worker"
)

// SnapshotLoader provides the cluster snapshot a run operates on.
type SnapshotLoader interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// BranchLister fetches the common-branch listing for a repository.
type BranchLister interface {
	CommonBranchReport(ctx context.Context, repo string) (string, error)
}

// Publisher receives the rendered report after it is written locally.
type Publisher interface {
	PublishReport(ctx context.Context, namespace string, html []byte) error
}

// Notifier is told about runs that found unhealthy services.
type Notifier interface {
	NotifyUnhealthy(namespace string, stats models.Stats) error
}

// Pipeline is one report run: snapshot, per-service resolution, branch
// fetching and the final render. Every failure short of a report-write
// error degrades to a visible placeholder instead of aborting the run.
type Pipeline struct {
	cfg       configs.Config
	log       *logrus.Logger
	loader    SnapshotLoader
	branches  BranchLister
	store     *cache.Store
	reporter  progress.Reporter
	publisher Publisher
	notifier  Notifier
}

func New(cfg configs.Config, log *logrus.Logger, loader SnapshotLoader, branches BranchLister, store *cache.Store, reporter progress.Reporter) *Pipeline {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		loader:   loader,
		branches: branches,
		store:    store,
		reporter: reporter,
	}
}

// WithPublisher attaches an optional report publisher.
func (p *Pipeline) WithPublisher(pub Publisher) *Pipeline {
	p.publisher = pub
	return p
}

// WithNotifier attaches an optional unhealthy-run notifier.
func (p *Pipeline) WithNotifier(n Notifier) *Pipeline {
	p.notifier = n
	return p
}

// Run executes one full report generation and returns the aggregate stats.
func (p *Pipeline) Run(ctx context.Context) (models.Stats, error) {
	var stats models.Stats

	snap, err := p.loader.Snapshot(ctx)
	if err != nil {
		return stats, fmt.Errorf("load snapshot: %w", err)
	}

	services := p.cfg.Services.Ordered()
	p.reporter.Begin(len(services))

	nameC := make(chan string)
	go func() {
		defer close(nameC)
		for _, svc := range services {
			select {
			case nameC <- svc:
			case <-ctx.Done():
				return
			}
		}
	}()

	process := func(ctx context.Context, service string) models.ServiceRecord {
		rec := p.processService(ctx, service, snap)
		p.reporter.Step(service)
		return rec
	}

	byName := make(map[string]models.ServiceRecord, len(services))
	for rec := range worker.Pool(p.cfg.CountWorkers, nameC, worker.New(ctx, process)) {
		byName[rec.Service] = rec
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	// keep catalog order, the pool completes out of order
	records := make([]models.ServiceRecord, 0, len(services))
	for _, svc := range services {
		rec, ok := byName[svc]
		if !ok {
			continue
		}
		stats.Count(rec.StatusClass)
		records = append(records, rec)
	}

	data := report.Data{
		Namespace:   p.cfg.Namespace,
		Services:    records,
		Stats:       stats,
		WebURL:      p.cfg.GithubWebURL,
		Org:         p.cfg.GithubOrg,
		AutoRefresh: p.cfg.AutoRefresh,
	}
	if err := report.Write(p.cfg.ReportFile, data); err != nil {
		return stats, err
	}
	p.log.WithFields(logrus.Fields{
		"report":   p.cfg.ReportFile,
		"total":    stats.Total,
		"healthy":  stats.Healthy,
		"degraded": stats.Degraded,
		"missing":  stats.Missing,
	}).Info("report generated")

	if p.publisher != nil {
		html, err := report.Render(data)
		if err == nil {
			err = p.publisher.PublishReport(ctx, p.cfg.Namespace, []byte(html))
		}
		if err != nil {
			p.log.WithError(err).Error("failed to publish report")
		}
	}

	if p.notifier != nil && stats.Degraded+stats.Missing > 0 {
		if err := p.notifier.NotifyUnhealthy(p.cfg.Namespace, stats); err != nil {
			p.log.WithError(err).Error("failed to send unhealthy-run alert")
		}
	}

	return stats, nil
}

// processService assembles one ServiceRecord. Branch fetching honors the
// cache and is skipped entirely for services without a resolvable tag.
func (p *Pipeline) processService(ctx context.Context, service string, snap *models.Snapshot) models.ServiceRecord {
	repo := p.cfg.Services.Repo(service)

	tag, ok := p.store.Tag(service)
	if !ok {
		tag = resolver.ExtractTag(resolver.ResolveImage(service, snap))
		if err := p.store.WriteTag(service, tag); err != nil {
			p.log.WithError(err).WithField("service", service).Warn("failed to cache tag")
		}
	}

	desired, available := resolver.Replicas(service, snap)
	statusClass := resolver.Health(desired, available)

	podsInfo := []string{"No pods found"}
	if summaries := resolver.PodsFor(service, snap); len(summaries) > 0 {
		podsInfo = podsInfo[:0]
		for _, s := range summaries {
			podsInfo = append(podsInfo, s.String())
		}
	}

	return models.ServiceRecord{
		Service:        service,
		Repo:           repo,
		Tag:            tag,
		Status:         fmt.Sprintf("avail:%d/%d", available, desired),
		StatusClass:    statusClass,
		DeployedAt:     resolver.DeployedAt(service, snap),
		Replicas:       desired,
		Available:      available,
		PodsInfo:       podsInfo,
		CommonBranches: p.commonBranches(ctx, repo, tag),
		History:        p.store.History(repo),
	}
}

func (p *Pipeline) commonBranches(ctx context.Context, repo, tag string) string {
	if tag == models.TagNone {
		return "Skipped (no tag)"
	}
	if cached, ok := p.store.BranchReport(repo, tag); ok {
		return cached
	}

	listing, err := p.branches.CommonBranchReport(ctx, repo)
	if err != nil {
		// surfaced inline, never cached
		return "ERROR: " + err.Error()
	}
	if err := p.store.WriteBranchReport(repo, tag, listing); err != nil {
		p.log.WithError(err).WithField("repo", repo).Warn("failed to cache branch listing")
	}
	return listing
}
