package kube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/Orange-Health/deploy-report/internal/models"
)

// CommandRunner issues one read-only list query against the cluster and
// returns its raw JSON output.
type CommandRunner interface {
	Output(ctx context.Context, resource string) ([]byte, error)
}

// KubectlRunner shells out to kubectl for a namespace-scoped listing.
type KubectlRunner struct {
	Namespace string
}

func (r KubectlRunner) Output(ctx context.Context, resource string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "kubectl", "-n", r.Namespace, "get", resource, "-o", "json")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("kubectl get %s: %w: %s", resource, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Loader builds a namespace snapshot out of three concurrent list queries.
// A failed or unparseable query degrades to an empty item list for that kind;
// the snapshot itself is never an error short of context cancellation.
type Loader struct {
	runner CommandRunner
	log    *logrus.Logger
}

func NewLoader(runner CommandRunner, log *logrus.Logger) *Loader {
	return &Loader{
		runner: runner,
		log:    log,
	}
}

func (l *Loader) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var list appsv1.DeploymentList
		if l.load(ctx, "deployments", &list) {
			snap.Deployments = list
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var list corev1.PodList
		if l.load(ctx, "pods", &list) {
			snap.Pods = list
		}
		return ctx.Err()
	})
	g.Go(func() error {
		var list appsv1.ReplicaSetList
		if l.load(ctx, "rs", &list) {
			snap.ReplicaSets = list
		}
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"deployments": len(snap.Deployments.Items),
		"pods":        len(snap.Pods.Items),
		"replicasets": len(snap.ReplicaSets.Items),
	}).Info("loaded cluster snapshot")
	return snap, nil
}

// load decodes one resource listing into @out and reports whether it is usable.
func (l *Loader) load(ctx context.Context, resource string, out interface{}) bool {
	data, err := l.runner.Output(ctx, resource)
	if err != nil {
		l.log.WithError(err).Errorf("failed to list %s, continuing with empty set", resource)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		l.log.WithError(err).Errorf("failed to decode %s listing, continuing with empty set", resource)
		return false
	}
	return true
}
