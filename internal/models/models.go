package models

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// Health classes as rendered into the report markup.
const (
	HealthOK       = "status-ok"
	HealthDegraded = "status-degraded"
	HealthMissing  = "status-missing"
)

// TagNone marks a service without a resolvable image tag.
const TagNone = "none"

// Snapshot holds the three namespace-scoped resource listings a single run
// operates on. A kind that failed to load is present with an empty item list.
type Snapshot struct {
	Deployments appsv1.DeploymentList
	Pods        corev1.PodList
	ReplicaSets appsv1.ReplicaSetList
}

// PodSummary is the reduced per-pod view shown in a service card.
type PodSummary struct {
	Name      string
	StartTime string
	HasStatus bool
	Ready     bool
	Restarts  int32
	Phase     string
}

func (p PodSummary) String() string {
	if !p.HasStatus {
		return fmt.Sprintf("%s | %s | N/A", p.Name, p.StartTime)
	}
	return fmt.Sprintf("%s | %s | ready:%t restarts:%d | %s", p.Name, p.StartTime, p.Ready, p.Restarts, p.Phase)
}

// HistoryEntry is one retained branch-report snapshot for a repository.
type HistoryEntry struct {
	Filename string
	Content  string
}

// ServiceRecord is the immutable per-service result assembled by the
// pipeline and fed to the report renderer.
type ServiceRecord struct {
	Service        string
	Repo           string
	Tag            string
	Status         string
	StatusClass    string
	DeployedAt     string
	Replicas       int32
	Available      int32
	PodsInfo       []string
	CommonBranches string
	History        []HistoryEntry
}

// Stats aggregates health classes over one run.
type Stats struct {
	Total    int
	Healthy  int
	Degraded int
	Missing  int
}

func (s *Stats) Count(statusClass string) {
	s.Total++
	switch statusClass {
	case HealthOK:
		s.Healthy++
	case HealthDegraded:
		s.Degraded++
	case HealthMissing:
		s.Missing++
	}
}
