package resolver

import (
	"strings"
	"time"

	"github.com/Orange-Health/deploy-report/internal/models"
	"github.com/Orange-Health/deploy-report/internal/utils/timefmt"
)

// restartedAtAnnotation records the last manual rollout restart.
const restartedAtAnnotation = "kubectl.kubernetes.io/restartedAt"

const maxTagLen = 100

// Strategy derives a container image reference for a service from the
// cluster snapshot. The bool reports whether the lookup matched.
type Strategy func(service string, snap *models.Snapshot) (string, bool)

// Strategies is the ordered lookup chain; the first match wins and no
// merging happens across sources.
func Strategies() []Strategy {
	return []Strategy{
		deploymentImage,
		replicaSetImage,
		podLabelImage,
		podNameImage,
	}
}

// ResolveImage applies the strategy chain, returning "" when nothing matches.
func ResolveImage(service string, snap *models.Snapshot) string {
	for _, strategy := range Strategies() {
		if image, ok := strategy(service, snap); ok {
			return image
		}
	}
	return ""
}

func deploymentImage(service string, snap *models.Snapshot) (string, bool) {
	for _, d := range snap.Deployments.Items {
		if d.Name != service {
			continue
		}
		if containers := d.Spec.Template.Spec.Containers; len(containers) > 0 {
			return containers[0].Image, true
		}
	}
	return "", false
}

func replicaSetImage(service string, snap *models.Snapshot) (string, bool) {
	for _, rs := range snap.ReplicaSets.Items {
		owners := rs.OwnerReferences
		if len(owners) == 0 || owners[0].Name != service {
			continue
		}
		if containers := rs.Spec.Template.Spec.Containers; len(containers) > 0 {
			return containers[0].Image, true
		}
	}
	return "", false
}

func podLabelImage(service string, snap *models.Snapshot) (string, bool) {
	for _, p := range snap.Pods.Items {
		if p.Labels["pod"] != service {
			continue
		}
		if containers := p.Spec.Containers; len(containers) > 0 {
			return containers[0].Image, true
		}
	}
	return "", false
}

func podNameImage(service string, snap *models.Snapshot) (string, bool) {
	for _, p := range snap.Pods.Items {
		if !strings.HasPrefix(p.Name, service) {
			continue
		}
		if containers := p.Spec.Containers; len(containers) > 0 {
			return containers[0].Image, true
		}
	}
	return "", false
}

// ExtractTag pulls the version tag out of an image reference. Digest-pinned
// references and tags carrying object-notation delimiters resolve to "none"
// rather than leaking malformed data into the cache or report.
func ExtractTag(image string) string {
	if image == "" {
		return models.TagNone
	}
	if strings.Contains(image, "@") {
		return models.TagNone
	}
	idx := strings.LastIndex(image, ":")
	if idx < 0 {
		return models.TagNone
	}
	tag := image[idx+1:]
	if tag == "" || len(tag) >= maxTagLen || strings.ContainsAny(tag, `{}"'`) {
		return models.TagNone
	}
	return tag
}

// DeployedAt resolves the deployment timestamp for a service: the manual
// restart annotation when present, otherwise the resource creation time.
func DeployedAt(service string, snap *models.Snapshot) string {
	for _, d := range snap.Deployments.Items {
		if d.Name != service {
			continue
		}
		if at, ok := d.Spec.Template.Annotations[restartedAtAnnotation]; ok && at != "" {
			return timefmt.ToIST(at)
		}
		if !d.CreationTimestamp.IsZero() {
			return timefmt.ToIST(d.CreationTimestamp.UTC().Format(time.RFC3339))
		}
		break
	}
	return "N/A"
}

// Replicas returns the desired and available replica counts for a service;
// both are zero for a service without a deployment.
func Replicas(service string, snap *models.Snapshot) (desired, available int32) {
	for _, d := range snap.Deployments.Items {
		if d.Name != service {
			continue
		}
		if d.Spec.Replicas != nil {
			desired = *d.Spec.Replicas
		}
		available = d.Status.AvailableReplicas
		break
	}
	return desired, available
}

// Health classifies replica counts: desired 0 is missing, full availability
// is healthy, anything in between is degraded.
func Health(desired, available int32) string {
	switch {
	case desired == 0:
		return models.HealthMissing
	case available >= desired:
		return models.HealthOK
	default:
		return models.HealthDegraded
	}
}

// PodsFor reduces every pod matching the service (by "pod" label or name
// prefix) to a PodSummary based on its first container status.
func PodsFor(service string, snap *models.Snapshot) []models.PodSummary {
	var summaries []models.PodSummary
	for _, p := range snap.Pods.Items {
		if p.Labels["pod"] != service && !strings.HasPrefix(p.Name, service) {
			continue
		}

		summary := models.PodSummary{
			Name:      p.Name,
			StartTime: "N/A",
			Phase:     "Unknown",
		}
		if p.Status.StartTime != nil {
			summary.StartTime = timefmt.ToIST(p.Status.StartTime.UTC().Format(time.RFC3339))
		}
		if statuses := p.Status.ContainerStatuses; len(statuses) > 0 {
			c := statuses[0]
			summary.HasStatus = true
			summary.Ready = c.Ready
			summary.Restarts = c.RestartCount
			switch {
			case c.State.Running != nil:
				summary.Phase = "Running"
			case c.State.Waiting != nil:
				summary.Phase = "Waiting"
			case c.State.Terminated != nil:
				summary.Phase = "Terminated"
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
