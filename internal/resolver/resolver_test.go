package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/Orange-Health/deploy-report/internal/models"
)

func int32Ptr(n int32) *int32 { return &n }

func deployment(name, image string, desired, available int32) appsv1.Deployment {
	return appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			CreationTimestamp: metav1.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: int32Ptr(desired),
			Template: corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{Containers: []corev1.Container{{Name: "app", Image: image}}},
			},
		},
		Status: appsv1.DeploymentStatus{AvailableReplicas: available},
	}
}

func pod(name, label, image string) corev1.Pod {
	labels := map[string]string{}
	if label != "" {
		labels["pod"] = label
	}
	return corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: "app", Image: image}}},
	}
}

func TestExtractTag(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{name: "Digest pinned", image: "repo@sha256:abcd", want: "none"},
		{name: "Versioned", image: "repo:v1.2.3", want: "v1.2.3"},
		{name: "No colon", image: "repo", want: "none"},
		{name: "Empty image", image: "", want: "none"},
		{name: "Registry with port", image: "registry:5000/repo:build-42", want: "build-42"},
		{name: "Quote in tag", image: `repo:v1"2`, want: "none"},
		{name: "Brace in tag", image: "repo:{tag}", want: "none"},
		{name: "Apostrophe in tag", image: "repo:v'1", want: "none"},
		{name: "Trailing colon", image: "repo:", want: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTag(tt.image))
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name      string
		desired   int32
		available int32
		want      string
	}{
		{name: "Scaled to zero is missing", desired: 0, available: 0, want: models.HealthMissing},
		{name: "Zero desired ignores available", desired: 0, available: 2, want: models.HealthMissing},
		{name: "Full availability is healthy", desired: 3, available: 3, want: models.HealthOK},
		{name: "Surplus availability is healthy", desired: 2, available: 3, want: models.HealthOK},
		{name: "Partial availability is degraded", desired: 3, available: 1, want: models.HealthDegraded},
		{name: "No available pods is degraded", desired: 1, available: 0, want: models.HealthDegraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Health(tt.desired, tt.available))
		})
	}
}

func TestResolveImageStrategyOrder(t *testing.T) {
	snap := &models.Snapshot{
		Deployments: appsv1.DeploymentList{Items: []appsv1.Deployment{
			deployment("oms-api", "registry/oms:from-deployment", 3, 3),
		}},
		ReplicaSets: appsv1.ReplicaSetList{Items: []appsv1.ReplicaSet{
			{
				ObjectMeta: metav1.ObjectMeta{
					Name:            "oms-api-7c9f",
					OwnerReferences: []metav1.OwnerReference{{Kind: "Deployment", Name: "oms-api"}},
				},
				Spec: appsv1.ReplicaSetSpec{
					Template: corev1.PodTemplateSpec{
						Spec: corev1.PodSpec{Containers: []corev1.Container{{Name: "app", Image: "registry/oms:from-rs"}}},
					},
				},
			},
		}},
		Pods: corev1.PodList{Items: []corev1.Pod{
			pod("oms-api-7c9f-abcde", "oms-api", "registry/oms:from-pod"),
		}},
	}

	t.Run("Deployment wins over later strategies", func(t *testing.T) {
		assert.Equal(t, "registry/oms:from-deployment", ResolveImage("oms-api", snap))
	})

	t.Run("Replica set owner match", func(t *testing.T) {
		noDeploy := &models.Snapshot{ReplicaSets: snap.ReplicaSets, Pods: snap.Pods}
		assert.Equal(t, "registry/oms:from-rs", ResolveImage("oms-api", noDeploy))
	})

	t.Run("Pod label match", func(t *testing.T) {
		podsOnly := &models.Snapshot{Pods: snap.Pods}
		assert.Equal(t, "registry/oms:from-pod", ResolveImage("oms-api", podsOnly))
	})

	t.Run("Pod name prefix match", func(t *testing.T) {
		prefixOnly := &models.Snapshot{Pods: corev1.PodList{Items: []corev1.Pod{
			pod("oms-worker-1", "", "registry/oms:by-prefix"),
		}}}
		assert.Equal(t, "registry/oms:by-prefix", ResolveImage("oms-worker", prefixOnly))
	})

	t.Run("No match anywhere", func(t *testing.T) {
		assert.Equal(t, "", ResolveImage("ghost-svc", snap))
	})
}

func TestDeployedAt(t *testing.T) {
	t.Run("Restart annotation preferred", func(t *testing.T) {
		d := deployment("oms-api", "registry/oms:build-42", 3, 3)
		d.Spec.Template.Annotations = map[string]string{
			"kubectl.kubernetes.io/restartedAt": "2025-11-07T13:36:00Z",
		}
		snap := &models.Snapshot{Deployments: appsv1.DeploymentList{Items: []appsv1.Deployment{d}}}
		assert.Equal(t, "07 Nov 2025, 07:06 PM IST", DeployedAt("oms-api", snap))
	})

	t.Run("Creation timestamp fallback", func(t *testing.T) {
		d := deployment("oms-api", "registry/oms:build-42", 3, 3)
		snap := &models.Snapshot{Deployments: appsv1.DeploymentList{Items: []appsv1.Deployment{d}}}
		assert.Equal(t, "01 Nov 2025, 03:30 PM IST", DeployedAt("oms-api", snap))
	})

	t.Run("Absent deployment", func(t *testing.T) {
		assert.Equal(t, "N/A", DeployedAt("ghost-svc", &models.Snapshot{}))
	})
}

func TestReplicas(t *testing.T) {
	snap := &models.Snapshot{Deployments: appsv1.DeploymentList{Items: []appsv1.Deployment{
		deployment("oms-api", "registry/oms:build-42", 3, 2),
	}}}

	desired, available := Replicas("oms-api", snap)
	assert.Equal(t, int32(3), desired)
	assert.Equal(t, int32(2), available)

	desired, available = Replicas("ghost-svc", snap)
	assert.Equal(t, int32(0), desired)
	assert.Equal(t, int32(0), available)
}

func TestPodsFor(t *testing.T) {
	running := pod("oms-api-7c9f-abcde", "oms-api", "registry/oms:build-42")
	start := metav1.Date(2025, 11, 7, 13, 0, 0, 0, time.UTC)
	running.Status = corev1.PodStatus{
		StartTime: &start,
		ContainerStatuses: []corev1.ContainerStatus{{
			Name:         "app",
			Ready:        true,
			RestartCount: 2,
			State:        corev1.ContainerState{Running: &corev1.ContainerStateRunning{}},
		}},
	}
	waiting := pod("oms-api-7c9f-fghij", "oms-api", "registry/oms:build-42")
	waiting.Status = corev1.PodStatus{
		ContainerStatuses: []corev1.ContainerStatus{{
			Name:  "app",
			State: corev1.ContainerState{Waiting: &corev1.ContainerStateWaiting{Reason: "ImagePullBackOff"}},
		}},
	}
	bare := pod("oms-api-init", "oms-api", "registry/oms:build-42")
	unrelated := pod("partner-api-1", "partner-api", "registry/partner:1")

	snap := &models.Snapshot{Pods: corev1.PodList{Items: []corev1.Pod{running, waiting, bare, unrelated}}}

	summaries := PodsFor("oms-api", snap)
	require.Len(t, summaries, 3)

	assert.Equal(t, "oms-api-7c9f-abcde | 07 Nov 2025, 06:30 PM IST | ready:true restarts:2 | Running", summaries[0].String())
	assert.Equal(t, "Waiting", summaries[1].Phase)
	assert.False(t, summaries[1].Ready)
	assert.Equal(t, "oms-api-init | N/A | N/A", summaries[2].String())

	assert.Empty(t, PodsFor("ghost-svc", snap))
}
