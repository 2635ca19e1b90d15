package kube

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deploymentsJSON = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {
      "metadata": {"name": "oms-api", "creationTimestamp": "2025-11-01T10:00:00Z"},
      "spec": {
        "replicas": 3,
        "template": {"spec": {"containers": [{"name": "app", "image": "registry/oms:build-42"}]}}
      },
      "status": {"availableReplicas": 3}
    }
  ]
}`

const podsJSON = `{
  "apiVersion": "v1",
  "kind": "List",
  "items": [
    {
      "metadata": {"name": "oms-api-7c9f", "labels": {"pod": "oms-api"}},
      "spec": {"containers": [{"name": "app", "image": "registry/oms:build-42"}]},
      "status": {
        "startTime": "2025-11-07T13:00:00Z",
        "containerStatuses": [{"name": "app", "ready": true, "restartCount": 1, "state": {"running": {}}}]
      }
    }
  ]
}`

type stubRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (s *stubRunner) Output(_ context.Context, resource string) ([]byte, error) {
	s.calls = append(s.calls, resource)
	if err, ok := s.errs[resource]; ok {
		return nil, err
	}
	return []byte(s.outputs[resource]), nil
}

func TestLoaderSnapshot(t *testing.T) {
	runner := &stubRunner{outputs: map[string]string{
		"deployments": deploymentsJSON,
		"pods":        podsJSON,
		"rs":          `{"apiVersion": "v1", "kind": "List", "items": []}`,
	}}
	loader := NewLoader(runner, logrus.New())

	snap, err := loader.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Deployments.Items, 1)
	assert.Equal(t, "oms-api", snap.Deployments.Items[0].Name)
	assert.Equal(t, int32(3), *snap.Deployments.Items[0].Spec.Replicas)
	assert.Equal(t, "registry/oms:build-42", snap.Deployments.Items[0].Spec.Template.Spec.Containers[0].Image)

	require.Len(t, snap.Pods.Items, 1)
	assert.Equal(t, "oms-api", snap.Pods.Items[0].Labels["pod"])
	assert.True(t, snap.Pods.Items[0].Status.ContainerStatuses[0].Ready)

	assert.Empty(t, snap.ReplicaSets.Items)
	assert.ElementsMatch(t, []string{"deployments", "pods", "rs"}, runner.calls)
}

func TestLoaderSnapshotDegradesToEmpty(t *testing.T) {
	runner := &stubRunner{
		outputs: map[string]string{
			"pods": podsJSON,
			"rs":   `not json at all`,
		},
		errs: map[string]error{
			"deployments": errors.New("kubectl get deployments failed"),
		},
	}
	loader := NewLoader(runner, logrus.New())

	snap, err := loader.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Deployments.Items)
	assert.Empty(t, snap.ReplicaSets.Items)
	assert.Len(t, snap.Pods.Items, 1)
}

func TestLoaderSnapshotCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &stubRunner{errs: map[string]error{
		"deployments": context.Canceled,
		"pods":        context.Canceled,
		"rs":          context.Canceled,
	}}
	loader := NewLoader(runner, logrus.New())

	_, err := loader.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
