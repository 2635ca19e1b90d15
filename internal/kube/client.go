package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/Orange-Health/deploy-report/internal/models"
)

// APILoader reads the snapshot through the Kubernetes API instead of kubectl.
type APILoader struct {
	client    kubernetes.Interface
	namespace string
	log       *logrus.Logger
}

func NewAPILoader(client kubernetes.Interface, namespace string, log *logrus.Logger) *APILoader {
	return &APILoader{
		client:    client,
		namespace: namespace,
		log:       log,
	}
}

// NewClientset builds a clientset from the in-cluster config when available,
// falling back to the local kubeconfig.
func NewClientset(log *logrus.Logger) (*kubernetes.Clientset, error) {
	config, err := rest.InClusterConfig()
	if err != nil {
		log.WithError(err).Debug("no in-cluster config, trying kubeconfig")
		config, err = kubeconfigFor()
		if err != nil {
			return nil, err
		}
	}

	log.Info("connecting to Kubernetes API, using host: ", config.Host)
	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}
	return clientset, nil
}

func kubeconfigFor() (*rest.Config, error) {
	kubeconfigPath := os.Getenv("KUBECONFIG")
	if kubeconfigPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve kubeconfig: %w", err)
		}
		kubeconfigPath = filepath.Join(home, ".kube", "config")
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{})
	config, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig %s: %w", kubeconfigPath, err)
	}
	return config, nil
}

func (a *APILoader) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := a.client.AppsV1().Deployments(a.namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			a.log.WithError(err).Error("failed to list deployments, continuing with empty set")
			return ctx.Err()
		}
		snap.Deployments = *list
		return nil
	})
	g.Go(func() error {
		list, err := a.client.CoreV1().Pods(a.namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			a.log.WithError(err).Error("failed to list pods, continuing with empty set")
			return ctx.Err()
		}
		snap.Pods = *list
		return nil
	})
	g.Go(func() error {
		list, err := a.client.AppsV1().ReplicaSets(a.namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			a.log.WithError(err).Error("failed to list replica sets, continuing with empty set")
			return ctx.Err()
		}
		snap.ReplicaSets = *list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"deployments": len(snap.Deployments.Items),
		"pods":        len(snap.Pods.Items),
		"replicasets": len(snap.ReplicaSets.Items),
	}).Info("loaded cluster snapshot")
	return snap, nil
}
