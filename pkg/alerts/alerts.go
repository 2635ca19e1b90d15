package alerts

import (
	"fmt"
	"time"

	"github.com/Orange-Health/deploy-report/internal/models"
)

const (
	AppId      = "deploy-report"
	TypeSplunk = "splunk"
	TypeSyslog = "syslog"
)

type Alert struct {
	Time      time.Time
	Message   string
	Reason    string
	Namespace string
}

type Registry map[string]Sender

type Sender interface {
	Send(alert Alert) error
}

func (r Registry) Add(senderType string, s Sender) {
	r[senderType] = s
}

func (r Registry) Send(alert Alert) error {
	var errs Errors
	for _, s := range r {
		if err := s.Send(alert); err != nil {
			errs.collect(err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UnhealthyNotifier turns run statistics into alert events for every
// registered sender.
type UnhealthyNotifier struct {
	senders Registry
}

func NewUnhealthyNotifier(senders Registry) *UnhealthyNotifier {
	return &UnhealthyNotifier{senders: senders}
}

func (n *UnhealthyNotifier) NotifyUnhealthy(namespace string, stats models.Stats) error {
	return n.senders.Send(Alert{
		Time: time.Now(),
		Message: fmt.Sprintf("%s found %d degraded and %d missing services out of %d",
			AppId, stats.Degraded, stats.Missing, stats.Total),
		Reason:    "unhealthy-services",
		Namespace: namespace,
	})
}
