package syslog

import (
	"fmt"
	"log/syslog"

	"github.com/sirupsen/logrus"

	"github.com/Orange-Health/deploy-report/pkg/alerts"
)

const DefaultPriority = syslog.LOG_WARNING | syslog.LOG_DAEMON

var _ alerts.Sender = (*SyslogClient)(nil)

type SyslogClient struct {
	logger    *logrus.Logger
	writer    *syslog.Writer
	bytesSent int64
}

// New creates syslog client
// priority syslog.LOG_WARNING|syslog.LOG_DAEMON
func New(logger *logrus.Logger, network, addr string, priority syslog.Priority) (*SyslogClient, error) {
	sysLog, err := syslog.Dial(network, addr, priority, alerts.AppId)
	if err != nil {
		return nil, err
	}
	return &SyslogClient{
		logger: logger,
		writer: sysLog,
	}, nil
}

func (sl *SyslogClient) Send(alert alerts.Alert) error {
	n, err := fmt.Fprint(sl.writer, sl.syslogMessage(alert))
	sl.bytesSent += int64(n)
	return err
}

func (sl *SyslogClient) Close() error {
	return sl.writer.Close()
}

func (sl *SyslogClient) syslogMessage(alert alerts.Alert) string {
	return fmt.Sprintf("time=%s service=%s namespace=%s message=%s reason=%s",
		alert.Time, alerts.AppId, alert.Namespace, alert.Message, alert.Reason)
}
