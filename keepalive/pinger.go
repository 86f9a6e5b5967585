package keepalive

import (
	"context"
	"net/http"
	"time"
)

// RunPinger issues a GET against this service's own ping endpoint every
// PingInterval until ctx is cancelled. Ping failures are logged and never end
// the loop; cancellation is observed at iteration boundaries only, so an
// in-flight ping is not interrupted.
func (k *Service) RunPinger(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(k.StartDelay):
	}
	k.log.Info("Self-pinger started")

	for {
		k.pingOnce()
		select {
		case <-ctx.Done():
			return
		case <-time.After(k.PingInterval):
		}
	}
}

func (k *Service) pingOnce() {
	url := k.BaseURL() + "/ping"
	resp, err := k.client.Get(url)
	if err != nil {
		k.log.Warnf("Self-ping error: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		k.log.Infof("Self-ping successful - Status: %d", resp.StatusCode)
	} else {
		k.log.Warnf("Self-ping failed - Status: %d", resp.StatusCode)
	}
}
