package nats

import (
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/queue/nats/workers"
)

type Workers struct {
  NatsContext *common.NatsContext
}

func NewWorkers(natsContext *common.NatsContext) *Workers {
  return &Workers{
    NatsContext: natsContext,
  }
}

func (h *Workers) Subscribe() error {
  return workers.NewStats(h.NatsContext).Subscribe()
}
