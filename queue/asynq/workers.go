package asynq

import (
  "tracker.local/tiktok-dashboard/common"
  "tracker.local/tiktok-dashboard/queue/asynq/workers"
)

type Workers struct {
  AnsqContext *common.AnsqServerContext
}

func NewWorkers(ansqContext *common.AnsqServerContext) *Workers {
  return &Workers{
    AnsqContext: ansqContext,
  }
}

func (h *Workers) Register() error {
  workers.NewSync(h.AnsqContext).Register()
  return nil
}
