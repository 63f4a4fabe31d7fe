package manager

import (
	"sort"
	"time"

	"fasttextd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	resp := types.StatusResponse{
		BudgetMB:       m.budgetMB,
		UsedMB:         m.usedEstMB,
		MarginMB:       m.marginMB,
		LastError:      m.lastErr,
		UptimeSeconds:  int64(now.Sub(m.startTime) / time.Second),
		ServerTimeUnix: now.Unix(),
		EvictionsTotal: m.evictionsTotal,
		LoadsTotal:     m.loadsTotal,
	}
	resp.Instances = make([]types.InstanceStatus, 0, len(m.instances))
	ready := 0
	for _, inst := range m.instances {
		switch inst.State {
		case StateLoading:
			resp.WarmupsInProgress++
		case StateDraining:
			resp.DrainingCount++
		case StateReady:
			ready++
		}
		resp.Instances = append(resp.Instances, types.InstanceStatus{
			ModelID:       inst.ID,
			State:         string(inst.State),
			LastUsed:      inst.LastUsed.Unix(),
			EstMB:         inst.EstMB,
			Dimension:     inst.Dimension,
			VocabSize:     inst.VocabSize,
			HasVectors:    inst.Vectors,
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.readCh),
			MaxQueueDepth: cap(inst.queueCh),
		})
	}
	sort.Slice(resp.Instances, func(i, j int) bool { return resp.Instances[i].ModelID < resp.Instances[j].ModelID })
	switch {
	case resp.WarmupsInProgress > 0:
		resp.State = string(StateLoading)
	case ready > 0:
		resp.State = string(StateReady)
	case m.lastErr != "":
		resp.State = string(StateError)
	default:
		resp.State = string(StateIdle)
	}
	return resp
}
