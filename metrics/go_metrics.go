package metrics

import (
	"fmt"
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Metrics is the go-metrics backed Engine implementation.
type Metrics struct {
	MetricsRegistry gometrics.Registry

	RequestStatuses map[RequestType]map[RequestStatus]gometrics.Meter
	RequestTimers   map[RequestType]gometrics.Timer
	BatchSizeHisto  gometrics.Histogram

	StorageRequestTimerSuccess gometrics.Timer
	StorageRequestTimerError   gometrics.Timer

	// render timers and failure meters are created lazily per label
	renderTimers     map[string]gometrics.Timer
	itemFailureMeter map[string]gometrics.Meter
	labelsRWMutex    sync.RWMutex
}

func requestTypes() []RequestType {
	return []RequestType{ReqTypeListFormats, ReqTypeSingle, ReqTypeBatch}
}

func requestStatuses() []RequestStatus {
	return []RequestStatus{RequestStatusOK, RequestStatusErr}
}

// NewMetrics registers and returns a Metrics engine on the given registry.
func NewMetrics(registry gometrics.Registry) *Metrics {
	m := &Metrics{
		MetricsRegistry:            registry,
		RequestStatuses:            make(map[RequestType]map[RequestStatus]gometrics.Meter),
		RequestTimers:              make(map[RequestType]gometrics.Timer),
		BatchSizeHisto:             gometrics.GetOrRegisterHistogram("batch.size", registry, gometrics.NewExpDecaySample(1028, 0.015)),
		StorageRequestTimerSuccess: gometrics.GetOrRegisterTimer("storage.request_time.ok", registry),
		StorageRequestTimerError:   gometrics.GetOrRegisterTimer("storage.request_time.err", registry),
		renderTimers:               make(map[string]gometrics.Timer),
		itemFailureMeter:           make(map[string]gometrics.Meter),
	}
	for _, t := range requestTypes() {
		m.RequestStatuses[t] = make(map[RequestStatus]gometrics.Meter)
		for _, s := range requestStatuses() {
			m.RequestStatuses[t][s] = gometrics.GetOrRegisterMeter(fmt.Sprintf("requests.%s.%s", t, s), registry)
		}
		m.RequestTimers[t] = gometrics.GetOrRegisterTimer(fmt.Sprintf("requests.%s.request_time", t), registry)
	}
	return m
}

func (m *Metrics) RecordRequest(reqType RequestType, status RequestStatus) {
	if byStatus, ok := m.RequestStatuses[reqType]; ok {
		if meter, ok := byStatus[status]; ok {
			meter.Mark(1)
		}
	}
}

func (m *Metrics) RecordRequestTime(reqType RequestType, length time.Duration) {
	if timer, ok := m.RequestTimers[reqType]; ok {
		timer.Update(length)
	}
}

func (m *Metrics) RecordRenderTime(formatType string, length time.Duration) {
	m.getRenderTimer(formatType).Update(length)
}

func (m *Metrics) RecordBatchSize(size int) {
	m.BatchSizeHisto.Update(int64(size))
}

func (m *Metrics) RecordItemFailure(code string) {
	m.getItemFailureMeter(code).Mark(1)
}

func (m *Metrics) RecordStorageRequestTime(success bool, length time.Duration) {
	if success {
		m.StorageRequestTimerSuccess.Update(length)
	} else {
		m.StorageRequestTimerError.Update(length)
	}
}

func (m *Metrics) getRenderTimer(formatType string) gometrics.Timer {
	m.labelsRWMutex.RLock()
	timer, ok := m.renderTimers[formatType]
	m.labelsRWMutex.RUnlock()
	if ok {
		return timer
	}

	m.labelsRWMutex.Lock()
	defer m.labelsRWMutex.Unlock()
	if timer, ok = m.renderTimers[formatType]; ok {
		return timer
	}
	timer = gometrics.GetOrRegisterTimer(fmt.Sprintf("render.%s.render_time", formatType), m.MetricsRegistry)
	m.renderTimers[formatType] = timer
	return timer
}

func (m *Metrics) getItemFailureMeter(code string) gometrics.Meter {
	m.labelsRWMutex.RLock()
	meter, ok := m.itemFailureMeter[code]
	m.labelsRWMutex.RUnlock()
	if ok {
		return meter
	}

	m.labelsRWMutex.Lock()
	defer m.labelsRWMutex.Unlock()
	if meter, ok = m.itemFailureMeter[code]; ok {
		return meter
	}
	meter = gometrics.GetOrRegisterMeter(fmt.Sprintf("batch.item_failures.%s", code), m.MetricsRegistry)
	m.itemFailureMeter[code] = meter
	return meter
}
