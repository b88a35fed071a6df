package metrics

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// EngineMock is a mock for the Engine interface, used by tests that need to
// assert whether metrics were recorded.
type EngineMock struct {
	mock.Mock
}

func (m *EngineMock) RecordRequest(reqType RequestType, status RequestStatus) {
	m.Called(reqType, status)
}

func (m *EngineMock) RecordRequestTime(reqType RequestType, length time.Duration) {
	m.Called(reqType, length)
}

func (m *EngineMock) RecordRenderTime(formatType string, length time.Duration) {
	m.Called(formatType, length)
}

func (m *EngineMock) RecordBatchSize(size int) {
	m.Called(size)
}

func (m *EngineMock) RecordItemFailure(code string) {
	m.Called(code)
}

func (m *EngineMock) RecordStorageRequestTime(success bool, length time.Duration) {
	m.Called(success, length)
}
