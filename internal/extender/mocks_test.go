package extender

import (
	"github.com/stretchr/testify/mock"

	"github.com/bjulian5/varats/internal/model"
	"github.com/bjulian5/varats/internal/release"
)

type MockReleaseProvider struct {
	mock.Mock
}

// ReleaseRevisions implements release.Provider.
func (m *MockReleaseProvider) ReleaseRevisions(rt model.ReleaseType) ([]release.Release, error) {
	args := m.Called(rt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]release.Release), args.Error(1)
}
