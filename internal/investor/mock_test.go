package investor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockAdapter struct {
	mock.Mock
}

func (m *mockAdapter) ClassifyInvestors(ctx context.Context, names []string) (*Classification, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Classification), args.Error(1)
}

func (m *mockAdapter) RankInvestors(ctx context.Context, names []string, companyName, companyContext string, topN int) ([]string, error) {
	args := m.Called(ctx, names, companyName, companyContext, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAdapter) ResolveDomain(ctx context.Context, name string) (*DomainResolution, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DomainResolution), args.Error(1)
}
