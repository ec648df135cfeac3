package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func leftPadData() *domain.RegistryPackageData {
	return &domain.RegistryPackageData{
		Name:     "left-pad",
		DistTags: map[string]string{"latest": "1.3.0", "next": "2.0.0-rc.1"},
		Versions: map[string]domain.RegistryVersionData{
			"1.1.0":      {Version: "1.1.0"},
			"1.2.0":      {Version: "1.2.0"},
			"1.3.0":      {Version: "1.3.0"},
			"2.0.0-rc.1": {Version: "2.0.0-rc.1"},
		},
	}
}

func TestResolve_Constraints(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{constraint: "*", want: "1.3.0"},
		{constraint: "latest", want: "1.3.0"},
		{constraint: "next", want: "2.0.0-rc.1"},
		{constraint: "1.2.0", want: "1.2.0"},
		{constraint: "^1.1.0", want: "1.3.0"},
		{constraint: "~1.2.0", want: "1.2.0"},
		{constraint: ">=1.2.0", want: "2.0.0-rc.1"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockRegistryClient(ctrl)
			client.EXPECT().PackageInfo(gomock.Any(), "left-pad").Return(leftPadData(), nil)

			r := NewResolver(client, mocks.NewMockRegistryClient(ctrl), mocks.NewMockLogger(ctrl))
			got, err := r.Resolve(t.Context(), []domain.PackageRequirement{
				domain.NewRequirement(domain.KindRegistry, "left-pad", tt.constraint),
			})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Version)
		})
	}
}

func TestResolve_AnswersFromSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRegistryClient(ctrl)
	// A single metadata fetch serves both calls.
	client.EXPECT().PackageInfo(gomock.Any(), "left-pad").Return(leftPadData(), nil).Times(1)

	r := NewResolver(client, mocks.NewMockRegistryClient(ctrl), mocks.NewMockLogger(ctrl))
	req := domain.NewRequirement(domain.KindRegistry, "left-pad", "^1.0.0")

	first, err := r.Resolve(t.Context(), []domain.PackageRequirement{req})
	require.NoError(t, err)
	second, err := r.Resolve(t.Context(), []domain.PackageRequirement{req})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	nv, ok := r.Snapshot().Lookup(req)
	require.True(t, ok)
	assert.Equal(t, "1.3.0", nv.Version)
}

func TestResolveUncached_Refreshes(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRegistryClient(ctrl)
	client.EXPECT().RefreshPackageInfo(gomock.Any(), "left-pad").Return(leftPadData(), nil)

	r := NewResolver(client, mocks.NewMockRegistryClient(ctrl), mocks.NewMockLogger(ctrl))
	got, err := r.ResolveUncached(t.Context(), []domain.PackageRequirement{
		domain.NewRequirement(domain.KindRegistry, "left-pad", "*"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", got[0].Version)
}

func TestResolve_JsrCompatName(t *testing.T) {
	ctrl := gomock.NewController(t)
	jsr := mocks.NewMockRegistryClient(ctrl)
	jsr.EXPECT().PackageInfo(gomock.Any(), "@jsr/std__path").Return(&domain.RegistryPackageData{
		Name:     "@jsr/std__path",
		DistTags: map[string]string{"latest": "1.0.8"},
		Versions: map[string]domain.RegistryVersionData{"1.0.8": {Version: "1.0.8"}},
	}, nil)

	r := NewResolver(mocks.NewMockRegistryClient(ctrl), jsr, mocks.NewMockLogger(ctrl))
	got, err := r.Resolve(t.Context(), []domain.PackageRequirement{
		domain.NewRequirement(domain.KindJsr, "@std/path", "^1.0.0"),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	// The resolved version keeps the original package name.
	assert.Equal(t, "@std/path", got[0].Name.String())
	assert.Equal(t, "1.0.8", got[0].Version)
}

func TestResolve_NoSatisfyingVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockRegistryClient(ctrl)
	client.EXPECT().PackageInfo(gomock.Any(), "left-pad").Return(leftPadData(), nil)

	r := NewResolver(client, mocks.NewMockRegistryClient(ctrl), mocks.NewMockLogger(ctrl))
	_, err := r.Resolve(t.Context(), []domain.PackageRequirement{
		domain.NewRequirement(domain.KindRegistry, "left-pad", "^3.0.0"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestMatchesConstraint_ZeroMajorCaret(t *testing.T) {
	assert.True(t, matchesConstraint("^0.2.3", "0.2.5"))
	assert.False(t, matchesConstraint("^0.2.3", "0.3.0"))
}
