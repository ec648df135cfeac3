package tarball

import (
	"crypto/sha1" //nolint:gosec // exercising the legacy shasum path
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pakt/internal/core/domain"
)

func TestVerifyIntegrity(t *testing.T) {
	nv := domain.NewPackageVersion("left-pad", "1.3.0")
	data := []byte("tarball bytes")
	s512 := sha512.Sum512(data)
	s1 := sha1.Sum(data) //nolint:gosec // test fixture

	tests := []struct {
		name    string
		desc    domain.IntegrityDescriptor
		wantErr error
	}{
		{
			name: "sha512 match",
			desc: domain.IntegrityDescriptor{
				Kind:      domain.IntegrityHashed,
				Algorithm: domain.HashSha512,
				Value:     base64.StdEncoding.EncodeToString(s512[:]),
			},
		},
		{
			name: "sha1 match",
			desc: domain.IntegrityDescriptor{
				Kind:      domain.IntegrityHashed,
				Algorithm: domain.HashSha1,
				Value:     base64.StdEncoding.EncodeToString(s1[:]),
			},
		},
		{
			name: "legacy hex match",
			desc: domain.IntegrityDescriptor{
				Kind:  domain.IntegrityLegacyHex,
				Value: hex.EncodeToString(s1[:]),
			},
		},
		{
			name: "no integrity succeeds",
			desc: domain.NoIntegrity,
		},
		{
			name: "sha512 mismatch",
			desc: domain.IntegrityDescriptor{
				Kind:      domain.IntegrityHashed,
				Algorithm: domain.HashSha512,
				Value:     "bm90IHRoZSBoYXNo",
			},
			wantErr: domain.ErrChecksumMismatch,
		},
		{
			name: "legacy hex mismatch",
			desc: domain.IntegrityDescriptor{
				Kind:  domain.IntegrityLegacyHex,
				Value: "0000000000000000000000000000000000000000",
			},
			wantErr: domain.ErrChecksumMismatch,
		},
		{
			name: "unknown algorithm",
			desc: domain.IntegrityDescriptor{
				Kind:      domain.IntegrityHashed,
				Algorithm: "sha3-512",
				Value:     "irrelevant",
			},
			wantErr: domain.ErrNotImplemented,
		},
		{
			name: "unknown kind",
			desc: domain.IntegrityDescriptor{
				Kind:      domain.IntegrityUnknown,
				Algorithm: "md5",
				Value:     "irrelevant",
			},
			wantErr: domain.ErrNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyIntegrity(nv, data, tt.desc)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
