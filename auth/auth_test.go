package auth

import (
	"chat-poll/errors"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// light parameters keep the tests fast
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	hasher := NewHasher(testParams)
	password := "Sup3rSecret"

	hash, err := hasher.Hash(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := hasher.Compare(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = hasher.Compare("WrongPass1", hash)
	req.NoError(err)
	req.False(match)

	// A hasher with other parameters still verifies older hashes
	match, err = NewHasher(DefaultParams).Compare(password, hash)
	req.NoError(err)
	req.True(match)

	_, err = hasher.Compare(password, "not-a-hash")
	req.Error(err)
}

func TestRegistrationValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{"Valid request", RegisterRequest{"alice_01", "Password1"}, nil},
		{"Tag too short", RegisterRequest{"a", "Password1"}, errors.ErrInvalidTag},
		{"Tag with space", RegisterRequest{"al ice", "Password1"}, errors.ErrInvalidTag},
		{"Tag too long", RegisterRequest{strings.Repeat("a", 33), "Password1"}, errors.ErrInvalidTag},
		{"Password too short", RegisterRequest{"alice", "Pass1"}, errors.ErrInvalidPassword},
		{"Missing digit", RegisterRequest{"alice", "NoDigitPass"}, errors.ErrInvalidPassword},
		{"Missing uppercase", RegisterRequest{"alice", "nouppercase1"}, errors.ErrInvalidPassword},
		{"Password too long", RegisterRequest{"alice", "A1" + strings.Repeat("a", 71)}, errors.ErrInvalidPassword},
		{"Both invalid reports tag", RegisterRequest{"!", "x"}, errors.ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegister(tt.req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	req := require.New(t)
	sessions := NewSessionManager("test-secret", time.Hour)

	token, err := sessions.Issue(7, "csrf-token")
	req.NoError(err)

	claims, err := sessions.Parse(token)
	req.NoError(err)
	req.Equal(int64(7), claims.UserID)
	req.Equal("csrf-token", claims.RequestToken)
}

func TestSessionRejectsForeignOrExpiredTokens(t *testing.T) {
	req := require.New(t)
	sessions := NewSessionManager("test-secret", time.Hour)

	forged, err := NewSessionManager("other-secret", time.Hour).Issue(1, "x")
	req.NoError(err)
	_, err = sessions.Parse(forged)
	req.ErrorIs(err, errors.ErrInvalidSession)

	expired, err := NewSessionManager("test-secret", -time.Minute).Issue(1, "x")
	req.NoError(err)
	_, err = sessions.Parse(expired)
	req.ErrorIs(err, errors.ErrInvalidSession)

	_, err = sessions.Parse("garbage")
	req.ErrorIs(err, errors.ErrInvalidSession)
}

func TestIdentityInContext(t *testing.T) {
	req := require.New(t)
	req.False(FromContext(context.Background()).IsAuthenticated())

	ctx := WithIdentity(context.Background(), Identity{UserID: 3, Tag: "carol"})
	identity := FromContext(ctx)
	req.True(identity.IsAuthenticated())
	req.Equal("carol", identity.Tag)
}

func BenchmarkHashPassword(b *testing.B) {
	hasher := NewHasher(DefaultParams)
	for i := 0; i < b.N; i++ {
		_, _ = hasher.Hash("A-very-long-and-complex-password-for-bench-123!")
	}
}
