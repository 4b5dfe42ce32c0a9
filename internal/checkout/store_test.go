package checkout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nyc-burger-co/kiosk-api/internal/checkout"
)

func newTestSession(id string) *checkout.Session {
	return &checkout.Session{
		ID: id,
	}
}

func TestStoreGetUnknown(t *testing.T) {
	st := checkout.NewStore(time.Hour)
	_, err := st.Get("missing")
	require.ErrorIs(t, err, checkout.ErrSessionNotFound)
}

func TestStoreExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	st := checkout.NewStore(time.Minute)
	st.SetClock(func() time.Time { return now })

	st.Put(newTestSession("sess-1"))
	_, err := st.Get("sess-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = st.Get("sess-1")
	require.ErrorIs(t, err, checkout.ErrSessionNotFound)
}

func TestStoreGetRefreshesTTL(t *testing.T) {
	now := time.Unix(1700000000, 0)
	st := checkout.NewStore(time.Minute)
	st.SetClock(func() time.Time { return now })

	st.Put(newTestSession("sess-1"))

	// Touch the session just before it would lapse, then cross the original
	// deadline. The refresh must keep it alive.
	now = now.Add(50 * time.Second)
	_, err := st.Get("sess-1")
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	_, err = st.Get("sess-1")
	require.NoError(t, err)
}

func TestStoreSweep(t *testing.T) {
	now := time.Unix(1700000000, 0)
	st := checkout.NewStore(time.Minute)
	st.SetClock(func() time.Time { return now })

	st.Put(newTestSession("sess-1"))
	st.Put(newTestSession("sess-2"))
	require.Equal(t, 2, st.Len())

	now = now.Add(2 * time.Minute)
	st.Put(newTestSession("sess-3"))

	require.Equal(t, 2, st.Sweep())
	require.Equal(t, 1, st.Len())
	_, err := st.Get("sess-3")
	require.NoError(t, err)
}
