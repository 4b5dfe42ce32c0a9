package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func validCard() Card {
	return Card{
		Number: "4242424242424242",
		Name:   "John Doe",
		Expiry: "12/28",
		CVC:    "123",
	}
}

func newTestSimulator() *Simulator {
	s := NewSimulator(0)
	s.Now = fixedNow
	return s
}

func TestSubmitSuccess(t *testing.T) {
	s := newTestSimulator()
	res, err := s.Submit(context.Background(), Request{SessionID: "sess", Amount: 2090, Card: validCard()})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotEmpty(t, res.Reference)
}

func TestSubmitDeclineTestCard(t *testing.T) {
	s := newTestSimulator()
	card := validCard()
	card.Number = "4000 0000 0000 0002"
	res, err := s.Submit(context.Background(), Request{SessionID: "sess", Amount: 2090, Card: card})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "card declined", res.FailureReason)
}

func TestSubmitInvalidCard(t *testing.T) {
	s := newTestSimulator()
	card := validCard()
	card.Number = "1234"
	res, err := s.Submit(context.Background(), Request{SessionID: "sess", Amount: 100, Card: card})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "invalid card details", res.FailureReason)
}

func TestSubmitExpiredCard(t *testing.T) {
	s := newTestSimulator()
	card := validCard()
	card.Expiry = "01/24"
	res, err := s.Submit(context.Background(), Request{SessionID: "sess", Amount: 100, Card: card})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, "card expired", res.FailureReason)
}

func TestSubmitNonPositiveAmount(t *testing.T) {
	s := newTestSimulator()
	res, err := s.Submit(context.Background(), Request{SessionID: "sess", Amount: 0, Card: validCard()})
	require.NoError(t, err)
	require.False(t, res.Success)
}

func TestSubmitHonoursCancellation(t *testing.T) {
	s := NewSimulator(5 * time.Second)
	s.Now = fixedNow
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Submit(ctx, Request{SessionID: "sess", Amount: 100, Card: validCard()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCardExpiryValidThroughMonthEnd(t *testing.T) {
	now := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)
	expired, ok := cardExpired("03/26", now)
	require.True(t, ok)
	require.False(t, expired)

	expired, ok = cardExpired("02/26", now)
	require.True(t, ok)
	require.True(t, expired)
}
