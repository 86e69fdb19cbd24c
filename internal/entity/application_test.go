package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAdvanceTo(t *testing.T) {
	allowed := map[ApplicationStatus][]ApplicationStatus{
		StatusApplied:   {StatusViewed, StatusRejected},
		StatusViewed:    {StatusInterview, StatusRejected},
		StatusInterview: {StatusOffer, StatusRejected},
		StatusOffer:     {StatusAccepted, StatusRejected},
		StatusAccepted:  {},
		StatusRejected:  {},
		StatusWithdrawn: {},
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equalf(t, want, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
	}
}

func TestCanAdvanceTo_NoSkippingStages(t *testing.T) {
	assert.False(t, StatusApplied.CanAdvanceTo(StatusInterview))
	assert.False(t, StatusApplied.CanAdvanceTo(StatusOffer))
	assert.False(t, StatusApplied.CanAdvanceTo(StatusAccepted))
	assert.False(t, StatusViewed.CanAdvanceTo(StatusAccepted))
}

func TestCanAdvanceTo_NoBackwardMoves(t *testing.T) {
	assert.False(t, StatusViewed.CanAdvanceTo(StatusApplied))
	assert.False(t, StatusInterview.CanAdvanceTo(StatusViewed))
	assert.False(t, StatusOffer.CanAdvanceTo(StatusInterview))
}

func TestTerminal(t *testing.T) {
	terminal := map[ApplicationStatus]bool{
		StatusAccepted:  true,
		StatusRejected:  true,
		StatusWithdrawn: true,
	}

	for _, status := range AllStatuses {
		assert.Equalf(t, terminal[status], status.Terminal(), "status %s", status)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range AllStatuses {
		if !from.Terminal() {
			continue
		}
		for _, to := range AllStatuses {
			assert.Falsef(t, from.CanAdvanceTo(to), "%s -> %s", from, to)
		}
		assert.Falsef(t, from.CanWithdraw(), "withdraw from %s", from)
	}
}

func TestCanWithdraw(t *testing.T) {
	assert.True(t, StatusApplied.CanWithdraw())
	assert.True(t, StatusViewed.CanWithdraw())
	assert.True(t, StatusInterview.CanWithdraw())
	assert.True(t, StatusOffer.CanWithdraw())
	assert.False(t, StatusAccepted.CanWithdraw())
	assert.False(t, StatusRejected.CanWithdraw())
	assert.False(t, StatusWithdrawn.CanWithdraw())
}

func TestStatusValid(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, status.Valid())
	}
	assert.False(t, ApplicationStatus("pending").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}
