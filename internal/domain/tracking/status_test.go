package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapStatus_ExactMatch(t *testing.T) {
	tests := []struct {
		name    string
		rawCode string
		rawDesc string
		want    Status
	}{
		{"delivered token", "delivered", "", StatusDelivered},
		{"uppercase token", "DELIVERED", "", StatusDelivered},
		{"underscore token", "out_for_delivery", "", StatusOutForDelivery},
		{"spaced token", "out for delivery", "", StatusOutForDelivery},
		{"in transit", "in transit", "", StatusInTransit},
		{"canonical name round-trip", "READY_FOR_PICKUP", "", StatusReadyForPickup},
		{"code empty falls back to description", "", "picked up", StatusPickedUp},
		{"american spelling", "canceled", "", StatusCancelled},
		{"returned to sender", "returned to sender", "", StatusReturned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := MapStatus(tt.rawCode, tt.rawDesc)
			assert.Equal(t, tt.want, info.Status)
			assert.NotEmpty(t, info.LabelEN)
			assert.NotEmpty(t, info.LabelAR)
		})
	}
}

func TestMapStatus_SubstringFallback(t *testing.T) {
	tests := []struct {
		name    string
		rawCode string
		want    Status
	}{
		{"raw contains token", "shipment delivered successfully", StatusDelivered},
		{"raw contains out for delivery", "courier out for delivery now", StatusOutForDelivery},
		{"token contains raw", "picked", StatusPickedUp},
		{"longest token wins", "delivery attempt failed at address", StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := MapStatus(tt.rawCode, "")
			assert.Equal(t, tt.want, info.Status)
		})
	}
}

func TestMapStatus_SynthesizedFallback(t *testing.T) {
	info := MapStatus("ZQX-77", "")

	assert.Equal(t, StatusUnknown, info.Status, "uncatalogued value must not read as pending")
	assert.Equal(t, "ZQX-77", info.LabelEN)
	assert.Equal(t, "ZQX-77", info.LabelAR)
	assert.Equal(t, 1, info.Step)
	assert.Equal(t, "unknown", info.Icon)
}

func TestStatusUnknown_OutsideCanonicalSet(t *testing.T) {
	assert.False(t, StatusUnknown.IsValid())
	assert.False(t, StatusPending.CanTransitionTo(StatusUnknown))
	assert.Equal(t, StatusPending, StatusUnknown.Info().Status, "display fallback stays pending")
}

func TestMapStatus_EmptyInput(t *testing.T) {
	info := MapStatus("", "")
	assert.Equal(t, StatusPending, info.Status)
}

func TestMapStatus_Idempotent(t *testing.T) {
	first := MapStatus("on the way", "somewhere")
	second := MapStatus("on the way", "somewhere")
	assert.Equal(t, first, second)
}

func TestStatus_SuppressesProgress(t *testing.T) {
	assert.True(t, StatusCancelled.SuppressesProgress())
	assert.True(t, StatusReturned.SuppressesProgress())
	assert.False(t, StatusFailed.SuppressesProgress())
	assert.False(t, StatusDelivered.SuppressesProgress())
	assert.False(t, StatusInTransit.SuppressesProgress())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		to     Status
		expect bool
	}{
		{"forward progression", StatusPending, StatusConfirmed, true},
		{"skip steps", StatusConfirmed, StatusOutForDelivery, true},
		{"no backward motion", StatusShipped, StatusProcessing, false},
		{"cancel from early state", StatusPending, StatusCancelled, true},
		{"return from transit", StatusInTransit, StatusReturned, true},
		{"delivered is terminal", StatusDelivered, StatusReturned, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"same step siblings do not transition", StatusPickedUp, StatusInTransit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Info_UnknownStatus(t *testing.T) {
	info := Status("BOGUS").Info()
	assert.Equal(t, StatusPending, info.Status)
}

func TestCarrierTokens_SortedLongestFirst(t *testing.T) {
	for i := 1; i < len(carrierTokens); i++ {
		assert.GreaterOrEqual(t, len(carrierTokens[i-1].token), len(carrierTokens[i].token),
			"token table must stay sorted longest-first: %q before %q",
			carrierTokens[i-1].token, carrierTokens[i].token)
	}
}
