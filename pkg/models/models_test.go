package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseItemStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ItemStatus
	}{
		{name: "available", input: "Available", expected: ItemStatusAvailable},
		{name: "awaiting pickup", input: "Awaiting pickup", expected: ItemStatusAwaitingPickup},
		{name: "checked out", input: "Checked out", expected: ItemStatusCheckedOut},
		{name: "in transit", input: "In transit", expected: ItemStatusInTransit},
		{name: "missing", input: "Missing", expected: ItemStatusMissing},
		{name: "paged", input: "Paged", expected: ItemStatusPaged},
		{name: "on order", input: "On order", expected: ItemStatusOnOrder},
		{name: "in process", input: "In process", expected: ItemStatusInProcess},
		{name: "unknown becomes None", input: "Declared lost", expected: ItemStatusNone},
		{name: "empty becomes None", input: "", expected: ItemStatusNone},
		{name: "case matters", input: "checked out", expected: ItemStatusNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseItemStatus(tt.input))
		})
	}
}

func TestParseRequestType(t *testing.T) {
	assert.Equal(t, RequestTypeHold, ParseRequestType("Hold"))
	assert.Equal(t, RequestTypeRecall, ParseRequestType("Recall"))
	assert.Equal(t, RequestTypePage, ParseRequestType("Page"))
	assert.Equal(t, RequestTypeNone, ParseRequestType("None"))
	assert.Equal(t, RequestTypeNone, ParseRequestType("Reserve"))
	assert.Equal(t, RequestTypeNone, ParseRequestType(""))
}

func TestParseHoldStatus(t *testing.T) {
	for _, valid := range []string{
		"Open - Not yet filled",
		"Open - Awaiting pickup",
		"Open - Awaiting delivery",
		"Open - In transit",
		"Closed - Filled",
		"Closed - Cancelled",
		"Closed - Unfilled",
		"Closed - Pickup expired",
	} {
		status, ok := ParseHoldStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, valid, string(status))
	}

	_, ok := ParseHoldStatus("Open")
	assert.False(t, ok)
	_, ok = ParseHoldStatus("")
	assert.False(t, ok)
}

func TestAuthorFromContributors(t *testing.T) {
	assert.Equal(t, "", AuthorFromContributors(nil))
	assert.Equal(t, "Twain, Mark", AuthorFromContributors([]Contributor{{Name: "Twain, Mark"}}))
	assert.Equal(t, "Twain, Mark; Dickens, Charles", AuthorFromContributors([]Contributor{
		{Name: "Twain, Mark"},
		{Name: "Dickens, Charles"},
	}))
	assert.Equal(t, "Twain, Mark", AuthorFromContributors([]Contributor{
		{Name: "Twain, Mark"},
		{Name: ""},
	}))
}
