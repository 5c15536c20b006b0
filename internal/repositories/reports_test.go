package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRangeStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"7days", now.AddDate(0, 0, -7)},
		{"30days", now.AddDate(0, 0, -30)},
		{"90days", now.AddDate(0, 0, -90)},
		{"1year", now.AddDate(-1, 0, 0)},
		{"bogus", now.AddDate(0, 0, -30)},
		{"", now.AddDate(0, 0, -30)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, rangeStart(tt.in, now))
		})
	}
}

func TestVisibleFilter(t *testing.T) {
	now := time.Now()
	filter := visibleFilter("asha@example.com", now)

	assert.Equal(t, true, filter["isActive"])

	and, ok := filter["$and"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, and, 2)

	targeting := and[0].(bson.M)["$or"].(bson.A)
	assert.Contains(t, targeting, bson.M{"targetUsers": "asha@example.com"})
}
