package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEntities_SkipsNilAndKeepsOrder(t *testing.T) {
	now := time.Now()
	list := []*Projection[string]{New("a", now, now), nil, New("b", now, now)}

	require.Equal(t, []string{"a", "b"}, Entities(list))
}
