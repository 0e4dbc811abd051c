package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/infinitidrive/infiniti-drive/internal/cms"
	cmsMocks "github.com/infinitidrive/infiniti-drive/internal/cms/mocks"
	"github.com/infinitidrive/infiniti-drive/pkg/catalogue/catalogtest"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	inv := New(cmsMocks.NewMockSource(t), quietLogger())

	sched, err := NewScheduler(inv, 5*time.Minute, time.Minute, quietLogger())
	require.NoError(t, err)
	assert.Len(t, sched.Entries(), 1)
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	inv := New(cmsMocks.NewMockSource(t), quietLogger())

	sched, err := NewScheduler(inv, time.Hour, time.Minute, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_RunRefresh(t *testing.T) {
	t.Parallel()

	src := cmsMocks.NewMockSource(t)
	src.EXPECT().
		FetchListings(mock.Anything).
		Return(&cms.FetchResult{Listings: catalogtest.Bikes()}, nil).
		Once()

	inv := New(src, quietLogger())
	sched, err := NewScheduler(inv, time.Hour, time.Minute, quietLogger())
	require.NoError(t, err)

	sched.runRefresh()
	assert.Equal(t, domain.LoadReady, inv.Snapshot().Status)
}
