package asyncop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_SuccessPublishesData(t *testing.T) {
	var gotCallback atomic.Int32
	op := New(WithOnSuccess[string](func(s string) {
		assert.Equal(t, "result", s)
		gotCallback.Add(1)
	}))

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		return api.Ok(200, "result"), nil
	})
	op.Wait()

	st := op.State()
	require.True(t, st.IsSuccess)
	require.NotNil(t, st.Data)
	assert.Equal(t, "result", *st.Data)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Err)
	assert.Equal(t, int32(1), gotCallback.Load())
}

func TestExecute_EnvelopeErrorBecomesErrState(t *testing.T) {
	var errMsg atomic.Value
	op := New(WithOnError[string](func(msg string) { errMsg.Store(msg) }))

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		return api.Fail[string](400, "bad image"), nil
	})
	op.Wait()

	st := op.State()
	assert.False(t, st.IsSuccess)
	assert.Nil(t, st.Data)
	assert.Equal(t, "bad image", st.Err)
	assert.Equal(t, "bad image", errMsg.Load())
}

func TestExecute_EnvelopeErrorWithoutMessageUsesFallback(t *testing.T) {
	op := New[string]()

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		return &api.Response[string]{Success: false, Status: 500}, nil
	})
	op.Wait()

	assert.Equal(t, FallbackErrorMessage, op.State().Err)
}

func TestExecute_TransportErrorBecomesErrState(t *testing.T) {
	op := New[string]()

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		return nil, errors.New("connection refused")
	})
	op.Wait()

	st := op.State()
	assert.False(t, st.IsSuccess)
	assert.Equal(t, "connection refused", st.Err)
}

func TestExecute_LoadingWhileInFlight(t *testing.T) {
	op := New[string]()
	release := make(chan struct{})

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		<-release
		return api.Ok(200, "done"), nil
	})

	st := op.State()
	assert.True(t, st.IsLoading)
	assert.False(t, st.IsSuccess)

	close(release)
	op.Wait()
	assert.False(t, op.State().IsLoading)
}

func TestExecute_StaleResultIsDropped(t *testing.T) {
	var calls atomic.Int32
	op := New(WithOnSuccess[string](func(string) { calls.Add(1) }))

	first := make(chan struct{})
	firstDone := make(chan struct{})
	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		defer close(firstDone)
		<-first
		return api.Ok(200, "stale"), nil
	})

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		return api.Ok(200, "fresh"), nil
	})
	op.Wait()

	// let the superseded first call settle
	close(first)
	<-firstDone
	// give its settle path a moment to (incorrectly) publish
	time.Sleep(10 * time.Millisecond)

	st := op.State()
	require.NotNil(t, st.Data)
	assert.Equal(t, "fresh", *st.Data)
	assert.Equal(t, int32(1), calls.Load(), "superseded call must not fire callbacks")
}

func TestReset_ClearsStateAndSupersedesInFlight(t *testing.T) {
	op := New[string]()
	release := make(chan struct{})
	settled := make(chan struct{})

	op.Execute(context.Background(), func(ctx context.Context) (*api.Response[string], error) {
		defer close(settled)
		<-release
		return api.Ok(200, "late"), nil
	})

	op.Reset()
	assert.Equal(t, State[string]{}, op.State())

	close(release)
	<-settled
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, State[string]{}, op.State(), "reset must supersede in-flight calls")
}
