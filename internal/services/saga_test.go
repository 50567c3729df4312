package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSaga_AllStepsSucceed(t *testing.T) {
	var ran []string
	steps := []sagaStep{
		{name: "one", run: func() error { ran = append(ran, "one"); return nil }},
		{name: "two", run: func() error { ran = append(ran, "two"); return nil }},
	}

	warnings, err := runSaga(steps)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"one", "two"}, ran)
}

func TestRunSaga_UnwindsInReverseOrder(t *testing.T) {
	var undone []string
	boom := errors.New("boom")
	steps := []sagaStep{
		{
			name:       "one",
			run:        func() error { return nil },
			compensate: func() error { undone = append(undone, "one"); return nil },
		},
		{
			name:       "two",
			run:        func() error { return nil },
			compensate: func() error { undone = append(undone, "two"); return nil },
		},
		{name: "three", run: func() error { return boom }},
	}

	_, err := runSaga(steps)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"two", "one"}, undone)
}

func TestRunSaga_SkipsNilCompensations(t *testing.T) {
	var undone []string
	steps := []sagaStep{
		{
			name:       "one",
			run:        func() error { return nil },
			compensate: func() error { undone = append(undone, "one"); return nil },
		},
		{name: "two", run: func() error { return nil }},
		{name: "three", run: func() error { return errors.New("boom") }},
	}

	_, err := runSaga(steps)
	require.Error(t, err)
	assert.Equal(t, []string{"one"}, undone)
}

func TestRunSaga_ForwardStepDoesNotUnwind(t *testing.T) {
	var undone []string
	steps := []sagaStep{
		{
			name:       "one",
			run:        func() error { return nil },
			compensate: func() error { undone = append(undone, "one"); return nil },
		},
		{name: "two", forward: true, run: func() error { return errors.New("boom") }},
	}

	_, err := runSaga(steps)
	require.Error(t, err)
	assert.Empty(t, undone)
}

func TestRunSaga_BestEffortStepWarnsAndContinues(t *testing.T) {
	var ran []string
	steps := []sagaStep{
		{name: "one", run: func() error { ran = append(ran, "one"); return nil }},
		{name: "two", bestEffort: true, run: func() error { return errors.New("boom") }},
		{name: "three", run: func() error { ran = append(ran, "three"); return nil }},
	}

	warnings, err := runSaga(steps)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "two: boom", warnings[0])
	assert.Equal(t, []string{"one", "three"}, ran)
}

func TestRunSaga_FailedCompensationDoesNotStopUnwind(t *testing.T) {
	var undone []string
	steps := []sagaStep{
		{
			name:       "one",
			run:        func() error { return nil },
			compensate: func() error { undone = append(undone, "one"); return nil },
		},
		{
			name:       "two",
			run:        func() error { return nil },
			compensate: func() error { return errors.New("undo failed") },
		},
		{name: "three", run: func() error { return errors.New("boom") }},
	}

	_, err := runSaga(steps)
	require.Error(t, err)
	assert.Equal(t, []string{"one"}, undone)
}
