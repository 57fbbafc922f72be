package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithoutPartialCommitKeepsArchiveFailure(t *testing.T) {
	partial := &domain.PartialCommitError{
		Date:      "2026-03-09",
		Succeeded: []domain.StudentID{"1", "2"},
		Failed:    map[domain.StudentID]error{"3": errors.New("disk full")},
	}
	archiveErr := errors.New("archive session: read only")

	err := withoutPartialCommit(errors.Join(partial, archiveErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, archiveErr)

	var left *domain.PartialCommitError
	assert.False(t, errors.As(err, &left))
	assert.NotContains(t, err.Error(), "disk full")
}

func TestWithoutPartialCommitDropsLonePartialFailure(t *testing.T) {
	partial := &domain.PartialCommitError{
		Date:   "2026-03-09",
		Failed: map[domain.StudentID]error{"3": errors.New("disk full")},
	}

	assert.NoError(t, withoutPartialCommit(partial))
	assert.NoError(t, withoutPartialCommit(fmt.Errorf("commit: %w", partial)))
	assert.NoError(t, withoutPartialCommit(errors.Join(partial)))
}

func TestWithoutPartialCommitLeavesOtherErrors(t *testing.T) {
	releaseErr := errors.New("release capture: usb reset")

	assert.NoError(t, withoutPartialCommit(nil))
	assert.Equal(t, releaseErr, withoutPartialCommit(releaseErr))
}
