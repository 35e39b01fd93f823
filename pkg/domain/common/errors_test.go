package common_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quintet-io/matchforge/pkg/domain/common"
)

func TestErrInvalidInput_IsDistinguishable(t *testing.T) {
	err := common.NewErrInvalidInput("bad field")
	assert.True(t, common.IsInvalidInputError(err))
	assert.False(t, common.IsAlreadyQueuedError(err))
	assert.False(t, common.IsNotFoundError(err))
}

func TestErrAlreadyQueued_MessageIncludesPlayerID(t *testing.T) {
	err := common.NewErrAlreadyQueued("p1")
	assert.Contains(t, err.Error(), "p1")
	assert.True(t, common.IsAlreadyQueuedError(err))
}

func TestIsInvalidInputError_FalseForPlainError(t *testing.T) {
	assert.False(t, common.IsInvalidInputError(errors.New("generic")))
}
