package vkctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestCheckResultSuccess(t *testing.T) {
	require.NoError(t, checkResult("anything", vk.Success))
}

func TestCheckResultMapsRecoverySentinels(t *testing.T) {
	err := checkResult("acquire next image", vk.ErrorOutOfDate)
	require.ErrorIs(t, err, ErrOutOfDate)
	assert.Contains(t, err.Error(), "acquire next image")

	err = checkResult("submit frame", vk.ErrorDeviceLost)
	require.ErrorIs(t, err, ErrDeviceLost)
	assert.Contains(t, err.Error(), "submit frame")
}

func TestCheckResultWrapsOtherResults(t *testing.T) {
	err := checkResult("create image", vk.ErrorOutOfDeviceMemory)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create image")

	assert.NotErrorIs(t, err, ErrOutOfDate)
	assert.NotErrorIs(t, err, ErrDeviceLost)
}
