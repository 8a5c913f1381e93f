package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.4.0", "2026-10-01", "3f2a9c1")

	assert.Equal(t, "1.4.0", info.BuildVersion())
	assert.Equal(t, "2026-10-01", info.BuildDate())
	assert.Equal(t, "3f2a9c1", info.BuildCommit())
	assert.Equal(t, "1.4.0 (3f2a9c1, 2026-10-01)", info.String())
}

func TestAppBuildInfo_NotInjected(t *testing.T) {
	var info AppBuildInfo

	assert.Equal(t, NotAvailable, info.BuildVersion())
	assert.Equal(t, NotAvailable, info.BuildDate())
	assert.Equal(t, NotAvailable, info.BuildCommit())
	assert.Equal(t, "N/A (N/A, N/A)", NewAppBuildInfo("", "", "").String())
}
