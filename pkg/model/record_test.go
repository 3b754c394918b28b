package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plugbay/plugbay/pkg/platform"
)

func TestArchiveRecordHasPlatform(t *testing.T) {
	record := &ArchiveRecord{
		Name:      "ViaVersion",
		Version:   "4.9.2",
		Platforms: []platform.Tag{platform.Bukkit, platform.Folia},
	}

	assert.True(t, record.HasPlatform(platform.Bukkit))
	assert.True(t, record.HasPlatform(platform.Folia))
	assert.False(t, record.HasPlatform(platform.Velocity))
}

func TestArchiveRecordGetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantNil bool
	}{
		{name: "semantic", version: "1.2.3", wantNil: false},
		{name: "two segments", version: "2.0", wantNil: false},
		{name: "snapshot suffix", version: "1.2.0-SNAPSHOT", wantNil: false},
		{name: "free-form", version: "build-2024-spring", wantNil: true},
		{name: "empty", version: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &ArchiveRecord{Name: "x", Version: tt.version}
			got := record.GetVersion()
			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
			}
		})
	}
}

func TestIndexEntryFileName(t *testing.T) {
	entry := &IndexEntry{Path: "/srv/plugins/ViaVersion-4.9.2.jar"}
	assert.Equal(t, "ViaVersion-4.9.2.jar", entry.FileName())
}
