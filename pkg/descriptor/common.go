package descriptor

import (
	"bytes"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/plugbay/plugbay/pkg/archive"
	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
)

// probeCommon reads plugin.yml, the descriptor shared by the Bukkit family and
// older BungeeCord plugins. The file itself does not state which platform it
// targets, so two signals are evaluated: the compiled main class is scanned
// for known platform symbols, and the folia-supported flag adds Folia. A
// record with no platform signal at all is discarded.
func (e *Extractor) probeCommon(ctx context.Context, archivePath string) (*model.ArchiveRecord, error) {
	data, err := e.readDescriptor(ctx, archivePath, commonDescriptor)
	if err != nil || data == nil {
		return nil, err
	}

	var cfg map[string]interface{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logMalformed(archivePath, commonDescriptor, err)
		return nil, nil
	}

	var tags []platform.Tag
	if mainClass := stringField(cfg, "main"); mainClass != "" {
		classTags, err := e.sniffMainClass(ctx, archivePath, mainClass)
		if err != nil {
			return nil, err
		}
		tags = platform.Union(tags, classTags)
	}
	if boolField(cfg, "folia-supported") {
		tags = platform.Union(tags, []platform.Tag{platform.Folia})
	}

	if len(tags) == 0 {
		return nil, nil
	}

	return &model.ArchiveRecord{
		Name:        stringField(cfg, "name"),
		Version:     stringField(cfg, "version"),
		Description: stringField(cfg, "description"),
		Authors:     stringListField(cfg, "authors"),
		LoadBefore:  stringListField(cfg, "loadbefore"),
		SoftDepend:  stringListField(cfg, "softdepend"),
		Platforms:   tags,
	}, nil
}

// sniffMainClass reads the plugin's compiled entry class and searches its raw
// bytes for the symbolic references of the known plugin base classes. When
// neither marker is present the platform stays unresolved and the archive is
// tagged with both Bukkit and BungeeCord.
//
// TODO: revisit the unresolved fallback; tagging neither platform and letting
// the empty-set invariant drop the record would be stricter, but it changes
// which archives search can see.
func (e *Extractor) sniffMainClass(ctx context.Context, archivePath, mainClass string) ([]platform.Tag, error) {
	classBytes, err := e.reader.ReadEntry(ctx, archivePath, archive.ClassEntryPath(mainClass))
	if err != nil {
		if !errors.Is(err, archive.ErrEntryNotFound) {
			return nil, err
		}
		classBytes = nil
	}

	var tags []platform.Tag
	if bytes.Contains(classBytes, []byte(markerBungeePlugin)) {
		tags = append(tags, platform.BungeeCord)
	}
	if bytes.Contains(classBytes, []byte(markerBukkitJavaPlugin)) || bytes.Contains(classBytes, []byte(markerBukkitAPI)) {
		tags = append(tags, platform.Bukkit)
	}

	if len(tags) == 0 {
		logger.Debug("main class has no known platform marker, assuming bukkit and bungeecord", logrus.Fields{
			"archive": archivePath,
			"main":    mainClass,
		})
		tags = []platform.Tag{platform.Bukkit, platform.BungeeCord}
	}
	return tags, nil
}
