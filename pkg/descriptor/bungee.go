package descriptor

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
)

// probeBungee reads bungee.yml.
func (e *Extractor) probeBungee(ctx context.Context, archivePath string) (*model.ArchiveRecord, error) {
	data, err := e.readDescriptor(ctx, archivePath, bungeeDescriptor)
	if err != nil || data == nil {
		return nil, err
	}

	var cfg map[string]interface{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logMalformed(archivePath, bungeeDescriptor, err)
		return nil, nil
	}

	return &model.ArchiveRecord{
		Name:        stringField(cfg, "name"),
		Version:     stringField(cfg, "version"),
		Description: stringField(cfg, "description"),
		Authors:     stringListField(cfg, "authors"),
		LoadBefore:  stringListField(cfg, "loadbefore"),
		SoftDepend:  stringListField(cfg, "softdepend"),
		Platforms:   []platform.Tag{platform.BungeeCord},
	}, nil
}
