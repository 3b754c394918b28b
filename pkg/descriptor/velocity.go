package descriptor

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/plugbay/plugbay/pkg/model"
	"github.com/plugbay/plugbay/pkg/platform"
)

// probeVelocity reads velocity-plugin.json. Velocity descriptors carry no
// load-order hints, so those fields are always empty.
func (e *Extractor) probeVelocity(ctx context.Context, archivePath string) (*model.ArchiveRecord, error) {
	data, err := e.readDescriptor(ctx, archivePath, velocityDescriptor)
	if err != nil || data == nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var cfg map[string]interface{}
	if err := decoder.Decode(&cfg); err != nil {
		logMalformed(archivePath, velocityDescriptor, err)
		return nil, nil
	}

	return &model.ArchiveRecord{
		Name:        stringField(cfg, "id"),
		Version:     stringField(cfg, "version"),
		Description: stringField(cfg, "description"),
		Authors:     stringListField(cfg, "authors"),
		LoadBefore:  []string{},
		SoftDepend:  []string{},
		Platforms:   []platform.Tag{platform.Velocity},
	}, nil
}
