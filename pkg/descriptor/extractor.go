// Package descriptor extracts plugin metadata from jar archives. An archive is
// probed for the descriptor formats of each supported platform family; every
// probe that finds a well-formed descriptor contributes one ArchiveRecord.
package descriptor

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/plugbay/plugbay/pkg/archive"
	"github.com/plugbay/plugbay/pkg/logger"
	"github.com/plugbay/plugbay/pkg/model"
)

// EntryReader reads a single named entry from a plugin archive.
type EntryReader interface {
	ReadEntry(ctx context.Context, archivePath, entryName string) ([]byte, error)
}

// Extractor probes plugin archives for platform descriptors.
type Extractor struct {
	reader EntryReader
}

// NewExtractor creates an Extractor backed by the given entry reader.
func NewExtractor(reader EntryReader) *Extractor {
	return &Extractor{reader: reader}
}

// Extract returns the metadata records found inside the archive, in fixed
// probe order: Velocity, BungeeCord, Common (Bukkit/Folia). A probe whose
// descriptor entry is absent or malformed contributes nothing; an archive
// with no recognized descriptor yields an empty slice. Only archive-level
// failures (missing or corrupt archive) are returned as errors.
func (e *Extractor) Extract(ctx context.Context, archivePath string) ([]model.ArchiveRecord, error) {
	probes := []func(context.Context, string) (*model.ArchiveRecord, error){
		e.probeVelocity,
		e.probeBungee,
		e.probeCommon,
	}

	records := make([]model.ArchiveRecord, 0, len(probes))
	for _, probe := range probes {
		record, err := probe(ctx, archivePath)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

// readDescriptor fetches a descriptor entry. A missing entry is signalled by a
// nil slice without error; archive-level failures are passed through.
func (e *Extractor) readDescriptor(ctx context.Context, archivePath, entryName string) ([]byte, error) {
	data, err := e.reader.ReadEntry(ctx, archivePath, entryName)
	if err != nil {
		if errors.Is(err, archive.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func logMalformed(archivePath, entryName string, err error) {
	logger.Debug("ignoring malformed descriptor", logrus.Fields{
		"archive": archivePath,
		"entry":   entryName,
		"error":   err.Error(),
	})
}
