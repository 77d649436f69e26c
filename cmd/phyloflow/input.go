package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/pkg/phyloflow"
)

// readFASTA reads every record of path and re-validates it against
// alphabet.
func (a *app) readFASTA(path string, alphabet sequence.Alphabet) ([]*sequence.Sequence, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	records, err := phyloflow.ReadFASTA(path)
	if err != nil {
		return nil, err
	}

	seqs := make([]*sequence.Sequence, len(records))
	for i, r := range records {
		seqs[i], err = sequence.WithMetadata(r.Residues, r.ID, r.Description, alphabet)
		if err != nil {
			return nil, fmt.Errorf("%s record %q: %w", path, r.ID, err)
		}
	}

	a.logger.Debug("read fasta",
		zap.String("path", path),
		zap.String("size", humanize.Bytes(uint64(info.Size()))),
		zap.Int("records", len(seqs)))
	return seqs, nil
}
