// Package domain contains the syntax-tree splicing engine and the workflows built on it.
package domain

import (
	"context"

	"splicer.dev/pkg/splicer/internal/adapter"
	m "splicer.dev/pkg/splicer/internal/model"
)

// Mutagen runs mutation sessions. Every call gets a fresh Session, so calls
// are independent and may run in parallel over different files.
type Mutagen interface {
	Mutate(ctx context.Context, cfg EngineConfig, src []byte) (m.SessionReport, error)
	Candidates(ctx context.Context, cfg EngineConfig, src []byte) ([]m.Candidate, error)
	Pools(ctx context.Context, cfg EngineConfig, src []byte, samples int) ([]m.PoolEntry, error)
}

type mutagen struct {
	adapter.SyntaxAdapter
}

// NewMutagen creates a Mutagen backed by the given syntax adapter.
func NewMutagen(syntaxAdapter adapter.SyntaxAdapter) Mutagen {
	return &mutagen{SyntaxAdapter: syntaxAdapter}
}

func (mg *mutagen) Mutate(ctx context.Context, cfg EngineConfig, src []byte) (m.SessionReport, error) {
	session, err := NewSession(mg.SyntaxAdapter, cfg)
	if err != nil {
		return m.SessionReport{}, err
	}

	return session.Run(ctx, src)
}

func (mg *mutagen) Candidates(ctx context.Context, cfg EngineConfig, src []byte) ([]m.Candidate, error) {
	session, err := NewSession(mg.SyntaxAdapter, cfg)
	if err != nil {
		return nil, err
	}

	return session.Candidates(ctx, src)
}

func (mg *mutagen) Pools(ctx context.Context, cfg EngineConfig, src []byte, samples int) ([]m.PoolEntry, error) {
	session, err := NewSession(mg.SyntaxAdapter, cfg)
	if err != nil {
		return nil, err
	}

	return session.Pools(ctx, src, samples)
}
