package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"essay-feedback/api/internal/essay/types"
)

// GrammarRepo caches grammar oracle output per (text hash, language).
type GrammarRepo struct {
	DB  *sql.DB
	now func() time.Time
}

func NewGrammarRepo(db *sql.DB) *GrammarRepo {
	return &GrammarRepo{DB: db, now: time.Now}
}

const grammarSchema = `
create table if not exists grammar_cache (
	text_hash        text not null,
	language         text not null,
	corrections_json text not null,
	created_at       timestamp not null,
	primary key (text_hash, language)
)`

func (r *GrammarRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, grammarSchema)
	return err
}

// Find returns found=false when there is no entry, when it is older than maxAge
// (maxAge > 0) or when the stored JSON is broken.
func (r *GrammarRepo) Find(ctx context.Context, textHash, language string, maxAge time.Duration) ([]types.Correction, bool, error) {
	const q = `select corrections_json, created_at
	           from grammar_cache
	           where text_hash=$1 and language=$2`
	var (
		js string
		ts time.Time
	)
	if err := r.DB.QueryRowContext(ctx, q, textHash, language).Scan(&js, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if maxAge > 0 && r.now().Sub(ts) > maxAge {
		return nil, false, nil
	}
	var out []types.Correction
	if err := json.Unmarshal([]byte(js), &out); err != nil {
		return nil, false, nil
	}
	if out == nil {
		out = []types.Correction{}
	}
	return out, true, nil
}

// Upsert stores corrections and resets the entry age. PK: (text_hash, language).
func (r *GrammarRepo) Upsert(ctx context.Context, textHash, language string, corrections []types.Correction) error {
	if corrections == nil {
		corrections = []types.Correction{}
	}
	js, err := json.Marshal(corrections)
	if err != nil {
		return err
	}
	const q = `
insert into grammar_cache(text_hash, language, corrections_json, created_at)
values ($1,$2,$3,$4)
on conflict (text_hash, language)
do update set corrections_json=excluded.corrections_json, created_at=excluded.created_at`
	_, err = r.DB.ExecContext(ctx, q, textHash, language, string(js), r.now().UTC())
	return err
}
