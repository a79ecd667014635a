package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"
)

// SQLStore persists assessments and results. Sessions stay in memory: they
// own a running countdown and cannot round-trip through a row.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutAssessment(ctx context.Context, cfg Config) error {
	if err := (&cfg).Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO assessments (id,title,config_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, config_json=EXCLUDED.config_json`,
		cfg.ID, cfg.Title, string(doc), time.Now().Unix())
	return err
}

func (s *SQLStore) GetAssessment(ctx context.Context, id string) (Config, error) {
	cfg, err := s.GetAssessmentFull(ctx, id)
	if err != nil {
		return Config{}, err
	}
	return cfg.Sanitized(), nil
}

func (s *SQLStore) GetAssessmentFull(ctx context.Context, id string) (Config, error) {
	row := s.db.QueryRowContext(ctx, `SELECT config_json FROM assessments WHERE id=$1`, id)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Config{}, ErrAssessmentNotFound
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal([]byte(doc), &cfg); err != nil {
		return Config{}, err
	}
	// Re-validate on the way out: retags selection keys decoded from the
	// compact array form.
	if err := (&cfg).Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *SQLStore) ListAssessments(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT config_json FROM assessments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var cfg Config
		if err := json.Unmarshal([]byte(doc), &cfg); err != nil {
			return nil, err
		}
		out = append(out, cfg.Summary())
	}
	return out, rows.Err()
}

func (s *SQLStore) SaveResult(ctx context.Context, rec ResultRecord) error {
	detail, err := json.Marshal(rec.Result)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO results
		(id,assessment_id,user_id,score_earned,score_possible,percentage,passed,elapsed_sec,detail_json,submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.AssessmentID, rec.UserID,
		rec.Result.ScoreEarned, rec.Result.ScorePossible, rec.Result.Percentage,
		rec.Result.Passed, rec.Result.ElapsedSeconds, string(detail), rec.SubmittedAt)
	return err
}

func (s *SQLStore) GetResult(ctx context.Context, id string) (ResultRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,assessment_id,user_id,detail_json,submitted_at FROM results WHERE id=$1`, id)
	var rec ResultRecord
	var detail string
	if err := row.Scan(&rec.ID, &rec.AssessmentID, &rec.UserID, &detail, &rec.SubmittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ResultRecord{}, ErrResultNotFound
		}
		return ResultRecord{}, err
	}
	if err := json.Unmarshal([]byte(detail), &rec.Result); err != nil {
		return ResultRecord{}, err
	}
	return rec, nil
}

func (s *SQLStore) ListResults(ctx context.Context, opts ResultListOpts) ([]ResultRecord, error) {
	q := `SELECT id,assessment_id,user_id,detail_json,submitted_at FROM results WHERE 1=1`
	args := []interface{}{}
	i := 1
	if opts.AssessmentID != "" {
		q += ` AND assessment_id=$` + strconv.Itoa(i)
		args = append(args, opts.AssessmentID)
		i++
	}
	if opts.UserID != "" {
		q += ` AND user_id=$` + strconv.Itoa(i)
		args = append(args, opts.UserID)
		i++
	}
	q += ` ORDER BY submitted_at DESC`
	if opts.Limit > 0 || opts.Offset > 0 {
		// sqlite accepts OFFSET only after LIMIT
		limit := opts.Limit
		if limit <= 0 {
			limit = math.MaxInt32
		}
		q += ` LIMIT $` + strconv.Itoa(i)
		args = append(args, limit)
		i++
		if opts.Offset > 0 {
			q += ` OFFSET $` + strconv.Itoa(i)
			args = append(args, opts.Offset)
		}
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		var detail string
		if err := rows.Scan(&rec.ID, &rec.AssessmentID, &rec.UserID, &detail, &rec.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(detail), &rec.Result); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
