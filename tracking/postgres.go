package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newExperimentID() string {
	return uuid.NewString()
}

// Row types for the run metadata schema. Artifact payloads live in the blob
// store; only the index is relational.

type experimentRow struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"uniqueIndex;size:255"`
	CreatedAt time.Time
}

func (experimentRow) TableName() string { return "experiments" }

type runRow struct {
	RunID        string     `gorm:"primaryKey;size:64;column:run_id"`
	ExperimentID string     `gorm:"index;size:64"`
	Name         string     `gorm:"size:255"`
	Status       string     `gorm:"size:16"`
	StartTime    time.Time  `gorm:"index"`
	EndTime      *time.Time
}

func (runRow) TableName() string { return "runs" }

type paramRow struct {
	RunID string `gorm:"primaryKey;size:64;column:run_id"`
	Key   string `gorm:"primaryKey;size:255"`
	Value string
}

func (paramRow) TableName() string { return "run_params" }

type metricRow struct {
	RunID string  `gorm:"primaryKey;size:64;column:run_id"`
	Key   string  `gorm:"primaryKey;size:255"`
	Value float64
}

func (metricRow) TableName() string { return "run_metrics" }

type artifactRow struct {
	RunID string `gorm:"primaryKey;size:64;column:run_id"`
	Name  string `gorm:"primaryKey;size:255"`
	Path  string
}

func (artifactRow) TableName() string { return "run_artifacts" }

// postgresStore persists run metadata with GORM and artifact payloads in a
// BlobStore.
type postgresStore struct {
	db       *gorm.DB
	blobs    BlobStore
	endpoint string
}

// NewPostgresStore connects to Postgres, migrates the run metadata schema,
// and wires the given blob store for artifact payloads.
func NewPostgresStore(cfg Config, blobs BlobStore) (Store, error) {
	conn := cfg.Postgres
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		conn.Host, conn.Port, conn.User, conn.Password, conn.DbName, conn.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Minute)

	if err := db.AutoMigrate(&experimentRow{}, &runRow{}, &paramRow{}, &metricRow{}, &artifactRow{}); err != nil {
		return nil, fmt.Errorf("tracking: schema migration failed: %w", err)
	}

	return &postgresStore{
		db:       db,
		blobs:    blobs,
		endpoint: fmt.Sprintf("postgres://%s:%s/%s", conn.Host, conn.Port, conn.DbName),
	}, nil
}

func (p *postgresStore) Endpoint() string {
	return p.endpoint
}

func (p *postgresStore) ListExperiments(ctx context.Context) ([]Experiment, error) {
	var rows []experimentRow
	if err := p.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tracking: list experiments: %w", err)
	}
	out := make([]Experiment, len(rows))
	for i, r := range rows {
		out[i] = Experiment{ID: r.ID, Name: r.Name}
	}
	return out, nil
}

func (p *postgresStore) SearchRuns(ctx context.Context, experimentID string, order RunOrder, limit int) ([]Run, error) {
	q := p.db.WithContext(ctx).Where("experiment_id = ?", experimentID)
	if order == OrderStartTimeDesc {
		q = q.Order("start_time DESC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []runRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tracking: search runs: %w", err)
	}

	out := make([]Run, len(rows))
	for i, r := range rows {
		run, err := p.hydrateRun(ctx, r)
		if err != nil {
			return nil, err
		}
		out[i] = run
	}
	return out, nil
}

func (p *postgresStore) hydrateRun(ctx context.Context, row runRow) (Run, error) {
	run := Run{
		Info: RunInfo{
			ExperimentID: row.ExperimentID,
			RunID:        row.RunID,
			Name:         row.Name,
			Status:       RunStatus(row.Status),
			StartTime:    row.StartTime,
		},
		Params:  map[string]string{},
		Metrics: map[string]float64{},
	}

	var params []paramRow
	if err := p.db.WithContext(ctx).Where("run_id = ?", row.RunID).Find(&params).Error; err != nil {
		return Run{}, fmt.Errorf("tracking: load params: %w", err)
	}
	for _, pr := range params {
		run.Params[pr.Key] = pr.Value
	}

	var metrics []metricRow
	if err := p.db.WithContext(ctx).Where("run_id = ?", row.RunID).Find(&metrics).Error; err != nil {
		return Run{}, fmt.Errorf("tracking: load metrics: %w", err)
	}
	for _, mr := range metrics {
		run.Metrics[mr.Key] = mr.Value
	}

	arts, err := p.ListArtifacts(ctx, row.RunID)
	if err != nil {
		return Run{}, err
	}
	run.Artifacts = arts

	return run, nil
}

func (p *postgresStore) ListArtifacts(ctx context.Context, runID string) ([]Artifact, error) {
	var rows []artifactRow
	if err := p.db.WithContext(ctx).Where("run_id = ?", runID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tracking: list artifacts: %w", err)
	}
	out := make([]Artifact, len(rows))
	for i, r := range rows {
		out[i] = Artifact{Name: r.Name, Path: r.Path}
	}
	return out, nil
}

func (p *postgresStore) LoadArtifact(ctx context.Context, uri string) ([]byte, error) {
	runID, name, err := ParseArtifactURI(uri)
	if err != nil {
		return nil, err
	}

	var row artifactRow
	err = p.db.WithContext(ctx).Where("run_id = ? AND name = ?", runID, name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, uri)
	}
	if err != nil {
		return nil, fmt.Errorf("tracking: resolve artifact %q: %w", uri, err)
	}

	return p.blobs.Get(ctx, row.Path)
}

func (p *postgresStore) StartRun(ctx context.Context, experimentName, runName string) (*Scope, error) {
	expID, err := p.ensureExperiment(ctx, experimentName)
	if err != nil {
		return nil, err
	}
	return newScope(ctx, p, expID, runName)
}

func (p *postgresStore) ensureExperiment(ctx context.Context, name string) (string, error) {
	var row experimentRow
	err := p.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err == nil {
		return row.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("tracking: lookup experiment %q: %w", name, err)
	}

	row = experimentRow{ID: newExperimentID(), Name: name, CreatedAt: time.Now().UTC()}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		// Lost a creation race; re-read the winner.
		var existing experimentRow
		if lookupErr := p.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; lookupErr == nil {
			return existing.ID, nil
		}
		return "", fmt.Errorf("tracking: create experiment %q: %w", name, err)
	}
	return row.ID, nil
}

func (p *postgresStore) createRun(ctx context.Context, info RunInfo) error {
	row := runRow{
		RunID:        info.RunID,
		ExperimentID: info.ExperimentID,
		Name:         info.Name,
		Status:       string(info.Status),
		StartTime:    info.StartTime,
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("tracking: create run: %w", err)
	}
	return nil
}

func (p *postgresStore) finishRun(ctx context.Context, run *Run) error {
	now := time.Now().UTC()
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range run.Params {
			if err := tx.Create(&paramRow{RunID: run.Info.RunID, Key: k, Value: v}).Error; err != nil {
				return fmt.Errorf("tracking: persist param %q: %w", k, err)
			}
		}
		for k, v := range run.Metrics {
			if err := tx.Create(&metricRow{RunID: run.Info.RunID, Key: k, Value: v}).Error; err != nil {
				return fmt.Errorf("tracking: persist metric %q: %w", k, err)
			}
		}
		for _, a := range run.Artifacts {
			if err := tx.Create(&artifactRow{RunID: run.Info.RunID, Name: a.Name, Path: a.Path}).Error; err != nil {
				return fmt.Errorf("tracking: persist artifact %q: %w", a.Name, err)
			}
		}
		return tx.Model(&runRow{}).
			Where("run_id = ?", run.Info.RunID).
			Updates(map[string]interface{}{"status": string(run.Info.Status), "end_time": &now}).Error
	})
}

func (p *postgresStore) putArtifact(ctx context.Context, runID, name string, data []byte) (string, error) {
	path := runID + "/" + name
	if err := p.blobs.Put(ctx, path, data); err != nil {
		return "", err
	}
	return path, nil
}
