package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/dbx"
	"github.com/dmitrijs2005/medxscan/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Empty symptoms are persisted as NULL, never as an empty string.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *SQLiteRepository) Add(ctx context.Context, a *models.Analysis) error {
	conditions, err := json.Marshal(a.DetectedConditions)
	if err != nil {
		return fmt.Errorf("encoding conditions: %w", err)
	}

	query := `INSERT INTO analyses
		(id, user_id, image_ref, xray_type, bone_region, symptoms, conditions, created_at, report_ref, report_generated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.ImageRef, string(a.XRayType),
		nullable(a.BoneRegion), nullable(a.Symptoms),
		string(conditions), a.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullable(a.ReportRef), a.ReportGenerated)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

const selectColumns = `id, user_id, image_ref, xray_type, bone_region, symptoms, conditions, created_at, report_ref, report_generated`

func scanAnalysis(scan func(dest ...any) error) (*models.Analysis, error) {
	var (
		a          models.Analysis
		xrayType   string
		boneRegion sql.NullString
		symptoms   sql.NullString
		conditions string
		createdAt  string
		reportRef  sql.NullString
	)
	if err := scan(&a.ID, &a.UserID, &a.ImageRef, &xrayType, &boneRegion,
		&symptoms, &conditions, &createdAt, &reportRef, &a.ReportGenerated); err != nil {
		return nil, err
	}

	a.XRayType = models.XRayType(xrayType)
	a.BoneRegion = boneRegion.String
	a.Symptoms = symptoms.String
	a.ReportRef = reportRef.String

	if err := json.Unmarshal([]byte(conditions), &a.DetectedConditions); err != nil {
		return nil, fmt.Errorf("decoding conditions: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	a.CreatedAt = ts

	return &a, nil
}

// List returns the user's analyses newest first. The rowid tiebreak keeps
// records submitted within the same timestamp in insertion order, newest
// first, so a freshly added record is always at the head.
func (r *SQLiteRepository) List(ctx context.Context, userID string) ([]models.Analysis, error) {
	query := `SELECT ` + selectColumns + ` FROM analyses
		WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select analyses: %w", err)
	}
	defer rows.Close()

	var result []models.Analysis
	for rows.Next() {
		item, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id, userID string) (*models.Analysis, error) {
	query := `SELECT ` + selectColumns + ` FROM analyses WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	a, err := scanAnalysis(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}
