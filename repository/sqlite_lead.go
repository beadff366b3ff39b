package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goccy/go-json"

	"realty-agent/domain"
)

type SQLiteLeadRepository struct {
	db *sql.DB
}

const leadColumns = `id, name, email, phone, status, qualification_responses, notes, property_id, created_at`

func (r *SQLiteLeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+leadColumns+" FROM leads ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SQLiteLeadRepository) Get(ctx context.Context, id string) (domain.Lead, error) {
	l, err := scanLead(r.db.QueryRowContext(ctx, "SELECT "+leadColumns+" FROM leads WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return l, err
}

func (r *SQLiteLeadRepository) Create(ctx context.Context, l domain.Lead) error {
	responses, err := marshalResponses(l.QualificationResponses)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO leads ("+leadColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		l.ID, l.Name, l.Email, l.Phone, string(l.Status), responses, l.Notes, l.PropertyID, l.CreatedAt.UnixNano(),
	)
	return err
}

func (r *SQLiteLeadRepository) Update(ctx context.Context, l domain.Lead) error {
	responses, err := marshalResponses(l.QualificationResponses)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET
		name = ?, email = ?, phone = ?, status = ?, qualification_responses = ?, notes = ?, property_id = ?
		WHERE id = ?`,
		l.Name, l.Email, l.Phone, string(l.Status), responses, l.Notes, l.PropertyID, l.ID,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *SQLiteLeadRepository) CountByStatus(ctx context.Context, status domain.LeadStatus) (int, error) {
	return countRows(ctx, r.db, "SELECT COUNT(*) FROM leads WHERE status = ?", string(status))
}

func (r *SQLiteLeadRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "SELECT COUNT(*) FROM leads")
}

func scanLead(row rowScanner) (domain.Lead, error) {
	var (
		l         domain.Lead
		status    string
		responses string
		createdAt int64
	)
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &status, &responses, &l.Notes, &l.PropertyID, &createdAt)
	if err != nil {
		return domain.Lead{}, err
	}
	l.Status = domain.LeadStatus(status)
	l.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(responses), &l.QualificationResponses); err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}

func marshalResponses(responses map[string]any) (string, error) {
	if responses == nil {
		return "{}", nil
	}
	b, err := json.Marshal(responses)
	return string(b), err
}

type SQLiteSettingsRepository struct {
	db *sql.DB
}

func (r *SQLiteSettingsRepository) Get(ctx context.Context) (domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.QueryRowContext(ctx, `SELECT logo_url, about_text, contact_email, contact_phone,
		hero_image_url, about_image_url FROM site_settings WHERE id = 1`).
		Scan(&s.LogoURL, &s.AboutText, &s.ContactEmail, &s.ContactPhone, &s.HeroImageURL, &s.AboutImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SiteSettings{}, ErrNotFound
	}
	return s, err
}

func (r *SQLiteSettingsRepository) Save(ctx context.Context, s domain.SiteSettings) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO site_settings
		(id, logo_url, about_text, contact_email, contact_phone, hero_image_url, about_image_url)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			logo_url = excluded.logo_url,
			about_text = excluded.about_text,
			contact_email = excluded.contact_email,
			contact_phone = excluded.contact_phone,
			hero_image_url = excluded.hero_image_url,
			about_image_url = excluded.about_image_url`,
		s.LogoURL, s.AboutText, s.ContactEmail, s.ContactPhone, s.HeroImageURL, s.AboutImageURL,
	)
	return err
}

type SQLiteCalculationRepository struct {
	db  *sql.DB
	now func() time.Time
}

func (r *SQLiteCalculationRepository) Save(ctx context.Context, calc domain.Calculation) error {
	input, err := json.Marshal(calc.Input)
	if err != nil {
		return err
	}
	result, err := json.Marshal(calc.Result)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO calculations (kind, input, result, created_at) VALUES (?, ?, ?, ?)",
		calc.Kind, string(input), string(result), r.now().UnixNano(),
	)
	return err
}

func (r *SQLiteCalculationRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "SELECT COUNT(*) FROM calculations")
}
